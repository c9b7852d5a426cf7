package storage

import (
	"context"
	"errors"
	"testing"

	"tolet/models"
	"tolet/utils"
)

// The local and mock backends must be behaviorally interchangeable, so the
// conformance tests below run against both. The postgres backend shares the
// same mapper and creation helpers and is exercised in integration.
func eachStore(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Helper()
	logger := utils.NewLogger()

	t.Run("memory", func(t *testing.T) {
		fn(t, NewMemoryStore(logger))
	})
	t.Run("local", func(t *testing.T) {
		s, err := NewLocalStore(t.TempDir(), logger)
		if err != nil {
			t.Fatalf("open local store: %v", err)
		}
		fn(t, s)
	})
}

func TestLoginAutoProvisions(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		u, err := s.Login(ctx, "new@example.com", "whatever")
		if err != nil {
			t.Fatalf("login: %v", err)
		}
		if u == nil {
			t.Fatal("expected auto-provisioned user")
		}
		if u.Role != models.RoleNone {
			t.Errorf("new user role = %s; want NONE", u.Role)
		}
		if u.ProfileComplete {
			t.Error("new user must start with an incomplete profile")
		}

		// Logging in again resolves to the same identity.
		again, err := s.Login(ctx, "new@example.com", "whatever")
		if err != nil {
			t.Fatalf("second login: %v", err)
		}
		if again.ID != u.ID {
			t.Errorf("second login got id %s; want %s", again.ID, u.ID)
		}
	})
}

func TestSignUpDuplicate(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		if _, err := s.SignUp(ctx, "dup@example.com", "pw"); err != nil {
			t.Fatalf("first signup: %v", err)
		}
		_, err := s.SignUp(ctx, "dup@example.com", "pw")
		if !IsAuthError(err) {
			t.Fatalf("duplicate signup error = %v; want AuthError", err)
		}
		var ae *AuthError
		errors.As(err, &ae)
		if !ae.Duplicate {
			t.Error("duplicate signup must be marked as a duplicate")
		}
	})
}

func TestGetUserAbsent(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		u, err := s.GetUser(context.Background(), "no-such-id")
		if err != nil || u != nil {
			t.Errorf("absent user: got (%v, %v); want (nil, nil)", u, err)
		}
	})
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func rolePtr(r models.UserRole) *models.UserRole { return &r }

func TestUpdateProfileCompleteness(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		u, _ := s.SignUp(ctx, "seeker@example.com", "pw")

		// Partial update: still incomplete.
		u2, err := s.UpdateProfile(ctx, u.ID, models.ProfileUpdate{
			FullName: strPtr("Asha Rao"),
		})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if u2.ProfileComplete {
			t.Error("profile must stay incomplete until all required fields are set")
		}

		// All required fields filled, completeness flag never sent by the
		// client, yet it flips to true.
		u3, err := s.UpdateProfile(ctx, u.ID, models.ProfileUpdate{
			Phone:            strPtr("9876543210"),
			Age:              intPtr(21),
			Gender:           strPtr("Female"),
			Role:             rolePtr(models.RoleSeeker),
			PermanentAddress: strPtr("12 MG Road, Pune"),
		})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if !u3.ProfileComplete {
			t.Error("profile should be complete after required fields are filled")
		}
	})
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		_, err := s.UpdateProfile(context.Background(), "ghost", models.ProfileUpdate{})
		if !errors.Is(err, ErrNotAuthenticated) {
			t.Errorf("error = %v; want ErrNotAuthenticated", err)
		}
	})
}

func TestGetPropertiesSeededAndFiltered(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		all, err := s.GetProperties(ctx, nil)
		if err != nil {
			t.Fatalf("get properties: %v", err)
		}
		if len(all) != 2 {
			t.Fatalf("seeded store has %d properties; want 2", len(all))
		}

		// Seed set: one ROOM at 8500, one HOSTEL_PG at 6500. The band
		// filter must return exactly the ROOM.
		got, err := s.GetProperties(ctx, &PropertyFilter{
			Type:     models.TypeRoom,
			MinPrice: 5000,
			MaxPrice: 9000,
		})
		if err != nil {
			t.Fatalf("filtered: %v", err)
		}
		if len(got) != 1 || got[0].PropertyType != models.TypeRoom || got[0].Rent != 8500 {
			t.Fatalf("filtered: got %+v; want the single ROOM at 8500", got)
		}
	})
}

func TestAddPropertyDefaults(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		p, err := s.AddProperty(ctx, models.NewProperty{
			OwnerID:      "owner-1",
			PropertyType: models.TypeApartment,
			RoomType:     models.Room2BHK,
			Rent:         15000,
			Address:      "Baner, Pune",
			Coordinates:  models.Coordinates{Lat: 18.559, Lng: 73.789},
			Images:       nil,
			Description:  "Spacious 2 BHK near the highway.",
		})
		if err != nil {
			t.Fatalf("add property: %v", err)
		}
		if p.ID == "" {
			t.Error("expected a generated id")
		}
		if p.Verified {
			t.Error("owner-created listings must not start verified")
		}
		if p.CreatedAt.IsZero() {
			t.Error("expected a server-assigned creation time")
		}
		if len(p.Images) != 1 || p.Images[0] != models.DefaultPropertyImage {
			t.Errorf("images = %v; want the single default placeholder", p.Images)
		}

		// New listings come back first.
		all, _ := s.GetProperties(ctx, nil)
		if len(all) == 0 || all[0].ID != p.ID {
			t.Error("newest listing should be ordered first")
		}

		stored, err := s.GetProperty(ctx, p.ID)
		if err != nil || stored == nil {
			t.Fatalf("get property: (%v, %v)", stored, err)
		}
		if stored.Rent != 15000 {
			t.Errorf("rent = %d; want 15000", stored.Rent)
		}
	})
}

func TestToggleWishlistRoundTrip(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		u, _ := s.SignUp(ctx, "wisher@example.com", "pw")

		on, err := s.ToggleWishlist(ctx, u.ID, "p1")
		if err != nil || !on {
			t.Fatalf("first toggle: (%v, %v); want (true, nil)", on, err)
		}
		list, _ := s.GetWishlist(ctx, u.ID)
		if len(list) != 1 || list[0].ID != "p1" {
			t.Fatalf("wishlist after toggle: %v", list)
		}

		off, err := s.ToggleWishlist(ctx, u.ID, "p1")
		if err != nil || off {
			t.Fatalf("second toggle: (%v, %v); want (false, nil)", off, err)
		}
		list, _ = s.GetWishlist(ctx, u.ID)
		if len(list) != 0 {
			t.Fatalf("wishlist should be empty again, got %v", list)
		}
	})
}

func TestWishlistUnauthenticated(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		on, err := s.ToggleWishlist(ctx, "", "p1")
		if err != nil || on {
			t.Errorf("unauthenticated toggle: (%v, %v); want (false, nil)", on, err)
		}
		list, err := s.GetWishlist(ctx, "")
		if err != nil || len(list) != 0 {
			t.Errorf("unauthenticated wishlist: (%v, %v); want empty", list, err)
		}
	})
}

func TestRequestsVisibility(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		seeker, _ := s.SignUp(ctx, "seeker@example.com", "pw")
		owner, _ := s.SignUp(ctx, "owner@example.com", "pw")
		stranger, _ := s.SignUp(ctx, "stranger@example.com", "pw")

		r, err := s.SendRequest(ctx, seeker.ID, "p1", owner.ID, "Is the room still available?")
		if err != nil {
			t.Fatalf("send request: %v", err)
		}
		if r.Status != models.StatusNew {
			t.Errorf("status = %s; want new", r.Status)
		}

		for _, id := range []string{seeker.ID, owner.ID} {
			got, _ := s.GetRequests(ctx, id)
			if len(got) != 1 || got[0].ID != r.ID {
				t.Errorf("requests for %s: %v; want the one enquiry", id, got)
			}
		}

		got, _ := s.GetRequests(ctx, stranger.ID)
		if len(got) != 0 {
			t.Errorf("stranger sees %d requests; want 0", len(got))
		}
	})
}

func TestSendRequestUnauthenticated(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		_, err := s.SendRequest(context.Background(), "", "p1", "owner", "hi")
		if !errors.Is(err, ErrNotAuthenticated) {
			t.Errorf("error = %v; want ErrNotAuthenticated", err)
		}
	})
}

func TestMessageThread(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		seeker, _ := s.SignUp(ctx, "seeker@example.com", "pw")
		owner, _ := s.SignUp(ctx, "owner@example.com", "pw")
		r, _ := s.SendRequest(ctx, seeker.ID, "p1", owner.ID, "hello")

		if _, err := s.AddMessage(ctx, r.ID, seeker.ID, "When can I visit?"); err != nil {
			t.Fatalf("add message: %v", err)
		}
		if _, err := s.AddMessage(ctx, r.ID, owner.ID, "Any evening this week."); err != nil {
			t.Fatalf("add message: %v", err)
		}

		msgs, err := s.GetMessages(ctx, r.ID)
		if err != nil {
			t.Fatalf("get messages: %v", err)
		}
		if len(msgs) != 2 {
			t.Fatalf("thread has %d messages; want 2", len(msgs))
		}
		if msgs[0].SenderID != seeker.ID || msgs[1].SenderID != owner.ID {
			t.Error("thread should come back oldest first")
		}
	})
}
