package navigation

import (
	"testing"

	"tolet/models"
)

func TestParsePageRoundTrip(t *testing.T) {
	for p, name := range pageNames {
		got, err := ParsePage(name)
		if err != nil {
			t.Errorf("ParsePage(%q): %v", name, err)
		}
		if got != p {
			t.Errorf("ParsePage(%q) = %v; want %v", name, got, p)
		}
	}
}

func TestParsePageUnknown(t *testing.T) {
	if _, err := ParsePage("settings"); err == nil {
		t.Error("expected an error for an unknown page name")
	}
}

func TestNavigateAndBack(t *testing.T) {
	c := NewController()
	if c.Current() != Landing {
		t.Fatalf("initial page = %v; want landing", c.Current())
	}

	c.Navigate(Search)
	c.Navigate(PropertyDetails)
	if c.Current() != PropertyDetails {
		t.Fatalf("current = %v; want property-details", c.Current())
	}

	if got := c.Back(); got != Search {
		t.Errorf("back = %v; want search", got)
	}
	if got := c.Back(); got != Landing {
		t.Errorf("back = %v; want landing", got)
	}
	// Exhausted stack keeps falling back to landing.
	if got := c.Back(); got != Landing {
		t.Errorf("back on empty stack = %v; want landing", got)
	}
}

func TestNavigateSamePageRecordsNothing(t *testing.T) {
	c := NewController()
	c.Navigate(Search)
	c.Navigate(Search)
	c.Navigate(Search)

	if got := c.Back(); got != Landing {
		t.Errorf("back = %v; want landing (re-navigation must not stack)", got)
	}
}

func TestResolveGating(t *testing.T) {
	complete := &models.User{Role: models.RoleSeeker, ProfileComplete: true}
	incomplete := &models.User{Role: models.RoleNone, ProfileComplete: false}
	roleless := &models.User{Role: models.RoleNone, ProfileComplete: true}

	tests := []struct {
		name string
		user *models.User
		from Page
		want Page
	}{
		{"anonymous stays put", nil, Search, Search},
		{"incomplete profile gated to profile", incomplete, Search, Profile},
		{"incomplete profile already there", incomplete, Profile, Profile},
		{"no role gated to role selection", roleless, Dashboard, RoleSelection},
		{"onboarded user stays put", complete, Wishlist, Wishlist},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewController()
			c.Navigate(tc.from)
			if got := c.Resolve(tc.user); got != tc.want {
				t.Errorf("resolve from %v = %v; want %v", tc.from, got, tc.want)
			}
		})
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	incomplete := &models.User{Role: models.RoleNone}
	c := NewController()
	c.Navigate(Search)

	c.Resolve(incomplete)
	c.Resolve(incomplete)
	c.Resolve(incomplete)

	if c.Current() != Profile {
		t.Fatalf("current = %v; want profile", c.Current())
	}
	// Only one gate entry should have been stacked.
	if got := c.Back(); got != Search {
		t.Errorf("back = %v; want search", got)
	}
	if got := c.Back(); got != Landing {
		t.Errorf("back = %v; want landing", got)
	}
}

func TestLogoutResets(t *testing.T) {
	c := NewController()
	c.Navigate(Search)
	c.Navigate(Wishlist)
	c.Logout()

	if c.Current() != Landing {
		t.Errorf("current after logout = %v; want landing", c.Current())
	}
	if got := c.Back(); got != Landing {
		t.Errorf("back after logout = %v; want landing (cleared stack)", got)
	}
}
