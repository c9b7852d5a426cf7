package storage

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"tolet/config"
	"tolet/models"
	"tolet/utils"
)

// PropertyFilter narrows GetProperties results. A zero value means the
// criterion is absent.
type PropertyFilter struct {
	Type     models.PropertyType
	MinPrice int
	MaxPrice int
}

// Store is the interface any persistence backend must satisfy. The three
// implementations (hosted Postgres, local JSON files, in-memory mock) are
// behaviorally interchangeable against this contract, differing only in
// durability and latency. Identity is always explicit: the session layer
// resolves tokens to user ids before calling in.
type Store interface {
	// SignUp creates a new identity. Duplicate emails yield an AuthError.
	SignUp(ctx context.Context, email, password string) (*models.User, error)
	// Login resolves credentials to a user. The hosted backend rejects bad
	// credentials with an AuthError; local and mock backends auto-provision
	// an identity for unknown emails.
	Login(ctx context.Context, email, password string) (*models.User, error)
	// GetUser returns the user with the given id, or nil without error when
	// the lookup finds nothing.
	GetUser(ctx context.Context, id string) (*models.User, error)
	// UpdateProfile applies a partial update and recomputes the
	// profile-completeness flag. Unknown userID yields ErrNotAuthenticated.
	UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (*models.User, error)

	// GetProperties returns listings newest first. The hosted backend falls
	// back to the fixed seed dataset when the remote store is unreachable.
	GetProperties(ctx context.Context, filter *PropertyFilter) ([]models.Property, error)
	// GetProperty returns one listing, or nil without error when absent.
	GetProperty(ctx context.Context, id string) (*models.Property, error)
	// AddProperty publishes a listing: generated id, server-assigned
	// creation time, verified forced to false, and a placeholder image when
	// none were supplied.
	AddProperty(ctx context.Context, input models.NewProperty) (*models.Property, error)

	// ToggleWishlist flips membership of (userID, propertyID) and returns
	// the new state. Empty userID returns false without error.
	ToggleWishlist(ctx context.Context, userID, propertyID string) (bool, error)
	// GetWishlist returns the properties currently wishlisted by the user.
	GetWishlist(ctx context.Context, userID string) ([]models.Property, error)

	// SendRequest records a seeker's enquiry with status "new".
	SendRequest(ctx context.Context, seekerID, propertyID, ownerID, message string) (*models.AccommodationRequest, error)
	// GetRequests returns requests where the user is owner or seeker,
	// newest first. Empty userID returns an empty list.
	GetRequests(ctx context.Context, userID string) ([]models.AccommodationRequest, error)

	// AddMessage appends a message to an enquiry thread.
	AddMessage(ctx context.Context, requestID, senderID, text string) (*models.Message, error)
	// GetMessages returns a thread oldest first.
	GetMessages(ctx context.Context, requestID string) ([]models.Message, error)

	Close() error
}

// Open performs the one-time backend selection from configuration presence.
// Call sites never branch on "is configured" themselves.
func Open(cfg *config.Config, logger *utils.Logger) (Store, error) {
	switch cfg.Mode() {
	case config.ModePostgres:
		return NewPostgresStore(cfg.DSN(), logger)
	case config.ModeLocal:
		return NewLocalStore(cfg.LocalStorePath, logger)
	default:
		return NewMemoryStore(logger), nil
	}
}

// applyFilter keeps properties matching the type and price criteria.
// Order-preserving, non-mutating.
func applyFilter(props []models.Property, f *PropertyFilter) []models.Property {
	if f == nil {
		return props
	}
	out := make([]models.Property, 0, len(props))
	for _, p := range props {
		if f.Type != "" && p.PropertyType != f.Type {
			continue
		}
		if f.MinPrice > 0 && p.Rent < f.MinPrice {
			continue
		}
		if f.MaxPrice > 0 && p.Rent > f.MaxPrice {
			continue
		}
		out = append(out, p)
	}
	return out
}

// buildProperty applies the server-side parts of listing creation, shared
// by every backend: generated id, creation time, verified forced off, and
// the placeholder image for photo-less submissions.
func buildProperty(input models.NewProperty) models.Property {
	images := input.Images
	if len(images) == 0 {
		images = []string{models.DefaultPropertyImage}
	}
	return models.Property{
		ID:           uuid.NewString(),
		OwnerID:      input.OwnerID,
		PropertyType: input.PropertyType,
		RoomType:     input.RoomType,
		Rent:         input.Rent,
		Address:      input.Address,
		Coordinates:  input.Coordinates,
		Images:       images,
		Description:  input.Description,
		CreatedAt:    time.Now().UTC(),
		Verified:     false,
	}
}

func sortNewestFirst(props []models.Property) {
	sort.SliceStable(props, func(i, j int) bool {
		return props[i].CreatedAt.After(props[j].CreatedAt)
	})
}

func sortRequestsNewestFirst(reqs []models.AccommodationRequest) {
	sort.SliceStable(reqs, func(i, j int) bool {
		return reqs[i].CreatedAt.After(reqs[j].CreatedAt)
	})
}

// applyProfileUpdate copies the set fields of a partial update onto u and
// recomputes the completeness flag. Completeness is derived, never
// client-supplied.
func applyProfileUpdate(u *models.User, upd models.ProfileUpdate) {
	if upd.FullName != nil {
		u.FullName = models.NormalizeText(*upd.FullName)
	}
	if upd.Phone != nil {
		u.Phone = *upd.Phone
	}
	if upd.Age != nil {
		u.Age = *upd.Age
	}
	if upd.Gender != nil {
		u.Gender = *upd.Gender
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	if upd.PermanentAddress != nil {
		u.PermanentAddress = models.NormalizeText(*upd.PermanentAddress)
	}
	if upd.CurrentAddress != nil {
		u.CurrentAddress = models.NormalizeText(*upd.CurrentAddress)
	}
	u.ProfileComplete = u.IsProfileComplete()
}
