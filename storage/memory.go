package storage

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"tolet/models"
	"tolet/utils"
)

// MemoryStore is the non-persistent mock backend: everything lives in maps
// behind one mutex and vanishes with the process. It is seeded with the
// fixed dataset so the application never starts empty.
type MemoryStore struct {
	mu         sync.Mutex
	users      map[string]models.User
	byEmail    map[string]string
	properties []models.Property
	wishlist   []models.WishlistItem
	requests   []models.AccommodationRequest
	messages   []models.Message
	logger     *utils.Logger
}

// NewMemoryStore creates a seeded in-memory store.
func NewMemoryStore(logger *utils.Logger) *MemoryStore {
	return &MemoryStore{
		users:      make(map[string]models.User),
		byEmail:    make(map[string]string),
		properties: models.SeedProperties(),
		logger:     logger,
	}
}

func (s *MemoryStore) SignUp(ctx context.Context, email, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	if _, exists := s.byEmail[email]; exists {
		return nil, &AuthError{Reason: "account already exists", Duplicate: true}
	}
	u := s.provision(email)
	return &u, nil
}

func (s *MemoryStore) Login(ctx context.Context, email, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	if id, ok := s.byEmail[email]; ok {
		u := s.users[id]
		return &u, nil
	}
	// No hosted identity provider here: unknown emails get a fresh account.
	u := s.provision(email)
	return &u, nil
}

// provision creates a blank identity. Caller holds the lock.
func (s *MemoryStore) provision(email string) models.User {
	u := models.User{
		ID:    uuid.NewString(),
		Email: email,
		Role:  models.RoleNone,
	}
	s.users[u.ID] = u
	s.byEmail[email] = u.ID
	return u
}

func (s *MemoryStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *MemoryStore) UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, ErrNotAuthenticated
	}
	applyProfileUpdate(&u, upd)
	s.users[userID] = u
	return &u, nil
}

func (s *MemoryStore) GetProperties(ctx context.Context, filter *PropertyFilter) ([]models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	props := make([]models.Property, len(s.properties))
	copy(props, s.properties)
	sortNewestFirst(props)
	return applyFilter(props, filter), nil
}

func (s *MemoryStore) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.properties {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) AddProperty(ctx context.Context, input models.NewProperty) (*models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := buildProperty(input)
	s.properties = append(s.properties, p)
	return &p, nil
}

func (s *MemoryStore) ToggleWishlist(ctx context.Context, userID, propertyID string) (bool, error) {
	if userID == "" {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, w := range s.wishlist {
		if w.UserID == userID && w.PropertyID == propertyID {
			s.wishlist = append(s.wishlist[:i], s.wishlist[i+1:]...)
			return false, nil
		}
	}
	s.wishlist = append(s.wishlist, models.WishlistItem{UserID: userID, PropertyID: propertyID})
	return true, nil
}

func (s *MemoryStore) GetWishlist(ctx context.Context, userID string) ([]models.Property, error) {
	if userID == "" {
		return []models.Property{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := make(map[string]struct{})
	for _, w := range s.wishlist {
		if w.UserID == userID {
			wanted[w.PropertyID] = struct{}{}
		}
	}
	out := []models.Property{}
	for _, p := range s.properties {
		if _, ok := wanted[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemoryStore) SendRequest(ctx context.Context, seekerID, propertyID, ownerID, message string) (*models.AccommodationRequest, error) {
	if seekerID == "" {
		return nil, ErrNotAuthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r := models.AccommodationRequest{
		ID:         uuid.NewString(),
		PropertyID: propertyID,
		OwnerID:    ownerID,
		SeekerID:   seekerID,
		Message:    message,
		Status:     models.StatusNew,
		CreatedAt:  time.Now().UTC(),
	}
	s.requests = append(s.requests, r)
	return &r, nil
}

func (s *MemoryStore) GetRequests(ctx context.Context, userID string) ([]models.AccommodationRequest, error) {
	if userID == "" {
		return []models.AccommodationRequest{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.AccommodationRequest{}
	for _, r := range s.requests {
		if r.OwnerID == userID || r.SeekerID == userID {
			out = append(out, r)
		}
	}
	sortRequestsNewestFirst(out)
	return out, nil
}

func (s *MemoryStore) AddMessage(ctx context.Context, requestID, senderID, text string) (*models.Message, error) {
	if senderID == "" {
		return nil, ErrNotAuthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m := models.Message{
		ID:        uuid.NewString(),
		RequestID: requestID,
		SenderID:  senderID,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
	s.messages = append(s.messages, m)
	return &m, nil
}

func (s *MemoryStore) GetMessages(ctx context.Context, requestID string) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Message{}
	for _, m := range s.messages {
		if m.RequestID == requestID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }
