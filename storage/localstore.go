package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"tolet/models"
	"tolet/utils"
)

// Namespaced keys of the local store. Each key is one JSON file holding a
// serialized array of wire rows.
const (
	localKeyUsers      = "tolet_users.json"
	localKeyProperties = "tolet_properties.json"
	localKeyWishlist   = "tolet_wishlist.json"
	localKeyRequests   = "tolet_requests.json"
	localKeyMessages   = "tolet_messages.json"
)

// LocalStore persists every collection as a JSON file under one directory.
// It is the degraded-but-durable mode for running without a hosted backend.
// Access is read-modify-write under a single mutex; concurrent processes on
// the same directory get no isolation.
type LocalStore struct {
	mu     sync.Mutex
	dir    string
	logger *utils.Logger
}

// NewLocalStore opens (and if needed seeds) a file-backed store rooted at dir.
func NewLocalStore(dir string, logger *utils.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("local: create dir: %w", err)
	}
	s := &LocalStore{dir: dir, logger: logger}

	// First open gets the fixed dataset so search is never empty.
	if _, err := os.Stat(s.path(localKeyProperties)); errors.Is(err, os.ErrNotExist) {
		rows := make([]propertyRow, 0, 2)
		for _, p := range models.SeedProperties() {
			rows = append(rows, fromDomainProperty(p))
		}
		if err := saveRows(s.path(localKeyProperties), rows); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *LocalStore) path(key string) string {
	return filepath.Join(s.dir, key)
}

func loadRows[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("local: read %s: %w", filepath.Base(path), err)
	}
	var rows []T
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("local: decode %s: %w", filepath.Base(path), err)
	}
	return rows, nil
}

func saveRows[T any](path string, rows []T) error {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("local: encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("local: write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (s *LocalStore) SignUp(ctx context.Context, email, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	users, err := loadRows[userRow](s.path(localKeyUsers))
	if err != nil {
		return nil, err
	}
	for _, r := range users {
		if r.Email == email {
			return nil, &AuthError{Reason: "account already exists", Duplicate: true}
		}
	}
	return s.provision(users, email)
}

func (s *LocalStore) Login(ctx context.Context, email, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	users, err := loadRows[userRow](s.path(localKeyUsers))
	if err != nil {
		return nil, err
	}
	for _, r := range users {
		if r.Email == email {
			u := toDomainUser(r)
			return &u, nil
		}
	}
	// No password check without a hosted identity provider: unknown emails
	// are provisioned on the spot, mirroring the mock backend.
	return s.provision(users, email)
}

// provision appends a blank identity. Caller holds the lock.
func (s *LocalStore) provision(users []userRow, email string) (*models.User, error) {
	u := models.User{
		ID:    uuid.NewString(),
		Email: email,
		Role:  models.RoleNone,
	}
	users = append(users, fromDomainUser(u, ""))
	if err := saveRows(s.path(localKeyUsers), users); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *LocalStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := loadRows[userRow](s.path(localKeyUsers))
	if err != nil {
		return nil, err
	}
	for _, r := range users {
		if r.ID == id {
			u := toDomainUser(r)
			return &u, nil
		}
	}
	return nil, nil
}

func (s *LocalStore) UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := loadRows[userRow](s.path(localKeyUsers))
	if err != nil {
		return nil, err
	}
	for i, r := range users {
		if r.ID != userID {
			continue
		}
		u := toDomainUser(r)
		applyProfileUpdate(&u, upd)
		users[i] = fromDomainUser(u, r.PasswordHash)
		if err := saveRows(s.path(localKeyUsers), users); err != nil {
			return nil, err
		}
		return &u, nil
	}
	return nil, ErrNotAuthenticated
}

func (s *LocalStore) loadProperties() ([]models.Property, error) {
	rows, err := loadRows[propertyRow](s.path(localKeyProperties))
	if err != nil {
		return nil, err
	}
	props := make([]models.Property, 0, len(rows))
	for _, r := range rows {
		props = append(props, toDomainProperty(r))
	}
	return props, nil
}

func (s *LocalStore) GetProperties(ctx context.Context, filter *PropertyFilter) ([]models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	props, err := s.loadProperties()
	if err != nil {
		return nil, err
	}
	sortNewestFirst(props)
	return applyFilter(props, filter), nil
}

func (s *LocalStore) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	props, err := s.loadProperties()
	if err != nil {
		return nil, err
	}
	for _, p := range props {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func (s *LocalStore) AddProperty(ctx context.Context, input models.NewProperty) (*models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := loadRows[propertyRow](s.path(localKeyProperties))
	if err != nil {
		return nil, err
	}
	p := buildProperty(input)
	rows = append(rows, fromDomainProperty(p))
	if err := saveRows(s.path(localKeyProperties), rows); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *LocalStore) ToggleWishlist(ctx context.Context, userID, propertyID string) (bool, error) {
	if userID == "" {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := loadRows[wishlistRow](s.path(localKeyWishlist))
	if err != nil {
		return false, nil
	}
	for i, w := range rows {
		if w.UserID == userID && w.PropertyID == propertyID {
			rows = append(rows[:i], rows[i+1:]...)
			if err := saveRows(s.path(localKeyWishlist), rows); err != nil {
				return true, nil
			}
			return false, nil
		}
	}
	rows = append(rows, wishlistRow{UserID: userID, PropertyID: propertyID})
	if err := saveRows(s.path(localKeyWishlist), rows); err != nil {
		return false, nil
	}
	return true, nil
}

func (s *LocalStore) GetWishlist(ctx context.Context, userID string) ([]models.Property, error) {
	if userID == "" {
		return []models.Property{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := loadRows[wishlistRow](s.path(localKeyWishlist))
	if err != nil {
		return nil, err
	}
	wanted := make(map[string]struct{})
	for _, w := range rows {
		if w.UserID == userID {
			wanted[w.PropertyID] = struct{}{}
		}
	}
	props, err := s.loadProperties()
	if err != nil {
		return nil, err
	}
	out := []models.Property{}
	for _, p := range props {
		if _, ok := wanted[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *LocalStore) SendRequest(ctx context.Context, seekerID, propertyID, ownerID, message string) (*models.AccommodationRequest, error) {
	if seekerID == "" {
		return nil, ErrNotAuthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := loadRows[requestRow](s.path(localKeyRequests))
	if err != nil {
		return nil, err
	}
	r := models.AccommodationRequest{
		ID:         uuid.NewString(),
		PropertyID: propertyID,
		OwnerID:    ownerID,
		SeekerID:   seekerID,
		Message:    message,
		Status:     models.StatusNew,
		CreatedAt:  time.Now().UTC(),
	}
	rows = append(rows, fromDomainRequest(r))
	if err := saveRows(s.path(localKeyRequests), rows); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *LocalStore) GetRequests(ctx context.Context, userID string) ([]models.AccommodationRequest, error) {
	if userID == "" {
		return []models.AccommodationRequest{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := loadRows[requestRow](s.path(localKeyRequests))
	if err != nil {
		return nil, err
	}
	out := []models.AccommodationRequest{}
	for _, r := range rows {
		if r.OwnerID == userID || r.SeekerID == userID {
			out = append(out, toDomainRequest(r))
		}
	}
	sortRequestsNewestFirst(out)
	return out, nil
}

func (s *LocalStore) AddMessage(ctx context.Context, requestID, senderID, text string) (*models.Message, error) {
	if senderID == "" {
		return nil, ErrNotAuthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := loadRows[messageRow](s.path(localKeyMessages))
	if err != nil {
		return nil, err
	}
	m := models.Message{
		ID:        uuid.NewString(),
		RequestID: requestID,
		SenderID:  senderID,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
	rows = append(rows, fromDomainMessage(m))
	if err := saveRows(s.path(localKeyMessages), rows); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *LocalStore) GetMessages(ctx context.Context, requestID string) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := loadRows[messageRow](s.path(localKeyMessages))
	if err != nil {
		return nil, err
	}
	out := []models.Message{}
	for _, r := range rows {
		if r.RequestID == requestID {
			out = append(out, toDomainMessage(r))
		}
	}
	return out, nil
}

func (s *LocalStore) Close() error { return nil }
