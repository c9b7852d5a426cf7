// Package session tracks the signed-in identity behind opaque bearer
// tokens and fans out sign-in/sign-out notifications.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"

	"tolet/models"
	"tolet/storage"
	"tolet/utils"
)

// EventKind labels an auth state change.
type EventKind int

const (
	SignedIn EventKind = iota
	SignedOut
)

// Event is delivered to subscribers on every auth state change.
type Event struct {
	Kind   EventKind
	UserID string
}

// Manager wraps the persistence gateway's auth primitives. Tokens are
// opaque uuids held server-side with a sliding TTL, so logout revokes
// immediately. Callers re-poll Current after mutating calls; the user
// record is always re-read through the gateway rather than cached.
type Manager struct {
	store  storage.Store
	tokens *ttlcache.Cache[string, string]
	logger *utils.Logger

	mu      sync.Mutex
	subs    map[int]chan Event
	nextSub int
	closed  bool
}

// NewManager creates a Manager issuing tokens that expire after ttl of
// inactivity.
func NewManager(store storage.Store, ttl time.Duration, logger *utils.Logger) *Manager {
	tokens := ttlcache.New(
		ttlcache.WithTTL[string, string](ttl),
	)
	go tokens.Start()

	return &Manager{
		store:  store,
		tokens: tokens,
		logger: logger,
		subs:   make(map[int]chan Event),
	}
}

// Login resolves credentials through the active backend and issues a token.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	u, err := m.store.Login(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	if u == nil {
		return nil, "", nil
	}
	token := m.issue(u.ID)
	m.notify(Event{Kind: SignedIn, UserID: u.ID})
	return u, token, nil
}

// SignUp creates an identity and signs it in.
func (m *Manager) SignUp(ctx context.Context, email, password string) (*models.User, string, error) {
	u, err := m.store.SignUp(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	token := m.issue(u.ID)
	m.notify(Event{Kind: SignedIn, UserID: u.ID})
	return u, token, nil
}

func (m *Manager) issue(userID string) string {
	token := uuid.NewString()
	m.tokens.Set(token, userID, ttlcache.DefaultTTL)
	return token
}

// UserID resolves a token to the signed-in user id, or "" when the token is
// unknown or expired. The lookup slides the token's TTL.
func (m *Manager) UserID(token string) string {
	if token == "" {
		return ""
	}
	item := m.tokens.Get(token)
	if item == nil {
		return ""
	}
	return item.Value()
}

// Current returns the signed-in user, or nil if unauthenticated or the
// lookup fails. It never returns an error.
func (m *Manager) Current(ctx context.Context, token string) *models.User {
	id := m.UserID(token)
	if id == "" {
		return nil
	}
	u, err := m.store.GetUser(ctx, id)
	if err != nil {
		return nil
	}
	return u
}

// Logout revokes a token. No-op when already logged out.
func (m *Manager) Logout(token string) {
	id := m.UserID(token)
	if id == "" {
		return
	}
	m.tokens.Delete(token)
	m.notify(Event{Kind: SignedOut, UserID: id})
}

// UpdateProfile applies a partial profile change for the token's user.
func (m *Manager) UpdateProfile(ctx context.Context, token string, upd models.ProfileUpdate) (*models.User, error) {
	id := m.UserID(token)
	if id == "" {
		return nil, storage.ErrNotAuthenticated
	}
	return m.store.UpdateProfile(ctx, id, upd)
}

// Subscribe returns a channel of auth events and an unsubscribe func. The
// channel is buffered; events are dropped rather than blocking auth calls
// on a slow subscriber.
func (m *Manager) Subscribe() (<-chan Event, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSub
	m.nextSub++
	ch := make(chan Event, 8)
	m.subs[id] = ch

	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if c, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(c)
		}
	}
}

func (m *Manager) notify(ev Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	for _, ch := range m.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Close stops the token cache and closes all subscriber channels. Must be
// called on teardown so no callback dangles past the application instance.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	for id, ch := range m.subs {
		delete(m.subs, id)
		close(ch)
	}
	m.mu.Unlock()

	m.tokens.Stop()
}
