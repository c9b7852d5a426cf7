package navigation

import (
	"sync"

	"tolet/models"
)

// Controller holds one session's view state: the current page and a
// back-stack of previously visited pages. The initial state is Landing;
// there is no terminal state.
type Controller struct {
	mu      sync.Mutex
	current Page
	stack   []Page
}

// NewController returns a controller positioned on Landing with an empty
// back-stack.
func NewController() *Controller {
	return &Controller{current: Landing}
}

// Current returns the page the session is on.
func (c *Controller) Current() Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Navigate moves to a page, recording the previous one on the back-stack.
// Re-navigating to the already-current page records nothing.
func (c *Controller) Navigate(p Page) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p == c.current {
		return
	}
	c.stack = append(c.stack, c.current)
	c.current = p
}

// Back pops one entry from the stack, falling back to Landing when the
// stack is exhausted.
func (c *Controller) Back() Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n := len(c.stack); n > 0 {
		c.current = c.stack[n-1]
		c.stack = c.stack[:n-1]
	} else {
		c.current = Landing
	}
	return c.current
}

// Resolve applies the onboarding gating rules after an auth resolution:
// an authenticated user with an incomplete profile is forced to Profile,
// then one without a chosen role to RoleSelection. Anyone else stays where
// they are. Returns the resulting page.
func (c *Controller) Resolve(user *models.User) Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	if user == nil {
		return c.current
	}
	switch {
	case !user.ProfileComplete:
		c.gateTo(Profile)
	case user.Role == models.RoleNone:
		c.gateTo(RoleSelection)
	}
	return c.current
}

// gateTo moves to an onboarding page under the same no-duplicate rule as
// Navigate. Caller holds the lock.
func (c *Controller) gateTo(p Page) {
	if p == c.current {
		return
	}
	c.stack = append(c.stack, c.current)
	c.current = p
}

// Logout clears the history and returns the session to Landing.
func (c *Controller) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = Landing
	c.stack = c.stack[:0]
}
