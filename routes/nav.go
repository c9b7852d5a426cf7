package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"

	"tolet/navigation"
)

// navTokenHeader identifies an anonymous navigation session. Signed-in
// clients are keyed by their bearer token instead.
const navTokenHeader = "X-Nav-Token"

// navSessionTTL bounds how long an idle session's view state is retained.
// Lookups slide the expiry, so active sessions keep their history while
// abandoned tokens age out instead of accumulating.
const navSessionTTL = time.Hour

// navController returns the controller for this client, creating one on
// first sight. The token it is keyed under is echoed back so anonymous
// clients can stick to their state.
func (h *Handlers) navController(c *gin.Context) (*navigation.Controller, string) {
	token := bearerToken(c)
	if token == "" {
		token = c.GetHeader(navTokenHeader)
	}
	if token == "" {
		token = uuid.NewString()
	}

	h.navMu.Lock()
	defer h.navMu.Unlock()
	if item := h.nav.Get(token); item != nil {
		return item.Value(), token
	}
	ctrl := navigation.NewController()
	h.nav.Set(token, ctrl, ttlcache.DefaultTTL)
	return ctrl, token
}

// resetNav evicts a session's view state; called on logout so the registry
// never retains dead sessions.
func (h *Handlers) resetNav(token string) {
	if token == "" {
		return
	}
	h.nav.Delete(token)
}

func (h *Handlers) navResponse(c *gin.Context, ctrl *navigation.Controller, token string) {
	c.Header(navTokenHeader, token)
	c.JSON(http.StatusOK, gin.H{"page": ctrl.Current().String()})
}

// GET /api/nav/state — resolves the current page, applying the onboarding
// gating rules against the signed-in user.
func (h *Handlers) NavState(c *gin.Context) {
	ctrl, token := h.navController(c)
	user := h.Sessions.Current(c.Request.Context(), bearerToken(c))
	ctrl.Resolve(user)
	h.navResponse(c, ctrl, token)
}

// NavGoDTO names the page to navigate to.
type NavGoDTO struct {
	Page string `json:"page" binding:"required"`
}

// POST /api/nav/go
func (h *Handlers) NavGo(c *gin.Context) {
	var req NavGoDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	page, err := navigation.ParsePage(req.Page)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown page"})
		return
	}

	ctrl, token := h.navController(c)
	ctrl.Navigate(page)
	// Gating still applies: an incomplete user cannot navigate past
	// onboarding.
	user := h.Sessions.Current(c.Request.Context(), bearerToken(c))
	ctrl.Resolve(user)
	h.navResponse(c, ctrl, token)
}

// POST /api/nav/back
func (h *Handlers) NavBack(c *gin.Context) {
	ctrl, token := h.navController(c)
	ctrl.Back()
	h.navResponse(c, ctrl, token)
}
