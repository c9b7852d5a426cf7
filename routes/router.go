// Package routes exposes the application over HTTP: auth and profile,
// property search and publishing, wishlist, enquiry threads, geocoding and
// the per-session navigation state.
package routes

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/jellydator/ttlcache/v3"

	"tolet/navigation"
	"tolet/services"
	"tolet/session"
	"tolet/storage"
	"tolet/utils"
)

// Handlers bundles the dependencies shared by every route.
type Handlers struct {
	Store    storage.Store
	Sessions *session.Manager
	Insight  *services.InsightService
	Geocode  *services.GeocodeService
	Stats    *services.StatsService
	Logger   *utils.Logger

	navMu sync.Mutex
	nav   *ttlcache.Cache[string, *navigation.Controller]
}

// NewHandlers wires the route handlers.
func NewHandlers(store storage.Store, sessions *session.Manager, insight *services.InsightService,
	geocode *services.GeocodeService, stats *services.StatsService, logger *utils.Logger) *Handlers {
	nav := ttlcache.New(
		ttlcache.WithTTL[string, *navigation.Controller](navSessionTTL),
	)
	go nav.Start()

	return &Handlers{
		Store:    store,
		Sessions: sessions,
		Insight:  insight,
		Geocode:  geocode,
		Stats:    stats,
		Logger:   logger,
		nav:      nav,
	}
}

// Close stops the navigation-state cache's expiry worker.
func (h *Handlers) Close() {
	h.nav.Stop()
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(h *Handlers) *gin.Engine {
	r := gin.Default()
	api := r.Group("/api")

	// Open routes: reads must always render something.
	api.POST("/auth/signup", h.SignUp)
	api.POST("/auth/login", h.Login)
	api.POST("/auth/logout", h.Logout)
	api.GET("/auth/me", h.Me)

	api.GET("/properties", h.GetProperties)
	api.GET("/properties/:id", h.GetProperty)
	api.GET("/properties/:id/insight", h.PropertyInsight)
	api.GET("/stats", h.GetStats)

	api.GET("/geocode/search", h.GeocodeSearch)
	api.GET("/geocode/reverse", h.GeocodeReverse)

	api.GET("/nav/state", h.NavState)
	api.POST("/nav/go", h.NavGo)
	api.POST("/nav/back", h.NavBack)

	// Protected routes: a valid session is required.
	protected := api.Group("/")
	protected.Use(h.RequireSession())
	{
		protected.PUT("/profile", h.UpdateProfile)
		protected.POST("/properties", h.CreateProperty)
		protected.GET("/wishlist", h.GetWishlist)
		protected.POST("/wishlist/:id/toggle", h.ToggleWishlist)
		protected.GET("/requests", h.GetRequests)
		protected.POST("/requests", h.SendRequest)
		protected.GET("/requests/:id/messages", h.GetMessages)
		protected.POST("/requests/:id/messages", h.SendMessage)
	}

	return r
}

// writeError maps the storage error taxonomy onto HTTP responses. Write
// paths surface a human-readable message so the initiating form can retry.
func writeError(c *gin.Context, err error) {
	var ae *storage.AuthError
	switch {
	case errors.As(err, &ae):
		status := http.StatusUnauthorized
		if ae.Duplicate {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": ae.Reason})
	case errors.Is(err, storage.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
	case errors.Is(err, storage.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "backend not configured"})
	case errors.Is(err, storage.ErrRemoteUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "backend unavailable, please try again"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
