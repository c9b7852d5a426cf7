package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tolet/models"
)

const ctxUserKey = "currentUser"

// bearerToken extracts the session token from the Authorization header.
func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}

// RequireSession resolves the bearer token to a user and aborts with 401
// when there is none.
func (h *Handlers) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := h.Sessions.Current(c.Request.Context(), bearerToken(c))
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		c.Set(ctxUserKey, user)
		c.Next()
	}
}

// currentUser returns the session user set by RequireSession, or nil on
// open routes.
func currentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(ctxUserKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
