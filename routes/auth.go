package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tolet/models"
)

// CredentialsDTO carries a sign-up or login form.
type CredentialsDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"`
}

// POST /api/auth/signup
func (h *Handlers) SignUp(c *gin.Context) {
	var req CredentialsDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	user, token, err := h.Sessions.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

// POST /api/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var req CredentialsDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	user, token, err := h.Sessions.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

// POST /api/auth/logout
func (h *Handlers) Logout(c *gin.Context) {
	token := bearerToken(c)
	h.Sessions.Logout(token)
	h.resetNav(token)
	c.Status(http.StatusNoContent)
}

// GET /api/auth/me — returns the current user or JSON null, never an error.
func (h *Handlers) Me(c *gin.Context) {
	user := h.Sessions.Current(c.Request.Context(), bearerToken(c))
	c.JSON(http.StatusOK, user)
}

// PUT /api/profile
func (h *Handlers) UpdateProfile(c *gin.Context) {
	var upd models.ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if upd.Phone != nil && !models.ValidPhone(*upd.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please enter a valid 10-digit Indian phone number"})
		return
	}
	if upd.Age != nil && *upd.Age < 18 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "you must be at least 18 years old"})
		return
	}
	if upd.Role != nil && !models.ValidRole(*upd.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		return
	}

	user, err := h.Sessions.UpdateProfile(c.Request.Context(), bearerToken(c), upd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
