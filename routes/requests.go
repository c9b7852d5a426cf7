package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tolet/models"
)

// GET /api/wishlist
func (h *Handlers) GetWishlist(c *gin.Context) {
	user := currentUser(c)
	props, err := h.Store.GetWishlist(c.Request.Context(), user.ID)
	if err != nil || props == nil {
		props = []models.Property{}
	}
	c.JSON(http.StatusOK, props)
}

// POST /api/wishlist/:id/toggle
func (h *Handlers) ToggleWishlist(c *gin.Context) {
	user := currentUser(c)
	wishlisted, _ := h.Store.ToggleWishlist(c.Request.Context(), user.ID, c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"wishlisted": wishlisted})
}

// SendRequestDTO carries an enquiry form.
type SendRequestDTO struct {
	PropertyID string `json:"propertyId" binding:"required"`
	OwnerID    string `json:"ownerId" binding:"required"`
	Message    string `json:"message" binding:"required"`
}

// POST /api/requests — seekers contacting an owner about a property.
func (h *Handlers) SendRequest(c *gin.Context) {
	user := currentUser(c)
	if user.Role != models.RoleSeeker {
		c.JSON(http.StatusForbidden, gin.H{"error": "only seekers can send enquiries"})
		return
	}

	var req SendRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	r, err := h.Store.SendRequest(c.Request.Context(), user.ID, req.PropertyID, req.OwnerID, req.Message)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// GET /api/requests
func (h *Handlers) GetRequests(c *gin.Context) {
	user := currentUser(c)
	reqs, err := h.Store.GetRequests(c.Request.Context(), user.ID)
	if err != nil || reqs == nil {
		reqs = []models.AccommodationRequest{}
	}
	c.JSON(http.StatusOK, reqs)
}

// SendMessageDTO carries one thread message.
type SendMessageDTO struct {
	Text string `json:"text" binding:"required"`
}

// requestForUser returns the request iff the user participates in it.
func (h *Handlers) requestForUser(c *gin.Context, user *models.User, requestID string) *models.AccommodationRequest {
	reqs, err := h.Store.GetRequests(c.Request.Context(), user.ID)
	if err != nil {
		return nil
	}
	for i := range reqs {
		if reqs[i].ID == requestID {
			return &reqs[i]
		}
	}
	return nil
}

// POST /api/requests/:id/messages
func (h *Handlers) SendMessage(c *gin.Context) {
	user := currentUser(c)
	if h.requestForUser(c, user, c.Param("id")) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
		return
	}

	var req SendMessageDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	m, err := h.Store.AddMessage(c.Request.Context(), c.Param("id"), user.ID, req.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// GET /api/requests/:id/messages
func (h *Handlers) GetMessages(c *gin.Context) {
	user := currentUser(c)
	if h.requestForUser(c, user, c.Param("id")) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
		return
	}

	msgs, err := h.Store.GetMessages(c.Request.Context(), c.Param("id"))
	if err != nil || msgs == nil {
		msgs = []models.Message{}
	}
	c.JSON(http.StatusOK, msgs)
}
