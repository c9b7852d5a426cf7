package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tolet/geo"
	"tolet/models"
	"tolet/storage"
)

// GET /api/properties?type=...&min_price=...&max_price=...&lat=...&lng=...&radius_km=...
//
// Type and price narrowing happen in the store; the radius filter is a
// pure post-pass so every backend behaves identically.
func (h *Handlers) GetProperties(c *gin.Context) {
	filter := &storage.PropertyFilter{}
	if v := c.Query("type"); v != "" {
		filter.Type = models.PropertyType(v)
	}
	if v := c.Query("min_price"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.MinPrice = n
		}
	}
	if v := c.Query("max_price"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.MaxPrice = n
		}
	}

	props, err := h.Store.GetProperties(c.Request.Context(), filter)
	if err != nil {
		h.Logger.Warn("property listing failed: %v", err)
		props = []models.Property{}
	}

	if latS, lngS := c.Query("lat"), c.Query("lng"); latS != "" && lngS != "" {
		lat, err1 := strconv.ParseFloat(latS, 64)
		lng, err2 := strconv.ParseFloat(lngS, 64)
		radius, err3 := strconv.ParseFloat(c.DefaultQuery("radius_km", "5"), 64)
		if err1 == nil && err2 == nil && err3 == nil {
			props = geo.FilterProperties(props, geo.Filter{
				Center:   &models.Coordinates{Lat: lat, Lng: lng},
				RadiusKm: radius,
			})
		}
	}

	if props == nil {
		props = []models.Property{}
	}
	c.JSON(http.StatusOK, props)
}

// GET /api/properties/:id
func (h *Handlers) GetProperty(c *gin.Context) {
	p, err := h.Store.GetProperty(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// CreatePropertyDTO carries the listing form. Images are optional; a
// placeholder is stored when none are given.
type CreatePropertyDTO struct {
	PropertyType models.PropertyType `json:"propertyType" binding:"required"`
	RoomType     models.RoomType     `json:"roomType" binding:"required"`
	Rent         int                 `json:"rent" binding:"required"`
	Address      string              `json:"address" binding:"required"`
	Coordinates  models.Coordinates  `json:"coordinates"`
	Images       []string            `json:"images"`
	Description  string              `json:"description" binding:"required"`
}

// POST /api/properties — owners only.
func (h *Handlers) CreateProperty(c *gin.Context) {
	user := currentUser(c)
	if user.Role != models.RoleTenant {
		c.JSON(http.StatusForbidden, gin.H{"error": "only owners can publish listings"})
		return
	}

	var req CreatePropertyDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	input := models.NewProperty{
		OwnerID:      user.ID,
		PropertyType: req.PropertyType,
		RoomType:     req.RoomType,
		Rent:         req.Rent,
		Address:      req.Address,
		Coordinates:  req.Coordinates,
		Images:       req.Images,
		Description:  req.Description,
	}
	input.Normalize()
	if !input.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please fill in all listing fields with valid values"})
		return
	}

	p, err := h.Store.AddProperty(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GET /api/properties/:id/insight
func (h *Handlers) PropertyInsight(c *gin.Context) {
	p, err := h.Store.GetProperty(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}

	props, err := h.Store.GetProperties(c.Request.Context(), nil)
	if err != nil {
		h.Logger.Warn("market context unavailable: %v", err)
		props = []models.Property{}
	}
	report := h.Stats.Generate(props)

	c.JSON(http.StatusOK, gin.H{"insight": h.Insight.PropertyInsight(c.Request.Context(), *p, report)})
}

// GET /api/stats
func (h *Handlers) GetStats(c *gin.Context) {
	props, err := h.Store.GetProperties(c.Request.Context(), nil)
	if err != nil {
		props = []models.Property{}
	}
	c.JSON(http.StatusOK, h.Stats.Generate(props))
}
