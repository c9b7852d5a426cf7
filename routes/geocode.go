package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tolet/models"
)

// GET /api/geocode/search?q=...
func (h *Handlers) GeocodeSearch(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query"})
		return
	}

	places, err := h.Geocode.Search(c.Request.Context(), query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, places)
}

// GET /api/geocode/reverse?lat=...&lon=...
func (h *Handlers) GeocodeReverse(c *gin.Context) {
	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lon, err2 := strconv.ParseFloat(c.Query("lon"), 64)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
		return
	}

	name, err := h.Geocode.Reverse(c.Request.Context(), models.Coordinates{Lat: lat, Lng: lon})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"displayName": name})
}
