package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/furrybuddy/service-adoption/internal/domain/advertisement"
	"github.com/furrybuddy/service-adoption/internal/state"
)

// AdvertisementHandler handles HTTP requests for advertisements.
type AdvertisementHandler struct {
	state *state.State
}

// NewAdvertisementHandler creates a new AdvertisementHandler.
func NewAdvertisementHandler(st *state.State) *AdvertisementHandler {
	return &AdvertisementHandler{state: st}
}

// RegisterRoutes registers all advertisement routes.
func (h *AdvertisementHandler) RegisterRoutes(r *gin.RouterGroup) {
	ads := r.Group("/advertisements")
	{
		ads.GET("", h.GetAllAdvertisements)
		ads.GET("/:id", h.GetAdvertisement)
		ads.POST("", h.AddAdvertisement)
		ads.PUT("/:id", h.SetAdvertisement)
		ads.DELETE("/:id", h.DeleteAdvertisement)
	}
}

// GetAllAdvertisements returns every advertisement.
func (h *AdvertisementHandler) GetAllAdvertisements(c *gin.Context) {
	ads, err := h.state.GetAllAdvertisements()
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, ads)
}

// GetAdvertisement returns a single advertisement by ID.
func (h *AdvertisementHandler) GetAdvertisement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid advertisement ID")
		return
	}

	ad, err := h.state.GetAdvertisement(id)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, ad)
}

// AddAdvertisement stores a new advertisement for an existing owner.
func (h *AdvertisementHandler) AddAdvertisement(c *gin.Context) {
	var ad advertisement.Advertisement
	if err := c.ShouldBindJSON(&ad); err != nil {
		BadRequest(c, err.Error())
		return
	}

	added, err := h.state.AddAdvertisement(c.Request.Context(), &ad)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, added)
}

// SetAdvertisement replaces a stored advertisement.
func (h *AdvertisementHandler) SetAdvertisement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid advertisement ID")
		return
	}

	var ad advertisement.Advertisement
	if err := c.ShouldBindJSON(&ad); err != nil {
		BadRequest(c, err.Error())
		return
	}

	updated, err := h.state.UpdateAdvertisement(c.Request.Context(), id, &ad)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteAdvertisement removes an advertisement and its owner's reference.
func (h *AdvertisementHandler) DeleteAdvertisement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid advertisement ID")
		return
	}

	removed, err := h.state.RemoveAdvertisement(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, removed)
}
