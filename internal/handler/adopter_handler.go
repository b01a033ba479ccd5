package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/furrybuddy/service-adoption/internal/domain/user"
	"github.com/furrybuddy/service-adoption/internal/state"
)

// AdopterHandler handles HTTP requests for adopter accounts.
type AdopterHandler struct {
	state *state.State
}

// NewAdopterHandler creates a new AdopterHandler.
func NewAdopterHandler(st *state.State) *AdopterHandler {
	return &AdopterHandler{state: st}
}

// RegisterRoutes registers all adopter routes.
func (h *AdopterHandler) RegisterRoutes(r *gin.RouterGroup) {
	adopters := r.Group("/adopters")
	{
		adopters.GET("", h.GetAllAdopters)
		adopters.GET("/:id", h.GetAdopter)
		adopters.POST("", h.AddAdopter)
		adopters.PUT("/:id", h.SetAdopter)
		adopters.DELETE("/:id", h.DeleteAdopter)
	}
}

// GetAllAdopters returns every adopter.
func (h *AdopterHandler) GetAllAdopters(c *gin.Context) {
	adopters, err := h.state.GetAllAdopters()
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, adopters)
}

// GetAdopter returns a single adopter by ID.
func (h *AdopterHandler) GetAdopter(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid adopter ID")
		return
	}

	adopter, err := h.state.GetAdopter(id)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, adopter)
}

// AddAdopter registers a new adopter account.
func (h *AdopterHandler) AddAdopter(c *gin.Context) {
	var adopter user.Adopter
	if err := c.ShouldBindJSON(&adopter); err != nil {
		BadRequest(c, err.Error())
		return
	}

	added, err := h.state.AddAdopter(c.Request.Context(), &adopter)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, added)
}

// SetAdopter replaces a stored adopter account.
func (h *AdopterHandler) SetAdopter(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid adopter ID")
		return
	}

	var adopter user.Adopter
	if err := c.ShouldBindJSON(&adopter); err != nil {
		BadRequest(c, err.Error())
		return
	}

	updated, err := h.state.UpdateAdopter(c.Request.Context(), id, &adopter)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteAdopter removes an adopter and the requests it authored.
func (h *AdopterHandler) DeleteAdopter(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid adopter ID")
		return
	}

	removed, err := h.state.RemoveAdopter(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, removed)
}
