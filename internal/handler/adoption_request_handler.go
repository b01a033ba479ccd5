package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/furrybuddy/service-adoption/internal/domain/adoption"
	"github.com/furrybuddy/service-adoption/internal/state"
)

// AdoptionRequestHandler handles HTTP requests for adoption requests.
type AdoptionRequestHandler struct {
	state *state.State
}

// NewAdoptionRequestHandler creates a new AdoptionRequestHandler.
func NewAdoptionRequestHandler(st *state.State) *AdoptionRequestHandler {
	return &AdoptionRequestHandler{state: st}
}

// RegisterRoutes registers all adoption request routes.
func (h *AdoptionRequestHandler) RegisterRoutes(r *gin.RouterGroup) {
	requests := r.Group("/adoptionRequests")
	{
		requests.GET("", h.GetAllAdoptionRequests)
		requests.GET("/:id", h.GetAdoptionRequest)
		requests.POST("", h.AddAdoptionRequest)
		requests.PUT("/:id", h.SetAdoptionRequest)
		requests.DELETE("/:id", h.DeleteAdoptionRequest)
	}
}

// GetAllAdoptionRequests returns every adoption request.
func (h *AdoptionRequestHandler) GetAllAdoptionRequests(c *gin.Context) {
	requests, err := h.state.GetAllAdoptionRequests()
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// GetAdoptionRequest returns a single adoption request by ID.
func (h *AdoptionRequestHandler) GetAdoptionRequest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid adoption request ID")
		return
	}

	req, err := h.state.GetAdoptionRequest(id)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// AddAdoptionRequest stores a new adoption request.
func (h *AdoptionRequestHandler) AddAdoptionRequest(c *gin.Context) {
	var req adoption.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	added, err := h.state.AddAdoptionRequest(c.Request.Context(), &req)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, added)
}

// SetAdoptionRequest replaces a stored adoption request.
func (h *AdoptionRequestHandler) SetAdoptionRequest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid adoption request ID")
		return
	}

	var req adoption.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	updated, err := h.state.UpdateAdoptionRequest(c.Request.Context(), id, &req)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteAdoptionRequest removes an adoption request and its adopter's
// reference.
func (h *AdoptionRequestHandler) DeleteAdoptionRequest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid adoption request ID")
		return
	}

	removed, err := h.state.RemoveAdoptionRequest(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, removed)
}
