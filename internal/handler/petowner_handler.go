package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/furrybuddy/service-adoption/internal/domain/user"
	"github.com/furrybuddy/service-adoption/internal/state"
)

// PetOwnerHandler handles HTTP requests for pet owner accounts.
type PetOwnerHandler struct {
	state *state.State
}

// NewPetOwnerHandler creates a new PetOwnerHandler.
func NewPetOwnerHandler(st *state.State) *PetOwnerHandler {
	return &PetOwnerHandler{state: st}
}

// RegisterRoutes registers all pet owner routes.
func (h *PetOwnerHandler) RegisterRoutes(r *gin.RouterGroup) {
	owners := r.Group("/petOwners")
	{
		owners.GET("", h.GetAllPetOwners)
		owners.GET("/:id", h.GetPetOwner)
		owners.POST("", h.AddPetOwner)
		owners.PUT("/:id", h.SetPetOwner)
		owners.DELETE("/:id", h.DeletePetOwner)
	}
}

// GetAllPetOwners returns every pet owner.
func (h *PetOwnerHandler) GetAllPetOwners(c *gin.Context) {
	owners, err := h.state.GetAllPetOwners()
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, owners)
}

// GetPetOwner returns a single pet owner by ID.
func (h *PetOwnerHandler) GetPetOwner(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid pet owner ID")
		return
	}

	owner, err := h.state.GetPetOwner(id)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, owner)
}

// AddPetOwner registers a new pet owner account.
func (h *PetOwnerHandler) AddPetOwner(c *gin.Context) {
	var owner user.PetOwner
	if err := c.ShouldBindJSON(&owner); err != nil {
		BadRequest(c, err.Error())
		return
	}

	added, err := h.state.AddPetOwner(c.Request.Context(), &owner)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, added)
}

// SetPetOwner replaces a stored pet owner account.
func (h *PetOwnerHandler) SetPetOwner(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid pet owner ID")
		return
	}

	var owner user.PetOwner
	if err := c.ShouldBindJSON(&owner); err != nil {
		BadRequest(c, err.Error())
		return
	}

	updated, err := h.state.UpdatePetOwner(c.Request.Context(), id, &owner)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeletePetOwner removes a pet owner and everything that depends on it.
func (h *PetOwnerHandler) DeletePetOwner(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid pet owner ID")
		return
	}

	removed, err := h.state.RemovePetOwner(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, removed)
}
