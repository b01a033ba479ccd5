package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/furrybuddy/service-adoption/internal/domain/pet"
	"github.com/furrybuddy/service-adoption/internal/state"
)

// PetHandler handles HTTP requests for pet profiles.
type PetHandler struct {
	state *state.State
}

// NewPetHandler creates a new PetHandler.
func NewPetHandler(st *state.State) *PetHandler {
	return &PetHandler{state: st}
}

// RegisterRoutes registers all pet routes.
func (h *PetHandler) RegisterRoutes(r *gin.RouterGroup) {
	pets := r.Group("/pets")
	{
		pets.GET("", h.GetAllPets)
		pets.GET("/:id", h.GetPet)
		pets.POST("", h.AddPet)
		pets.PUT("/:id", h.SetPet)
		pets.DELETE("/:id", h.DeletePet)
	}
}

// GetAllPets returns every pet.
func (h *PetHandler) GetAllPets(c *gin.Context) {
	pets, err := h.state.GetAllPets()
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, pets)
}

// GetPet returns a single pet by ID.
func (h *PetHandler) GetPet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid pet ID")
		return
	}

	p, err := h.state.GetPet(id)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// AddPet stores a new pet profile.
func (h *PetHandler) AddPet(c *gin.Context) {
	var p pet.Pet
	if err := c.ShouldBindJSON(&p); err != nil {
		BadRequest(c, err.Error())
		return
	}

	added, err := h.state.AddPet(c.Request.Context(), &p)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, added)
}

// SetPet replaces a stored pet profile.
func (h *PetHandler) SetPet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid pet ID")
		return
	}

	var p pet.Pet
	if err := c.ShouldBindJSON(&p); err != nil {
		BadRequest(c, err.Error())
		return
	}

	updated, err := h.state.UpdatePet(c.Request.Context(), id, &p)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeletePet removes a pet profile.
func (h *PetHandler) DeletePet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, "invalid pet ID")
		return
	}

	removed, err := h.state.RemovePet(c.Request.Context(), id)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, removed)
}
