package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/furrybuddy/service-adoption/internal/domain/pet"
	"github.com/furrybuddy/service-adoption/internal/domain/user"
	"github.com/furrybuddy/service-adoption/internal/state"
)

// ServiceHandler exposes the marketplace operations: seeding, advertisement
// lifecycle, the adoption workflow, authentication and catalog search.
type ServiceHandler struct {
	state *state.State
}

// NewServiceHandler creates a new ServiceHandler.
func NewServiceHandler(st *state.State) *ServiceHandler {
	return &ServiceHandler{state: st}
}

// RegisterRoutes registers all service routes. The :user segment carries the
// acting pet owner or adopter depending on the operation.
func (h *ServiceHandler) RegisterRoutes(r *gin.RouterGroup) {
	svc := r.Group("/service")
	{
		svc.GET("/populateDB", h.PopulateDB)
		svc.GET("/clearDB", h.ClearDB)
		svc.GET("/resetDB", h.ResetDB)

		svc.POST("/:user/createAdvertisement", h.CreateAdvertisement)
		svc.DELETE("/:user/deleteAdvertisement/:adID", h.DeleteAdvertisement)

		svc.POST("/:user/createAdoptionRequest", h.CreateAdoptionRequest)
		svc.POST("/:user/cancelAdoptionRequest/:requestID", h.CancelAdoptionRequest)
		svc.POST("/:user/acceptAdoptionRequest/:requestID", h.AcceptAdoptionRequest)
		svc.POST("/:user/rejectAdoptionRequest/:requestID", h.RejectAdoptionRequest)

		svc.GET("/authenticate/:email/:password/:role", h.Authenticate)
		svc.GET("/advertisements/filter", h.FilterAdvertisements)
	}
}

// PopulateDB clears the state and seeds the demonstration dataset.
func (h *ServiceHandler) PopulateDB(c *gin.Context) {
	if err := h.state.Populate(c.Request.Context()); err != nil {
		Error(c, err)
		return
	}
	c.String(http.StatusOK, fmt.Sprintf("FurryBuddy DB was populated at %s", time.Now().Format(time.RFC3339)))
}

// ClearDB empties every table and cache.
func (h *ServiceHandler) ClearDB(c *gin.Context) {
	if err := h.state.Clear(c.Request.Context()); err != nil {
		Error(c, err)
		return
	}
	c.String(http.StatusOK, fmt.Sprintf("FurryBuddy DB was cleared at %s", time.Now().Format(time.RFC3339)))
}

// ResetDB clears the state and repopulates the demonstration dataset.
func (h *ServiceHandler) ResetDB(c *gin.Context) {
	if err := h.state.Reset(c.Request.Context()); err != nil {
		Error(c, err)
		return
	}
	c.String(http.StatusOK, fmt.Sprintf("FurryBuddy DB was reset at %s", time.Now().Format(time.RFC3339)))
}

// CreateAdvertisement lists a pet for adoption on behalf of the pet owner in
// the path. An unknown pet in the payload is stored first.
func (h *ServiceHandler) CreateAdvertisement(c *gin.Context) {
	ownerID, err := uuid.Parse(c.Param("user"))
	if err != nil {
		BadRequest(c, "invalid pet owner ID")
		return
	}

	var p pet.Pet
	if err := c.ShouldBindJSON(&p); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ad, err := h.state.CreateAdvertisement(c.Request.Context(), ownerID, &p)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, ad)
}

// DeleteAdvertisement removes a listing on behalf of its owner.
func (h *ServiceHandler) DeleteAdvertisement(c *gin.Context) {
	ownerID, err := uuid.Parse(c.Param("user"))
	if err != nil {
		BadRequest(c, "invalid pet owner ID")
		return
	}
	adID, err := uuid.Parse(c.Param("adID"))
	if err != nil {
		BadRequest(c, "invalid advertisement ID")
		return
	}

	removed, err := h.state.DeleteAdvertisement(c.Request.Context(), ownerID, adID)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, removed)
}

type createAdoptionRequestPayload struct {
	AdvertisementID uuid.UUID `json:"advertisement_id" binding:"required"`
	Message         string    `json:"message"`
}

// CreateAdoptionRequest submits a pending request by the adopter in the path.
func (h *ServiceHandler) CreateAdoptionRequest(c *gin.Context) {
	adopterID, err := uuid.Parse(c.Param("user"))
	if err != nil {
		BadRequest(c, "invalid adopter ID")
		return
	}

	var payload createAdoptionRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		BadRequest(c, err.Error())
		return
	}

	req, err := h.state.CreateAdoptionRequest(c.Request.Context(), adopterID, payload.AdvertisementID, payload.Message)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// CancelAdoptionRequest cancels a pending request on behalf of its adopter.
func (h *ServiceHandler) CancelAdoptionRequest(c *gin.Context) {
	adopterID, requestID, ok := h.actorAndRequest(c, "invalid adopter ID")
	if !ok {
		return
	}

	if _, err := h.state.CancelAdoptionRequest(c.Request.Context(), adopterID, requestID); err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, true)
}

// AcceptAdoptionRequest accepts a pending request on behalf of the
// advertisement's owner.
func (h *ServiceHandler) AcceptAdoptionRequest(c *gin.Context) {
	ownerID, requestID, ok := h.actorAndRequest(c, "invalid pet owner ID")
	if !ok {
		return
	}

	if _, err := h.state.AcceptAdoptionRequest(c.Request.Context(), ownerID, requestID); err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, true)
}

// RejectAdoptionRequest rejects a pending request on behalf of the
// advertisement's owner.
func (h *ServiceHandler) RejectAdoptionRequest(c *gin.Context) {
	ownerID, requestID, ok := h.actorAndRequest(c, "invalid pet owner ID")
	if !ok {
		return
	}

	if _, err := h.state.RejectAdoptionRequest(c.Request.Context(), ownerID, requestID); err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, true)
}

func (h *ServiceHandler) actorAndRequest(c *gin.Context, actorMsg string) (uuid.UUID, uuid.UUID, bool) {
	actorID, err := uuid.Parse(c.Param("user"))
	if err != nil {
		BadRequest(c, actorMsg)
		return uuid.Nil, uuid.Nil, false
	}
	requestID, err := uuid.Parse(c.Param("requestID"))
	if err != nil {
		BadRequest(c, "invalid adoption request ID")
		return uuid.Nil, uuid.Nil, false
	}
	return actorID, requestID, true
}

// Authenticate resolves credentials to a user identifier. An unknown email or
// role mismatch yields null; a wrong password is an authentication failure.
func (h *ServiceHandler) Authenticate(c *gin.Context) {
	var role user.Role
	switch c.Param("role") {
	case "petOwner":
		role = user.RolePetOwner
	case "adopter":
		role = user.RoleAdopter
	default:
		c.JSON(http.StatusOK, nil)
		return
	}

	userID, err := h.state.Authenticate(c.Param("email"), c.Param("password"), role)
	if err != nil {
		Error(c, err)
		return
	}
	if userID == uuid.Nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, userID)
}

// FilterAdvertisements answers an attribute-based catalog query. The
// compatibility parameter may be repeated.
func (h *ServiceHandler) FilterAdvertisements(c *gin.Context) {
	ads := h.state.FilterAdvertisements(
		c.Query("species"),
		c.Query("breed"),
		c.Query("gender"),
		c.QueryArray("compatibility"),
	)
	c.JSON(http.StatusOK, ads)
}
