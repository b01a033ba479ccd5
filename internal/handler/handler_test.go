package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/furrybuddy/service-adoption/internal/domain/adoption"
	"github.com/furrybuddy/service-adoption/internal/domain/advertisement"
	"github.com/furrybuddy/service-adoption/internal/domain/user"
	"github.com/furrybuddy/service-adoption/internal/events"
	"github.com/furrybuddy/service-adoption/internal/state"
	"github.com/furrybuddy/service-adoption/internal/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, *state.State) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ms := store.NewMemoryStore()
	st := state.New(ms, events.NopPublisher{}, zap.NewNop())
	require.NoError(t, st.Init(context.Background()))

	r := gin.New()
	NewPetHandler(st).RegisterRoutes(&r.RouterGroup)
	NewPetOwnerHandler(st).RegisterRoutes(&r.RouterGroup)
	NewAdopterHandler(st).RegisterRoutes(&r.RouterGroup)
	NewAdvertisementHandler(st).RegisterRoutes(&r.RouterGroup)
	NewAdoptionRequestHandler(st).RegisterRoutes(&r.RouterGroup)
	NewServiceHandler(st).RegisterRoutes(&r.RouterGroup)
	return r, st
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeInto(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestPetCRUDOverHTTP(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/pets", gin.H{"name": "Pepper", "species": "Dog"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var created struct {
		ID      uuid.UUID `json:"pet_id"`
		Name    string    `json:"name"`
		Species string    `json:"species"`
	}
	decodeInto(t, w, &created)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Pepper", created.Name)

	w = doJSON(t, r, http.MethodGet, "/pets/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/pets/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Body.String())
}

func TestGetMissingPetReturnsExceptionEnvelope(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/pets/"+uuid.New().String(), nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var envelope ExceptionDescription
	decodeInto(t, w, &envelope)
	assert.Equal(t, "NotFoundException", envelope.ExceptionClassName)
	assert.Contains(t, envelope.Message, "not found")
}

func TestInvalidIDReturnsBadRequest(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/pets/not-a-uuid", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope ExceptionDescription
	decodeInto(t, w, &envelope)
	assert.Equal(t, "IllegalArgumentException", envelope.ExceptionClassName)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r, _ := newTestRouter(t)

	payload := gin.H{"email": "alice@example.com", "password": "secret", "first_name": "Alice"}
	w := doJSON(t, r, http.MethodPost, "/petOwners", payload)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/adopters", payload)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var envelope ExceptionDescription
	decodeInto(t, w, &envelope)
	assert.Equal(t, "ValidationException", envelope.ExceptionClassName)
	assert.Contains(t, envelope.Message, "already registered")
}

func TestServicePopulateAndAuthenticate(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/service/populateDB", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "populated")

	w = doJSON(t, r, http.MethodGet, "/service/authenticate/alice@gmail.com/password123/petOwner", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var id uuid.UUID
	decodeInto(t, w, &id)
	assert.NotEqual(t, uuid.Nil, id)

	// Wrong password surfaces as an authentication failure.
	w = doJSON(t, r, http.MethodGet, "/service/authenticate/alice@gmail.com/wrong/petOwner", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	var envelope ExceptionDescription
	decodeInto(t, w, &envelope)
	assert.Equal(t, "AuthenticationException", envelope.ExceptionClassName)

	// Unknown email is null, not an error.
	w = doJSON(t, r, http.MethodGet, "/service/authenticate/nobody@gmail.com/pw/adopter", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())
}

func TestServiceAdoptionWorkflowOverHTTP(t *testing.T) {
	r, st := newTestRouter(t)
	ctx := context.Background()

	owner, err := st.AddPetOwner(ctx, user.NewPetOwner("owner@example.com", "pw", "O", "W", user.Location{}))
	require.NoError(t, err)
	adopter, err := st.AddAdopter(ctx, user.NewAdopter("adopter@example.com", "pw", "A", "D", user.Location{}))
	require.NoError(t, err)

	// List a pet through the service endpoint.
	w := doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/service/%s/createAdvertisement", owner.ID),
		gin.H{"name": "Pepper", "species": "Dog", "description": "Cute and friendly"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var ad advertisement.Advertisement
	decodeInto(t, w, &ad)
	assert.Equal(t, owner.ID, ad.OwnerID)
	assert.Equal(t, "Cute and friendly", ad.Description)

	// Request adoption and accept it.
	w = doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/service/%s/createAdoptionRequest", adopter.ID),
		gin.H{"advertisement_id": ad.ID, "message": "please"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var req adoption.Request
	decodeInto(t, w, &req)
	assert.Equal(t, adoption.StatusPending, req.Status)

	w = doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/service/%s/acceptAdoptionRequest/%s", owner.ID, req.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	stored, err := st.GetAdoptionRequest(req.ID)
	require.NoError(t, err)
	assert.Equal(t, adoption.StatusAccepted, stored.Status)

	// Accepting again reports the invalid transition through the envelope.
	w = doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/service/%s/acceptAdoptionRequest/%s", owner.ID, req.ID), nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	var envelope ExceptionDescription
	decodeInto(t, w, &envelope)
	assert.Equal(t, "InvalidTransitionException", envelope.ExceptionClassName)
}

func TestServiceFilterAdvertisements(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/service/populateDB", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Of the two seeded listings, Pepper the Labrador is not good with kids,
	// so the kids filter leaves only Simba's ad.
	w = doJSON(t, r, http.MethodGet,
		"/service/advertisements/filter?species=Dog&compatibility=Good+with+Kids", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var ads []advertisement.Advertisement
	decodeInto(t, w, &ads)
	require.Len(t, ads, 1)

	w = doJSON(t, r, http.MethodGet, "/service/advertisements/filter?breed=Labrador", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeInto(t, w, &ads)
	require.Len(t, ads, 1)
}
