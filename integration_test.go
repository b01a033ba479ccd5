//go:build integration

package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/furrybuddy/service-adoption/internal/domain/adoption"
	"github.com/furrybuddy/service-adoption/internal/domain/pet"
	"github.com/furrybuddy/service-adoption/internal/domain/user"
	"github.com/furrybuddy/service-adoption/internal/events"
	"github.com/furrybuddy/service-adoption/internal/store"
)

// TestPopulateSurvivesRestart verifies that the demonstration dataset seeded
// into PostgreSQL is fully rehydrated by a fresh state facade, including the
// identity index.
func TestPopulateSurvivesRestart(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	first := newStateOverStore(t, infra.Store, nil)
	require.NoError(t, first.Populate(context.Background()))

	// Simulate a restart: a second facade over the same database.
	second := newStateOverStore(t, infra.Store, nil)

	pets, err := second.GetAllPets()
	require.NoError(t, err)
	assert.Len(t, pets, 3)

	ads, err := second.GetAllAdvertisements()
	require.NoError(t, err)
	assert.Len(t, ads, 2)

	id, err := second.Authenticate("alice@gmail.com", "password123", user.RolePetOwner)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id, "identity index rebuilt from the durable rows")
}

// TestAdoptionWorkflowPublishesEvents runs the full lifecycle against
// PostgreSQL and asserts the accepted event lands on the adoption topic.
func TestAdoptionWorkflowPublishesEvents(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	s := newStateOverStore(t, infra.Store, infra.KafkaBrokers)
	ctx := context.Background()

	owner, err := s.AddPetOwner(ctx, user.NewPetOwner("owner@test.com", "pw", "Owner", "Test", user.Location{City: "Geneva"}))
	require.NoError(t, err)
	adopter, err := s.AddAdopter(ctx, user.NewAdopter("adopter@test.com", "pw", "Adopter", "Test", user.Location{City: "Paris"}))
	require.NoError(t, err)

	ad, err := s.CreateAdvertisement(ctx, owner.ID, &pet.Pet{Name: "Pepper", Species: "Dog", Description: "Cute and friendly"})
	require.NoError(t, err)

	req, err := s.CreateAdoptionRequest(ctx, adopter.ID, ad.ID, "please")
	require.NoError(t, err)

	accepted, err := s.AcceptAdoptionRequest(ctx, owner.ID, req.ID)
	require.NoError(t, err)
	assert.Equal(t, adoption.StatusAccepted, accepted.Status)

	ce := consumeOneEvent(t, infra.KafkaBrokers, events.TopicAdoptionEvents,
		events.AdoptionRequestAccepted, 15*time.Second)

	var payload events.RequestEvent
	require.NoError(t, ce.ParseData(&payload))
	assert.Equal(t, req.ID, payload.RequestID)
	assert.Equal(t, adopter.ID, payload.AdopterID)
	assert.Equal(t, ad.ID, payload.AdvertisementID)
	assert.Equal(t, "ACCEPTED", payload.Status)
}

// TestCascadeDeleteOwnerIsDurable verifies that an owner cascade committed to
// PostgreSQL is visible after rehydration: advertisements and requests are
// gone and adopter reference lists are stripped.
func TestCascadeDeleteOwnerIsDurable(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	s := newStateOverStore(t, infra.Store, nil)
	ctx := context.Background()

	owner, err := s.AddPetOwner(ctx, user.NewPetOwner("owner@test.com", "pw", "Owner", "Test", user.Location{}))
	require.NoError(t, err)
	adopter, err := s.AddAdopter(ctx, user.NewAdopter("adopter@test.com", "pw", "Adopter", "Test", user.Location{}))
	require.NoError(t, err)

	ad, err := s.CreateAdvertisement(ctx, owner.ID, &pet.Pet{Name: "Pepper"})
	require.NoError(t, err)
	req, err := s.CreateAdoptionRequest(ctx, adopter.ID, ad.ID, "")
	require.NoError(t, err)

	removed, err := s.RemovePetOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	// Rehydrate from scratch and check the durable view.
	fresh := newStateOverStore(t, infra.Store, nil)

	rows, err := infra.Store.LoadAll(ctx, store.TablePetOwners)
	require.NoError(t, err)
	assert.Empty(t, rows)
	rows, err = infra.Store.LoadAll(ctx, store.TableAdvertisements)
	require.NoError(t, err)
	assert.Empty(t, rows)
	rows, err = infra.Store.LoadAll(ctx, store.TableAdoptionRequests)
	require.NoError(t, err)
	assert.Empty(t, rows)

	storedAdopter, err := fresh.GetAdopter(adopter.ID)
	require.NoError(t, err)
	assert.NotContains(t, storedAdopter.Requests, req.ID)
}
