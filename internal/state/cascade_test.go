package state

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/furrybuddy/service-adoption/internal/domain/adoption"
	"github.com/furrybuddy/service-adoption/internal/domain/pet"
	"github.com/furrybuddy/service-adoption/internal/domain/user"
	"github.com/furrybuddy/service-adoption/internal/store"
)

// buildCascadeFixture seeds one owner with two advertisements and two
// adopters, each holding a pending request on each advertisement (four
// requests total). A second owner with one advertisement must survive every
// cascade.
func buildCascadeFixture(t *testing.T, s *State) (owner *user.PetOwner, adopters [2]*user.Adopter, requests []*adoption.Request) {
	t.Helper()
	ctx := context.Background()

	owner = addTestOwner(t, s, "owner@example.com")
	otherOwner := addTestOwner(t, s, "other@example.com")
	adopters[0] = addTestAdopter(t, s, "first@example.com")
	adopters[1] = addTestAdopter(t, s, "second@example.com")

	ad1, err := s.CreateAdvertisement(ctx, owner.ID, &pet.Pet{Name: "Pepper"})
	require.NoError(t, err)
	ad2, err := s.CreateAdvertisement(ctx, owner.ID, &pet.Pet{Name: "Nala"})
	require.NoError(t, err)
	_, err = s.CreateAdvertisement(ctx, otherOwner.ID, &pet.Pet{Name: "Simba"})
	require.NoError(t, err)

	for _, adopter := range adopters {
		for _, adID := range []uuid.UUID{ad1.ID, ad2.ID} {
			req, err := s.CreateAdoptionRequest(ctx, adopter.ID, adID, "please")
			require.NoError(t, err)
			requests = append(requests, req)
		}
	}
	return owner, adopters, requests
}

func TestDeletePetOwnerCascades(t *testing.T) {
	s, ms := newTestState(t)
	owner, adopters, requests := buildCascadeFixture(t, s)

	removed, err := s.RemovePetOwner(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	// The owner, its two advertisements and all four requests are gone.
	assert.False(t, s.owners.Has(owner.ID))
	assert.Equal(t, 1, s.ads.Len(), "the other owner's advertisement survives")
	assert.Equal(t, 0, s.requests.Len())
	assert.Equal(t, 1, ms.Count(store.TableAdvertisements))
	assert.Equal(t, 0, ms.Count(store.TableAdoptionRequests))

	// Adopter reference lists no longer mention the removed requests.
	for _, adopter := range adopters {
		stored, err := s.GetAdopter(adopter.ID)
		require.NoError(t, err)
		for _, req := range requests {
			assert.NotContains(t, stored.Requests, req.ID)
		}
	}
}

func TestDeletePetOwnerCommitFailureIsAtomic(t *testing.T) {
	s, ms := newTestState(t)
	owner, _, _ := buildCascadeFixture(t, s)

	adsBefore := s.ads.Len()
	requestsBefore := s.requests.Len()

	ms.FailNextCommit(errors.New("connection reset"))
	_, err := s.RemovePetOwner(context.Background(), owner.ID)
	require.Error(t, err)

	// Nothing moved: not the owner, not a single dependent.
	assert.True(t, s.owners.Has(owner.ID))
	assert.Equal(t, adsBefore, s.ads.Len())
	assert.Equal(t, requestsBefore, s.requests.Len())
	assert.Equal(t, adsBefore, ms.Count(store.TableAdvertisements))
	assert.Equal(t, requestsBefore, ms.Count(store.TableAdoptionRequests))
	_, ok := s.identity.Lookup("owner@example.com")
	assert.True(t, ok, "email stays registered when the cascade fails")
}

func TestDeleteAdopterCascades(t *testing.T) {
	s, ms := newTestState(t)
	_, adopters, _ := buildCascadeFixture(t, s)

	removed, err := s.RemoveAdopter(context.Background(), adopters[0].ID)
	require.NoError(t, err)
	assert.True(t, removed)

	assert.False(t, s.adopters.Has(adopters[0].ID))
	assert.Equal(t, 2, s.requests.Len(), "only the removed adopter's requests go")
	assert.Equal(t, 2, ms.Count(store.TableAdoptionRequests))
	for _, req := range s.requests.all() {
		assert.Equal(t, adopters[1].ID, req.AdopterID)
	}

	// Advertisements are untouched by an adopter cascade.
	assert.Equal(t, 3, s.ads.Len())
}

func TestDeleteMissingOwnerReturnsFalse(t *testing.T) {
	s, _ := newTestState(t)

	removed, err := s.RemovePetOwner(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, removed)
}
