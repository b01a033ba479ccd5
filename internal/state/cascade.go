package state

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/furrybuddy/service-adoption/internal/domain/adoption"
	"github.com/furrybuddy/service-adoption/internal/domain/advertisement"
	"github.com/furrybuddy/service-adoption/internal/domain/user"
	"github.com/furrybuddy/service-adoption/internal/store"
)

// Coordinator removes dependent entities before their root on owner and
// adopter deletion. The whole cascade plus the root delete runs as one store
// transaction; caches are only mutated after the commit, so a failure leaves
// both the store and the in-memory view unchanged.
type Coordinator struct {
	store    store.Store
	owners   *Repository[*user.PetOwner]
	adopters *Repository[*user.Adopter]
	ads      *Repository[*advertisement.Advertisement]
	requests *Repository[*adoption.Request]
}

// DeletePetOwner removes every adoption request referencing the owner's
// advertisements, then the advertisements, then the owner. Adopters who
// authored removed requests have the stale references stripped in the same
// transaction. Returns false when the owner does not exist.
func (c *Coordinator) DeletePetOwner(ctx context.Context, ownerID uuid.UUID) (bool, error) {
	if _, ok := c.owners.cache[ownerID]; !ok {
		return false, nil
	}

	var adIDs []uuid.UUID
	for _, ad := range c.ads.all() {
		if ad.OwnerID == ownerID {
			adIDs = append(adIDs, ad.ID)
		}
	}

	var requestIDs []uuid.UUID
	for _, adID := range adIDs {
		for _, req := range c.requests.all() {
			if req.AdvertisementID == adID {
				requestIDs = append(requestIDs, req.ID)
			}
		}
	}

	// Adopters referencing removed requests, with the references stripped.
	touched := make(map[uuid.UUID]*user.Adopter)
	for _, reqID := range requestIDs {
		req := c.requests.cache[reqID]
		adopter, ok := touched[req.AdopterID]
		if !ok {
			orig, exists := c.adopters.cache[req.AdopterID]
			if !exists {
				continue
			}
			cp := *orig
			cp.Requests = append([]uuid.UUID(nil), orig.Requests...)
			adopter = &cp
			touched[req.AdopterID] = adopter
		}
		adopter.RemoveRequest(reqID)
	}

	err := c.store.RunInTx(ctx, func(tx store.Tx) error {
		for _, id := range requestIDs {
			if err := tx.Delete(store.TableAdoptionRequests, id); err != nil {
				return err
			}
		}
		for _, id := range adIDs {
			if err := tx.Delete(store.TableAdvertisements, id); err != nil {
				return err
			}
		}
		for id, adopter := range touched {
			data, err := c.adopters.encode(adopter)
			if err != nil {
				return err
			}
			if err := tx.Update(store.TableAdopters, id, data); err != nil {
				return err
			}
		}
		return tx.Delete(store.TablePetOwners, ownerID)
	})
	if err != nil {
		return false, fmt.Errorf("failed to cascade pet owner delete: %w", err)
	}

	for _, id := range requestIDs {
		delete(c.requests.cache, id)
	}
	for _, id := range adIDs {
		delete(c.ads.cache, id)
	}
	for id, adopter := range touched {
		c.adopters.cache[id] = adopter
	}
	delete(c.owners.cache, ownerID)
	return true, nil
}

// DeleteAdopter removes every adoption request the adopter authored, then the
// adopter. Returns false when the adopter does not exist.
func (c *Coordinator) DeleteAdopter(ctx context.Context, adopterID uuid.UUID) (bool, error) {
	if _, ok := c.adopters.cache[adopterID]; !ok {
		return false, nil
	}

	var requestIDs []uuid.UUID
	for _, req := range c.requests.all() {
		if req.AdopterID == adopterID {
			requestIDs = append(requestIDs, req.ID)
		}
	}

	err := c.store.RunInTx(ctx, func(tx store.Tx) error {
		for _, id := range requestIDs {
			if err := tx.Delete(store.TableAdoptionRequests, id); err != nil {
				return err
			}
		}
		return tx.Delete(store.TableAdopters, adopterID)
	})
	if err != nil {
		return false, fmt.Errorf("failed to cascade adopter delete: %w", err)
	}

	for _, id := range requestIDs {
		delete(c.requests.cache, id)
	}
	delete(c.adopters.cache, adopterID)
	return true, nil
}
