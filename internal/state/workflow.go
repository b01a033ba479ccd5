package state

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/furrybuddy/service-adoption/internal/domain"
	"github.com/furrybuddy/service-adoption/internal/domain/adoption"
	"github.com/furrybuddy/service-adoption/internal/domain/advertisement"
	"github.com/furrybuddy/service-adoption/internal/domain/user"
	"github.com/furrybuddy/service-adoption/internal/store"
)

// Workflow drives an adoption request from creation to a terminal outcome,
// enforcing which actor may perform each transition. Transitions mutate a
// copy of the request; the cache is swapped only after the store commit.
type Workflow struct {
	store    store.Store
	owners   *Repository[*user.PetOwner]
	adopters *Repository[*user.Adopter]
	ads      *Repository[*advertisement.Advertisement]
	requests *Repository[*adoption.Request]
}

// Create submits a pending request by the adopter against an existing
// advertisement. The request insert and the adopter's reference list update
// commit as one transaction.
func (w *Workflow) Create(ctx context.Context, adopterID, advertisementID uuid.UUID, message string) (*adoption.Request, error) {
	adopter, ok := w.adopters.cache[adopterID]
	if !ok {
		return nil, domain.NewNotFoundError("Adopter", adopterID.String())
	}
	if _, ok := w.ads.cache[advertisementID]; !ok {
		return nil, domain.NewNotFoundError("Advertisement", advertisementID.String())
	}

	req := adoption.NewRequest(adopterID, advertisementID, message)
	req.SetEntityID(uuid.New())

	updated := *adopter
	updated.Requests = append(append([]uuid.UUID(nil), adopter.Requests...), req.ID)

	reqData, err := w.requests.encode(req)
	if err != nil {
		return nil, err
	}
	adopterData, err := w.adopters.encode(&updated)
	if err != nil {
		return nil, err
	}

	err = w.store.RunInTx(ctx, func(tx store.Tx) error {
		if err := tx.Insert(store.TableAdoptionRequests, req.ID, reqData); err != nil {
			return err
		}
		return tx.Update(store.TableAdopters, adopterID, adopterData)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist adoption request: %w", err)
	}

	w.requests.cache[req.ID] = req
	w.adopters.cache[adopterID] = &updated
	return req, nil
}

// Cancel moves a pending request to cancelled. Only the requesting adopter
// may cancel.
func (w *Workflow) Cancel(ctx context.Context, adopterID, requestID uuid.UUID) (*adoption.Request, error) {
	if _, ok := w.adopters.cache[adopterID]; !ok {
		return nil, domain.NewNotFoundError("Adopter", adopterID.String())
	}
	req, ok := w.requests.cache[requestID]
	if !ok {
		return nil, domain.NewNotFoundError("AdoptionRequest", requestID.String())
	}
	if req.AdopterID != adopterID {
		return nil, domain.NewForbiddenError("adoption request does not belong to this adopter")
	}
	return w.apply(ctx, req, (*adoption.Request).Cancel)
}

// Accept moves a pending request to accepted. Only the owner of the
// referenced advertisement may accept. Competing requests on the same
// advertisement stay pending until resolved individually.
func (w *Workflow) Accept(ctx context.Context, ownerID, requestID uuid.UUID) (*adoption.Request, error) {
	req, err := w.requestForOwner(ownerID, requestID)
	if err != nil {
		return nil, err
	}
	return w.apply(ctx, req, (*adoption.Request).Accept)
}

// Reject moves a pending request to rejected. Only the owner of the
// referenced advertisement may reject.
func (w *Workflow) Reject(ctx context.Context, ownerID, requestID uuid.UUID) (*adoption.Request, error) {
	req, err := w.requestForOwner(ownerID, requestID)
	if err != nil {
		return nil, err
	}
	return w.apply(ctx, req, (*adoption.Request).Reject)
}

// requestForOwner resolves the request and checks that ownerID owns the
// advertisement it references.
func (w *Workflow) requestForOwner(ownerID, requestID uuid.UUID) (*adoption.Request, error) {
	if _, ok := w.owners.cache[ownerID]; !ok {
		return nil, domain.NewNotFoundError("PetOwner", ownerID.String())
	}
	req, ok := w.requests.cache[requestID]
	if !ok {
		return nil, domain.NewNotFoundError("AdoptionRequest", requestID.String())
	}
	ad, ok := w.ads.cache[req.AdvertisementID]
	if !ok {
		return nil, domain.NewNotFoundError("Advertisement", req.AdvertisementID.String())
	}
	if ad.OwnerID != ownerID {
		return nil, domain.NewForbiddenError("advertisement does not belong to this pet owner")
	}
	return req, nil
}

// apply runs the transition on a copy, persists it and swaps the cache entry.
func (w *Workflow) apply(ctx context.Context, req *adoption.Request, transition func(*adoption.Request) error) (*adoption.Request, error) {
	updated := *req
	if err := transition(&updated); err != nil {
		return nil, err
	}

	data, err := w.requests.encode(&updated)
	if err != nil {
		return nil, err
	}
	err = w.store.RunInTx(ctx, func(tx store.Tx) error {
		return tx.Update(store.TableAdoptionRequests, req.ID, data)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist adoption request transition: %w", err)
	}

	w.requests.cache[req.ID] = &updated
	return &updated, nil
}
