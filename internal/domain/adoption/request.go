// Package adoption defines the adoption request and its lifecycle state
// machine.
package adoption

import (
	"github.com/google/uuid"

	"github.com/furrybuddy/service-adoption/internal/domain"
)

// Request is an adopter's expression of interest in one advertisement.
type Request struct {
	ID              uuid.UUID `json:"request_id"`
	AdopterID       uuid.UUID `json:"adopter_id"`
	AdvertisementID uuid.UUID `json:"advertisement_id"`
	Message         string    `json:"message"`
	Status          Status    `json:"status"`
}

// NewRequest creates a pending adoption request authored by the given adopter.
func NewRequest(adopterID, advertisementID uuid.UUID, message string) *Request {
	return &Request{
		AdopterID:       adopterID,
		AdvertisementID: advertisementID,
		Message:         message,
		Status:          StatusPending,
	}
}

// EntityID returns the request's identifier.
func (r *Request) EntityID() uuid.UUID { return r.ID }

// SetEntityID assigns the request's identifier.
func (r *Request) SetEntityID(id uuid.UUID) { r.ID = id }

// Accept transitions the request from pending to accepted. Competing requests
// on the same advertisement are not touched; each request is resolved
// independently.
func (r *Request) Accept() error {
	return r.transition(StatusAccepted)
}

// Reject transitions the request from pending to rejected.
func (r *Request) Reject() error {
	return r.transition(StatusRejected)
}

// Cancel transitions the request from pending to cancelled.
func (r *Request) Cancel() error {
	return r.transition(StatusCancelled)
}

func (r *Request) transition(target Status) error {
	if !r.Status.CanTransitionTo(target) {
		return domain.NewInvalidTransitionError(string(r.Status), string(target))
	}
	r.Status = target
	return nil
}
