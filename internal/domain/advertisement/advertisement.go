// Package advertisement defines the listing that binds a pet to the owner
// offering it for adoption.
package advertisement

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/furrybuddy/service-adoption/internal/domain/user"
)

// Status is the lifecycle state of an advertisement.
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusPending   Status = "PENDING"
	StatusAdopted   Status = "ADOPTED"
	StatusRemoved   Status = "REMOVED"
)

// IsValid returns true if the status is a recognized advertisement status.
func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusPending, StatusAdopted, StatusRemoved:
		return true
	}
	return false
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a string to a Status, returning an error if invalid.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid advertisement status: %s", s)
	}
	return status, nil
}

// Advertisement is a listing for one pet by one owner. Description and
// Location are copied from the pet and the owner at creation time and evolve
// independently afterwards.
type Advertisement struct {
	ID          uuid.UUID     `json:"advertisement_id"`
	PetID       uuid.UUID     `json:"pet_id"`
	OwnerID     uuid.UUID     `json:"owner_id"`
	Description string        `json:"description"`
	Location    user.Location `json:"location"`
	Status      Status        `json:"status"`
}

// New creates an available advertisement for the given pet and owner,
// copying the pet's description and the owner's location.
func New(petID, ownerID uuid.UUID, description string, loc user.Location) *Advertisement {
	return &Advertisement{
		PetID:       petID,
		OwnerID:     ownerID,
		Description: description,
		Location:    loc,
		Status:      StatusAvailable,
	}
}

// EntityID returns the advertisement's identifier.
func (a *Advertisement) EntityID() uuid.UUID { return a.ID }

// SetEntityID assigns the advertisement's identifier.
func (a *Advertisement) SetEntityID(id uuid.UUID) { a.ID = id }
