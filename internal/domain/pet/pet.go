// Package pet defines the pet profile listed for adoption.
package pet

import (
	"strings"

	"github.com/google/uuid"
)

// Gender of a pet. Matching in catalog filters is case-insensitive.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// Status is the availability state of a pet profile.
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusAdopted   Status = "ADOPTED"
)

// Pet is a pet profile. A pet is owned by exactly one owner through an
// advertisement; a pet with no advertisement is unlisted.
type Pet struct {
	ID          uuid.UUID `json:"pet_id"`
	Name        string    `json:"name"`
	Species     string    `json:"species"`
	Breed       string    `json:"breed"`
	Purebred    bool      `json:"purebred"`
	Gender      Gender    `json:"gender"`
	Description string    `json:"description"`
	Temperament string    `json:"temperament"`
	Color       string    `json:"color"`

	// Compatibility flags evaluated by the advertisement catalog filter.
	GoodWithKids             bool `json:"good_with_kids"`
	GoodWithOtherAnimals     bool `json:"good_with_other_animals"`
	SuitableForInexperienced bool `json:"suitable_for_inexperienced_owners"`
	SuitableForFamilies      bool `json:"suitable_for_families"`

	AgeYears int     `json:"age_years"`
	Price    float64 `json:"price"`
	Status   Status  `json:"status"`

	// Size and weight class flags.
	SmallSize bool `json:"small_size"`
	LowWeight bool `json:"low_weight"`

	MedicalNotes string `json:"medical_notes"`
}

// EntityID returns the pet's identifier.
func (p *Pet) EntityID() uuid.UUID { return p.ID }

// SetEntityID assigns the pet's identifier.
func (p *Pet) SetEntityID(id uuid.UUID) { p.ID = id }

// MatchesGender compares the pet's gender to the given value, ignoring case.
func (p *Pet) MatchesGender(gender string) bool {
	return strings.EqualFold(string(p.Gender), gender)
}
