// Package user defines the two user populations of the marketplace: pet
// owners, who author advertisements, and adopters, who author adoption
// requests.
package user

import (
	"github.com/google/uuid"

	"github.com/furrybuddy/service-adoption/internal/domain"
)

// Role distinguishes the two user populations.
type Role string

const (
	RolePetOwner Role = "PET_OWNER"
	RoleAdopter  Role = "ADOPTER"
)

// IsValid returns true if the role is recognized.
func (r Role) IsValid() bool {
	return r == RolePetOwner || r == RoleAdopter
}

// Location is a postal address value object, copied onto advertisements at
// creation time.
type Location struct {
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Street     string `json:"street"`
}

// Profile holds the fields common to both user variants. Passwords are
// compared by literal equality; hashing is out of scope for this service.
type Profile struct {
	ID        uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Location  Location  `json:"location"`
	Role      Role      `json:"role"`
}

// Validate checks the registration invariants shared by both variants.
func (p *Profile) Validate() error {
	if p.Email == "" {
		return domain.NewValidationError("email must not be blank")
	}
	if p.Password == "" {
		return domain.NewValidationError("password must not be blank")
	}
	return nil
}

// PetOwner is a user who lists pets for adoption. Advertisements holds the
// identifiers of the advertisements the owner authored.
type PetOwner struct {
	Profile
	Advertisements []uuid.UUID `json:"advertisements"`
}

// NewPetOwner creates a pet owner profile with the owner role set.
func NewPetOwner(email, password, firstName, lastName string, loc Location) *PetOwner {
	return &PetOwner{
		Profile: Profile{
			Email:     email,
			Password:  password,
			FirstName: firstName,
			LastName:  lastName,
			Location:  loc,
			Role:      RolePetOwner,
		},
	}
}

// EntityID returns the owner's identifier.
func (o *PetOwner) EntityID() uuid.UUID { return o.ID }

// SetEntityID assigns the owner's identifier.
func (o *PetOwner) SetEntityID(id uuid.UUID) { o.ID = id }

// AddAdvertisement records an advertisement authored by this owner.
func (o *PetOwner) AddAdvertisement(adID uuid.UUID) {
	o.Advertisements = append(o.Advertisements, adID)
}

// RemoveAdvertisement drops an advertisement reference, if present.
func (o *PetOwner) RemoveAdvertisement(adID uuid.UUID) {
	o.Advertisements = removeID(o.Advertisements, adID)
}

// Adopter is a user who submits adoption requests. Requests holds the
// identifiers of the adoption requests the adopter authored.
type Adopter struct {
	Profile
	Requests []uuid.UUID `json:"adoption_requests"`
}

// NewAdopter creates an adopter profile with the adopter role set.
func NewAdopter(email, password, firstName, lastName string, loc Location) *Adopter {
	return &Adopter{
		Profile: Profile{
			Email:     email,
			Password:  password,
			FirstName: firstName,
			LastName:  lastName,
			Location:  loc,
			Role:      RoleAdopter,
		},
	}
}

// EntityID returns the adopter's identifier.
func (a *Adopter) EntityID() uuid.UUID { return a.ID }

// SetEntityID assigns the adopter's identifier.
func (a *Adopter) SetEntityID(id uuid.UUID) { a.ID = id }

// AddRequest records an adoption request authored by this adopter.
func (a *Adopter) AddRequest(requestID uuid.UUID) {
	a.Requests = append(a.Requests, requestID)
}

// RemoveRequest drops an adoption request reference, if present.
func (a *Adopter) RemoveRequest(requestID uuid.UUID) {
	a.Requests = removeID(a.Requests, requestID)
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
