package state

import (
	"github.com/google/uuid"

	"github.com/furrybuddy/service-adoption/internal/domain"
)

// IdentityIndex maps an email address to exactly one user identifier across
// the combined owner and adopter populations. It backs registration
// uniqueness and authentication lookups.
type IdentityIndex struct {
	byEmail map[string]uuid.UUID
}

// NewIdentityIndex creates an empty index.
func NewIdentityIndex() *IdentityIndex {
	return &IdentityIndex{byEmail: make(map[string]uuid.UUID)}
}

// Register validates the credentials and associates the email with the user
// identifier. Fails when the email is blank or taken, or the password blank.
func (ix *IdentityIndex) Register(email, password string, userID uuid.UUID) error {
	if email == "" {
		return domain.NewValidationError("email must not be blank")
	}
	if password == "" {
		return domain.NewValidationError("password must not be blank")
	}
	if _, taken := ix.byEmail[email]; taken {
		return domain.NewValidationError("email " + email + " is already registered")
	}
	ix.byEmail[email] = userID
	return nil
}

// Lookup returns the user identifier registered for the email, if any.
func (ix *IdentityIndex) Lookup(email string) (uuid.UUID, bool) {
	id, ok := ix.byEmail[email]
	return id, ok
}

// Deregister removes the email association, if present.
func (ix *IdentityIndex) Deregister(email string) {
	delete(ix.byEmail, email)
}

// Len returns the number of registered emails.
func (ix *IdentityIndex) Len() int {
	return len(ix.byEmail)
}

func (ix *IdentityIndex) reset() {
	ix.byEmail = make(map[string]uuid.UUID)
}

// restore re-associates an email during rehydration, bypassing validation;
// the persisted population already satisfies the registration invariants.
func (ix *IdentityIndex) restore(email string, userID uuid.UUID) {
	ix.byEmail[email] = userID
}
