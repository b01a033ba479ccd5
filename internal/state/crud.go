package state

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/furrybuddy/service-adoption/internal/domain"
	"github.com/furrybuddy/service-adoption/internal/domain/adoption"
	"github.com/furrybuddy/service-adoption/internal/domain/advertisement"
	"github.com/furrybuddy/service-adoption/internal/domain/pet"
	"github.com/furrybuddy/service-adoption/internal/domain/user"
	"github.com/furrybuddy/service-adoption/internal/store"
)

// --- Pets ---

// AddPet stores a pet profile, generating an identifier when absent.
func (s *State) AddPet(ctx context.Context, p *pet.Pet) (*pet.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pets.Add(ctx, p)
}

// GetPet returns the pet with the given identifier.
func (s *State) GetPet(id uuid.UUID) (*pet.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pets.Get(id)
}

// GetAllPets returns every pet in ascending identifier order.
func (s *State) GetAllPets() ([]*pet.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pets.GetAll()
}

// UpdatePet replaces all fields of the stored pet. Returns false when absent.
func (s *State) UpdatePet(ctx context.Context, id uuid.UUID, p *pet.Pet) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pets.Update(ctx, id, p)
}

// RemovePet deletes a pet profile. Returns false when absent.
func (s *State) RemovePet(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pets.Remove(ctx, id)
}

// --- Pet owners ---

// AddPetOwner registers a pet owner: the email is claimed in the identity
// index (blank or duplicate email and blank password fail validation), then
// the owner is stored. The email claim is released if the store rejects the
// insert.
func (s *State) AddPetOwner(ctx context.Context, o *user.PetOwner) (*user.PetOwner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o.ID == uuid.Nil {
		o.SetEntityID(uuid.New())
	}
	o.Role = user.RolePetOwner
	if err := s.identity.Register(o.Email, o.Password, o.ID); err != nil {
		return nil, err
	}

	added, err := s.owners.Add(ctx, o)
	if err != nil {
		s.identity.Deregister(o.Email)
		return nil, err
	}
	return added, nil
}

// GetPetOwner returns the owner with the given identifier.
func (s *State) GetPetOwner(id uuid.UUID) (*user.PetOwner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.owners.Get(id)
}

// GetAllPetOwners returns every owner in ascending identifier order.
func (s *State) GetAllPetOwners() ([]*user.PetOwner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.owners.GetAll()
}

// UpdatePetOwner replaces all fields of the stored owner, keeping the
// identity index in step when the email changes.
func (s *State) UpdatePetOwner(ctx context.Context, id uuid.UUID, o *user.PetOwner) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.owners.cache[id]
	if !ok {
		return false, nil
	}
	if err := s.checkEmailChange(current.Email, o.Email, o.Password, id); err != nil {
		return false, err
	}
	o.Role = user.RolePetOwner

	updated, err := s.owners.Update(ctx, id, o)
	if err != nil || !updated {
		return updated, err
	}
	if current.Email != o.Email {
		s.identity.Deregister(current.Email)
		s.identity.restore(o.Email, id)
	}
	return true, nil
}

// RemovePetOwner deletes an owner, cascading to its advertisements and their
// adoption requests, and releases the owner's email.
func (s *State) RemovePetOwner(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, ok := s.owners.cache[id]
	if !ok {
		return false, nil
	}
	email := owner.Email

	removed, err := s.cascade.DeletePetOwner(ctx, id)
	if err != nil || !removed {
		return removed, err
	}
	s.identity.Deregister(email)
	return true, nil
}

// --- Adopters ---

// AddAdopter registers an adopter, mirroring AddPetOwner.
func (s *State) AddAdopter(ctx context.Context, a *user.Adopter) (*user.Adopter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID == uuid.Nil {
		a.SetEntityID(uuid.New())
	}
	a.Role = user.RoleAdopter
	if err := s.identity.Register(a.Email, a.Password, a.ID); err != nil {
		return nil, err
	}

	added, err := s.adopters.Add(ctx, a)
	if err != nil {
		s.identity.Deregister(a.Email)
		return nil, err
	}
	return added, nil
}

// GetAdopter returns the adopter with the given identifier.
func (s *State) GetAdopter(id uuid.UUID) (*user.Adopter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.adopters.Get(id)
}

// GetAllAdopters returns every adopter in ascending identifier order.
func (s *State) GetAllAdopters() ([]*user.Adopter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.adopters.GetAll()
}

// UpdateAdopter replaces all fields of the stored adopter, keeping the
// identity index in step when the email changes.
func (s *State) UpdateAdopter(ctx context.Context, id uuid.UUID, a *user.Adopter) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.adopters.cache[id]
	if !ok {
		return false, nil
	}
	if err := s.checkEmailChange(current.Email, a.Email, a.Password, id); err != nil {
		return false, err
	}
	a.Role = user.RoleAdopter

	updated, err := s.adopters.Update(ctx, id, a)
	if err != nil || !updated {
		return updated, err
	}
	if current.Email != a.Email {
		s.identity.Deregister(current.Email)
		s.identity.restore(a.Email, id)
	}
	return true, nil
}

// RemoveAdopter deletes an adopter, cascading to the adoption requests it
// authored, and releases the adopter's email.
func (s *State) RemoveAdopter(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	adopter, ok := s.adopters.cache[id]
	if !ok {
		return false, nil
	}
	email := adopter.Email

	removed, err := s.cascade.DeleteAdopter(ctx, id)
	if err != nil || !removed {
		return removed, err
	}
	s.identity.Deregister(email)
	return true, nil
}

// checkEmailChange validates a full-replace update of a user's credentials.
func (s *State) checkEmailChange(oldEmail, newEmail, password string, id uuid.UUID) error {
	if newEmail == "" {
		return domain.NewValidationError("email must not be blank")
	}
	if password == "" {
		return domain.NewValidationError("password must not be blank")
	}
	if newEmail != oldEmail {
		if owner, taken := s.identity.Lookup(newEmail); taken && owner != id {
			return domain.NewValidationError("email " + newEmail + " is already registered")
		}
	}
	return nil
}

// --- Advertisements ---

// AddAdvertisement stores an advertisement referencing an existing owner and
// records it in the owner's reference list, as one transaction.
func (s *State) AddAdvertisement(ctx context.Context, ad *advertisement.Advertisement) (*advertisement.Advertisement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, ok := s.owners.cache[ad.OwnerID]
	if !ok {
		return nil, domain.NewNotFoundError("PetOwner", ad.OwnerID.String())
	}
	if ad.ID == uuid.Nil {
		ad.SetEntityID(uuid.New())
	} else if s.ads.Has(ad.ID) {
		return nil, domain.NewDuplicateError("Advertisement", ad.ID.String())
	}
	if ad.Status == "" {
		ad.Status = advertisement.StatusAvailable
	}

	updatedOwner := *owner
	updatedOwner.Advertisements = append(append([]uuid.UUID(nil), owner.Advertisements...), ad.ID)

	adData, err := s.ads.encode(ad)
	if err != nil {
		return nil, err
	}
	ownerData, err := s.owners.encode(&updatedOwner)
	if err != nil {
		return nil, err
	}
	err = s.store.RunInTx(ctx, func(tx store.Tx) error {
		if err := tx.Insert(store.TableAdvertisements, ad.ID, adData); err != nil {
			return err
		}
		return tx.Update(store.TablePetOwners, ad.OwnerID, ownerData)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist advertisement: %w", err)
	}

	s.ads.cache[ad.ID] = ad
	s.owners.cache[ad.OwnerID] = &updatedOwner
	return ad, nil
}

// GetAdvertisement returns the advertisement with the given identifier.
func (s *State) GetAdvertisement(id uuid.UUID) (*advertisement.Advertisement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ads.Get(id)
}

// GetAllAdvertisements returns every advertisement in ascending identifier order.
func (s *State) GetAllAdvertisements() ([]*advertisement.Advertisement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ads.GetAll()
}

// UpdateAdvertisement replaces all fields of the stored advertisement.
// Returns false when absent.
func (s *State) UpdateAdvertisement(ctx context.Context, id uuid.UUID, ad *advertisement.Advertisement) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ads.Update(ctx, id, ad)
}

// RemoveAdvertisement deletes an advertisement and strips it from its owner's
// reference list. Returns false when absent.
func (s *State) RemoveAdvertisement(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeAdvertisementLocked(ctx, id)
}

func (s *State) removeAdvertisementLocked(ctx context.Context, id uuid.UUID) (bool, error) {
	ad, ok := s.ads.cache[id]
	if !ok {
		return false, nil
	}

	var updatedOwner *user.PetOwner
	if owner, ok := s.owners.cache[ad.OwnerID]; ok {
		cp := *owner
		cp.Advertisements = append([]uuid.UUID(nil), owner.Advertisements...)
		cp.RemoveAdvertisement(id)
		updatedOwner = &cp
	}

	err := s.store.RunInTx(ctx, func(tx store.Tx) error {
		if err := tx.Delete(store.TableAdvertisements, id); err != nil {
			return err
		}
		if updatedOwner != nil {
			data, err := s.owners.encode(updatedOwner)
			if err != nil {
				return err
			}
			return tx.Update(store.TablePetOwners, ad.OwnerID, data)
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete advertisement: %w", err)
	}

	delete(s.ads.cache, id)
	if updatedOwner != nil {
		s.owners.cache[ad.OwnerID] = updatedOwner
	}
	return true, nil
}

// --- Adoption requests ---

// AddAdoptionRequest stores a request referencing an existing adopter and
// advertisement and records it in the adopter's reference list. A blank
// status defaults to pending.
func (s *State) AddAdoptionRequest(ctx context.Context, req *adoption.Request) (*adoption.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	adopter, ok := s.adopters.cache[req.AdopterID]
	if !ok {
		return nil, domain.NewNotFoundError("Adopter", req.AdopterID.String())
	}
	if _, ok := s.ads.cache[req.AdvertisementID]; !ok {
		return nil, domain.NewNotFoundError("Advertisement", req.AdvertisementID.String())
	}
	if req.ID == uuid.Nil {
		req.SetEntityID(uuid.New())
	} else if s.requests.Has(req.ID) {
		return nil, domain.NewDuplicateError("AdoptionRequest", req.ID.String())
	}
	if req.Status == "" {
		req.Status = adoption.StatusPending
	}

	updatedAdopter := *adopter
	updatedAdopter.Requests = append(append([]uuid.UUID(nil), adopter.Requests...), req.ID)

	reqData, err := s.requests.encode(req)
	if err != nil {
		return nil, err
	}
	adopterData, err := s.adopters.encode(&updatedAdopter)
	if err != nil {
		return nil, err
	}
	err = s.store.RunInTx(ctx, func(tx store.Tx) error {
		if err := tx.Insert(store.TableAdoptionRequests, req.ID, reqData); err != nil {
			return err
		}
		return tx.Update(store.TableAdopters, req.AdopterID, adopterData)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist adoption request: %w", err)
	}

	s.requests.cache[req.ID] = req
	s.adopters.cache[req.AdopterID] = &updatedAdopter
	return req, nil
}

// GetAdoptionRequest returns the request with the given identifier.
func (s *State) GetAdoptionRequest(id uuid.UUID) (*adoption.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.requests.Get(id)
}

// GetAllAdoptionRequests returns every request in ascending identifier order.
func (s *State) GetAllAdoptionRequests() ([]*adoption.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.requests.GetAll()
}

// UpdateAdoptionRequest replaces all fields of the stored request. Returns
// false when absent.
func (s *State) UpdateAdoptionRequest(ctx context.Context, id uuid.UUID, req *adoption.Request) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests.Update(ctx, id, req)
}

// RemoveAdoptionRequest deletes a request and strips it from its adopter's
// reference list. Returns false when absent.
func (s *State) RemoveAdoptionRequest(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.requests.cache[id]
	if !ok {
		return false, nil
	}

	var updatedAdopter *user.Adopter
	if adopter, ok := s.adopters.cache[req.AdopterID]; ok {
		cp := *adopter
		cp.Requests = append([]uuid.UUID(nil), adopter.Requests...)
		cp.RemoveRequest(id)
		updatedAdopter = &cp
	}

	err := s.store.RunInTx(ctx, func(tx store.Tx) error {
		if err := tx.Delete(store.TableAdoptionRequests, id); err != nil {
			return err
		}
		if updatedAdopter != nil {
			data, err := s.adopters.encode(updatedAdopter)
			if err != nil {
				return err
			}
			return tx.Update(store.TableAdopters, req.AdopterID, data)
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete adoption request: %w", err)
	}

	delete(s.requests.cache, id)
	if updatedAdopter != nil {
		s.adopters.cache[req.AdopterID] = updatedAdopter
	}
	return true, nil
}
