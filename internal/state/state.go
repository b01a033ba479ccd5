package state

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/furrybuddy/service-adoption/internal/domain"
	"github.com/furrybuddy/service-adoption/internal/domain/adoption"
	"github.com/furrybuddy/service-adoption/internal/domain/advertisement"
	"github.com/furrybuddy/service-adoption/internal/domain/pet"
	"github.com/furrybuddy/service-adoption/internal/domain/user"
	"github.com/furrybuddy/service-adoption/internal/events"
	"github.com/furrybuddy/service-adoption/internal/store"
)

// State composes the entity repositories, identity index, cascade
// coordinator, advertisement catalog and adoption workflow into the single
// service surface the HTTP boundary consumes. One RWMutex serializes writes
// against the cache/store pair; reads take the shared lock, so no read ever
// observes a partially applied cascade.
type State struct {
	mu        sync.RWMutex
	store     store.Store
	logger    *zap.Logger
	publisher events.Publisher

	pets     *Repository[*pet.Pet]
	owners   *Repository[*user.PetOwner]
	adopters *Repository[*user.Adopter]
	ads      *Repository[*advertisement.Advertisement]
	requests *Repository[*adoption.Request]

	identity *IdentityIndex
	cascade  *Coordinator
	catalog  *Catalog
	workflow *Workflow
}

// New wires the state core against a durable store. Call Init before serving.
func New(st store.Store, publisher events.Publisher, logger *zap.Logger) *State {
	s := &State{
		store:     st,
		logger:    logger,
		publisher: publisher,
		pets: NewRepository("Pet", store.TablePets, st,
			func() *pet.Pet { return &pet.Pet{} }),
		owners: NewRepository("PetOwner", store.TablePetOwners, st,
			func() *user.PetOwner { return &user.PetOwner{} }),
		adopters: NewRepository("Adopter", store.TableAdopters, st,
			func() *user.Adopter { return &user.Adopter{} }),
		ads: NewRepository("Advertisement", store.TableAdvertisements, st,
			func() *advertisement.Advertisement { return &advertisement.Advertisement{} }),
		requests: NewRepository("AdoptionRequest", store.TableAdoptionRequests, st,
			func() *adoption.Request { return &adoption.Request{} }),
		identity: NewIdentityIndex(),
	}
	s.cascade = &Coordinator{
		store:    st,
		owners:   s.owners,
		adopters: s.adopters,
		ads:      s.ads,
		requests: s.requests,
	}
	s.catalog = &Catalog{ads: s.ads, pets: s.pets}
	s.workflow = &Workflow{
		store:    st,
		owners:   s.owners,
		adopters: s.adopters,
		ads:      s.ads,
		requests: s.requests,
	}
	return s
}

// Init rehydrates every cache from the durable store and rebuilds the
// identity index. It must complete before any request is served.
func (s *State) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.pets.Rehydrate(ctx); err != nil {
		return err
	}
	if err := s.owners.Rehydrate(ctx); err != nil {
		return err
	}
	if err := s.adopters.Rehydrate(ctx); err != nil {
		return err
	}
	if err := s.ads.Rehydrate(ctx); err != nil {
		return err
	}
	if err := s.requests.Rehydrate(ctx); err != nil {
		return err
	}

	s.identity.reset()
	for _, o := range s.owners.all() {
		s.identity.restore(o.Email, o.ID)
	}
	for _, a := range s.adopters.all() {
		s.identity.restore(a.Email, a.ID)
	}

	s.logger.Info("state rehydrated from durable store",
		zap.Int("pets", s.pets.Len()),
		zap.Int("pet_owners", s.owners.Len()),
		zap.Int("adopters", s.adopters.Len()),
		zap.Int("advertisements", s.ads.Len()),
		zap.Int("adoption_requests", s.requests.Len()),
	)
	return nil
}

// Authenticate resolves the email to a user of the expected role and compares
// the password by literal equality. An unknown email or a user missing from
// the role's repository is "no match" (uuid.Nil, nil error); a password
// mismatch is an authentication failure that deliberately does not reveal
// which of the two credentials was wrong.
func (s *State) Authenticate(email, password string, role user.Role) (uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, ok := s.identity.Lookup(email)
	if !ok {
		return uuid.Nil, nil
	}

	var stored string
	switch role {
	case user.RolePetOwner:
		owner, ok := s.owners.cache[userID]
		if !ok {
			return uuid.Nil, nil
		}
		stored = owner.Password
	case user.RoleAdopter:
		adopter, ok := s.adopters.cache[userID]
		if !ok {
			return uuid.Nil, nil
		}
		stored = adopter.Password
	default:
		return uuid.Nil, domain.NewValidationError(fmt.Sprintf("unknown role: %s", role))
	}

	if stored != password {
		return uuid.Nil, domain.NewAuthenticationError("incorrect password or email")
	}
	return userID, nil
}

// FilterAdvertisements answers an attribute-based catalog query.
func (s *State) FilterAdvertisements(species, breed, gender string, tags []string) []*advertisement.Advertisement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.Filter(species, breed, gender, tags)
}

// CreateAdvertisement lists a pet for adoption on behalf of the owner. An
// unknown pet is stored first; the pet insert, the advertisement insert and
// the owner's reference list update commit as one transaction. The
// advertisement copies the pet's description and the owner's location.
func (s *State) CreateAdvertisement(ctx context.Context, ownerID uuid.UUID, p *pet.Pet) (*advertisement.Advertisement, error) {
	s.mu.Lock()
	ad, err := s.createAdvertisementLocked(ctx, ownerID, p)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.AdvertisementPosted, ad.ID.String(), events.AdvertisementEvent{
		AdvertisementID: ad.ID,
		OwnerID:         ad.OwnerID,
		PetID:           ad.PetID,
		OccurredAt:      time.Now().UTC(),
	})
	return ad, nil
}

func (s *State) createAdvertisementLocked(ctx context.Context, ownerID uuid.UUID, p *pet.Pet) (*advertisement.Advertisement, error) {
	owner, ok := s.owners.cache[ownerID]
	if !ok {
		return nil, domain.NewNotFoundError("PetOwner", ownerID.String())
	}

	newPet := p.ID == uuid.Nil || !s.pets.Has(p.ID)
	if p.ID == uuid.Nil {
		p.SetEntityID(uuid.New())
	}

	ad := advertisement.New(p.ID, ownerID, p.Description, owner.Location)
	ad.SetEntityID(uuid.New())

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
	var petData []byte
	if newPet {
		if petData, err = s.pets.encode(p); err != nil {
			return nil, err
		}
	}

	err = s.store.RunInTx(ctx, func(tx store.Tx) error {
		if newPet {
			if err := tx.Insert(store.TablePets, p.ID, petData); err != nil {
				return err
			}
		}
		if err := tx.Insert(store.TableAdvertisements, ad.ID, adData); err != nil {
			return err
		}
		return tx.Update(store.TablePetOwners, ownerID, ownerData)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist advertisement: %w", err)
	}

	if newPet {
		s.pets.cache[p.ID] = p
	}
	s.ads.cache[ad.ID] = ad
	s.owners.cache[ownerID] = &updatedOwner
	return ad, nil
}

// DeleteAdvertisement removes a listing on behalf of its owner. Returns false
// when the advertisement does not exist; fails when the actor is not the
// advertisement's owner.
func (s *State) DeleteAdvertisement(ctx context.Context, ownerID, adID uuid.UUID) (bool, error) {
	s.mu.Lock()
	ad, ok := s.ads.cache[adID]
	if !ok {
		s.mu.Unlock()
		return false, nil
	}
	if ad.OwnerID != ownerID {
		s.mu.Unlock()
		return false, domain.NewForbiddenError("advertisement does not belong to this pet owner")
	}
	removed, err := s.removeAdvertisementLocked(ctx, adID)
	s.mu.Unlock()
	if err != nil || !removed {
		return removed, err
	}

	s.publisher.Publish(ctx, events.AdvertisementRemoved, adID.String(), events.AdvertisementEvent{
		AdvertisementID: adID,
		OwnerID:         ad.OwnerID,
		PetID:           ad.PetID,
		OccurredAt:      time.Now().UTC(),
	})
	return true, nil
}

// CreateAdoptionRequest submits a pending request by the adopter against an
// existing advertisement.
func (s *State) CreateAdoptionRequest(ctx context.Context, adopterID, advertisementID uuid.UUID, message string) (*adoption.Request, error) {
	s.mu.Lock()
	req, err := s.workflow.Create(ctx, adopterID, advertisementID, message)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	s.publishRequestEvent(ctx, events.AdoptionRequestCreated, req)
	return req, nil
}

// CancelAdoptionRequest cancels a pending request on behalf of its adopter.
func (s *State) CancelAdoptionRequest(ctx context.Context, adopterID, requestID uuid.UUID) (*adoption.Request, error) {
	s.mu.Lock()
	req, err := s.workflow.Cancel(ctx, adopterID, requestID)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	s.publishRequestEvent(ctx, events.AdoptionRequestCancelled, req)
	return req, nil
}

// AcceptAdoptionRequest accepts a pending request on behalf of the owner of
// the referenced advertisement. Competing requests stay pending.
func (s *State) AcceptAdoptionRequest(ctx context.Context, ownerID, requestID uuid.UUID) (*adoption.Request, error) {
	s.mu.Lock()
	req, err := s.workflow.Accept(ctx, ownerID, requestID)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	s.publishRequestEvent(ctx, events.AdoptionRequestAccepted, req)
	return req, nil
}

// RejectAdoptionRequest rejects a pending request on behalf of the owner of
// the referenced advertisement.
func (s *State) RejectAdoptionRequest(ctx context.Context, ownerID, requestID uuid.UUID) (*adoption.Request, error) {
	s.mu.Lock()
	req, err := s.workflow.Reject(ctx, ownerID, requestID)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	s.publishRequestEvent(ctx, events.AdoptionRequestRejected, req)
	return req, nil
}

// Clear empties every in-memory map and truncates every durable table as one
// operation.
func (s *State) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked(ctx)
}

func (s *State) clearLocked(ctx context.Context) error {
	err := s.store.RunInTx(ctx, func(tx store.Tx) error {
		return tx.Truncate(store.AllTables()...)
	})
	if err != nil {
		return fmt.Errorf("failed to truncate durable tables: %w", err)
	}

	s.pets.reset()
	s.owners.reset()
	s.adopters.reset()
	s.ads.reset()
	s.requests.reset()
	s.identity.reset()
	s.logger.Info("state cleared")
	return nil
}

// Populate clears the state and seeds the fixed demonstration dataset.
func (s *State) Populate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.clearLocked(ctx); err != nil {
		return err
	}
	return s.populateLocked(ctx)
}

// Reset clears the state and then repopulates the demonstration dataset.
func (s *State) Reset(ctx context.Context) error {
	return s.Populate(ctx)
}

func (s *State) publishRequestEvent(ctx context.Context, eventType string, req *adoption.Request) {
	s.publisher.Publish(ctx, eventType, req.ID.String(), events.RequestEvent{
		RequestID:       req.ID,
		AdopterID:       req.AdopterID,
		AdvertisementID: req.AdvertisementID,
		Status:          string(req.Status),
		OccurredAt:      time.Now().UTC(),
	})
}
