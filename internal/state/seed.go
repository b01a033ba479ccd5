package state

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/furrybuddy/service-adoption/internal/domain/advertisement"
	"github.com/furrybuddy/service-adoption/internal/domain/pet"
	"github.com/furrybuddy/service-adoption/internal/domain/user"
)

// Fixed identifiers of the demonstration dataset. Clients and end-to-end
// suites rely on these staying stable across resets.
var (
	seedPetPepperID = uuid.MustParse("b8d0c81d-e1c6-4708-bd02-d218a23e4805")
	seedPetNalaID   = uuid.MustParse("358e3775-682a-4b85-a2e1-d3bf0632baea")
	seedPetSimbaID  = uuid.MustParse("17792447-fd66-464b-b27c-615a7d420d05")

	seedOwnerAliceID   = uuid.MustParse("d79b117e-6cd5-44f0-8ab0-8c87ccda04f0")
	seedOwnerBernardID = uuid.MustParse("c3498ff2-92af-4bf0-b6a2-6230baba08f6")

	seedAdopterBobID  = uuid.MustParse("312e2c8e-893a-4cbf-b0e3-f1412ad8a9c2")
	seedAdopterJaneID = uuid.MustParse("fb148060-61a6-4ca2-9ba0-ff88317332d0")

	seedAdPepperID = uuid.MustParse("a30dcf15-6fab-4b55-8ebe-b290fb3509df")
	seedAdSimbaID  = uuid.MustParse("356ba347-299d-48f2-b32e-6bc9144101ec")
)

// populateLocked seeds the demonstration dataset into an empty state: three
// pets, two pet owners, two adopters and an advertisement for Pepper and
// Simba. Caller holds the write lock and has cleared the state.
func (s *State) populateLocked(ctx context.Context) error {
	pets := []*pet.Pet{
		{
			ID:                       seedPetPepperID,
			Name:                     "Pepper",
			Species:                  "Dog",
			Breed:                    "Labrador",
			Purebred:                 false,
			Gender:                   pet.GenderFemale,
			Description:              "Cute and friendly",
			Temperament:              "Playful",
			Color:                    "black",
			GoodWithKids:             false,
			GoodWithOtherAnimals:     true,
			SuitableForInexperienced: true,
			SuitableForFamilies:      true,
			AgeYears:                 2,
			Price:                    200.0,
			Status:                   pet.StatusAvailable,
			SmallSize:                true,
			LowWeight:                true,
			MedicalNotes:             "None",
		},
		{
			ID:                       seedPetNalaID,
			Name:                     "Nala",
			Species:                  "Dog",
			Breed:                    "Shih-tzu",
			Purebred:                 true,
			Gender:                   pet.GenderFemale,
			Description:              "Cheerful dog",
			Temperament:              "Independant",
			Color:                    "beige",
			GoodWithKids:             true,
			GoodWithOtherAnimals:     true,
			SuitableForInexperienced: true,
			SuitableForFamilies:      true,
			AgeYears:                 11,
			Price:                    250.0,
			Status:                   pet.StatusAvailable,
			SmallSize:                true,
			LowWeight:                true,
			MedicalNotes:             "Cyst on back",
		},
		{
			ID:                       seedPetSimbaID,
			Name:                     "Simba",
			Species:                  "Dog",
			Breed:                    "Shih-tzu",
			Purebred:                 true,
			Gender:                   pet.GenderMale,
			Description:              "Cheerful",
			Temperament:              "Clingy",
			Color:                    "beige",
			GoodWithKids:             true,
			GoodWithOtherAnimals:     true,
			SuitableForInexperienced: true,
			SuitableForFamilies:      true,
			AgeYears:                 10,
			Price:                    250.0,
			Status:                   pet.StatusAvailable,
			SmallSize:                true,
			LowWeight:                true,
			MedicalNotes:             "Nearly blind",
		},
	}
	for _, p := range pets {
		if _, err := s.pets.Add(ctx, p); err != nil {
			return fmt.Errorf("failed to seed pet %s: %w", p.Name, err)
		}
	}

	alice := user.NewPetOwner("alice@gmail.com", "password123", "Alice", "Gold",
		user.Location{City: "Paris", PostalCode: "75000", Street: "Champs-elysee"})
	alice.SetEntityID(seedOwnerAliceID)
	alice.AddAdvertisement(seedAdPepperID)

	bernard := user.NewPetOwner("bernard@gmail.com", "password", "Bernard", "Jean",
		user.Location{City: "Chambesy", PostalCode: "1000", Street: "rue la fontaine"})
	bernard.SetEntityID(seedOwnerBernardID)
	bernard.AddAdvertisement(seedAdSimbaID)

	for _, o := range []*user.PetOwner{alice, bernard} {
		if _, err := s.owners.Add(ctx, o); err != nil {
			return fmt.Errorf("failed to seed pet owner %s: %w", o.Email, err)
		}
		s.identity.restore(o.Email, o.ID)
	}

	bob := user.NewAdopter("bob@gmail.com", "1234", "Bob", "Sinclar",
		user.Location{City: "Manhattan", PostalCode: "20900", Street: "5th ave"})
	bob.SetEntityID(seedAdopterBobID)

	jane := user.NewAdopter("jane@gmail.com", "ilovecats", "Jane", "Plane",
		user.Location{City: "Geneva", PostalCode: "1206", Street: "Rue de la croix d'or"})
	jane.SetEntityID(seedAdopterJaneID)

	for _, a := range []*user.Adopter{bob, jane} {
		if _, err := s.adopters.Add(ctx, a); err != nil {
			return fmt.Errorf("failed to seed adopter %s: %w", a.Email, err)
		}
		s.identity.restore(a.Email, a.ID)
	}

	adPepper := advertisement.New(seedPetPepperID, seedOwnerAliceID, pets[0].Description, alice.Location)
	adPepper.SetEntityID(seedAdPepperID)
	adSimba := advertisement.New(seedPetSimbaID, seedOwnerBernardID, pets[2].Description, bernard.Location)
	adSimba.SetEntityID(seedAdSimbaID)

	for _, ad := range []*advertisement.Advertisement{adPepper, adSimba} {
		if _, err := s.ads.Add(ctx, ad); err != nil {
			return fmt.Errorf("failed to seed advertisement %s: %w", ad.ID, err)
		}
	}

	s.logger.Info("demonstration dataset populated",
		zap.Int("pets", s.pets.Len()),
		zap.Int("pet_owners", s.owners.Len()),
		zap.Int("adopters", s.adopters.Len()),
		zap.Int("advertisements", s.ads.Len()),
	)
	return nil
}
