package state

import (
	"strings"

	"github.com/furrybuddy/service-adoption/internal/domain/advertisement"
	"github.com/furrybuddy/service-adoption/internal/domain/pet"
)

// Compatibility tags accepted by the catalog filter. Each tag constrains the
// corresponding pet flag; tags outside this set impose no constraint.
const (
	TagGoodWithKids         = "Good with Kids"
	TagGoodWithOtherAnimals = "Good with Other Animals"
	TagForInexperienced     = "Suitable for Inexperienced Owners"
	TagForFamilies          = "Suitable for Families"
)

// Catalog is the read side of the advertisement collection, answering
// attribute-based filter queries against the cache.
type Catalog struct {
	ads  *Repository[*advertisement.Advertisement]
	pets *Repository[*pet.Pet]
}

// Filter applies four independent predicates combined with AND: species,
// breed, gender (case-insensitive) and compatibility tags. Blank arguments
// impose no constraint. Results come back in ascending identifier order.
func (c *Catalog) Filter(species, breed, gender string, tags []string) []*advertisement.Advertisement {
	matches := make([]*advertisement.Advertisement, 0)
	for _, ad := range c.ads.all() {
		p, ok := c.pets.cache[ad.PetID]
		if !ok {
			continue
		}
		if species != "" && p.Species != species {
			continue
		}
		if breed != "" && p.Breed != breed {
			continue
		}
		if gender != "" && !p.MatchesGender(gender) {
			continue
		}
		if !matchesTags(p, tags) {
			continue
		}
		matches = append(matches, ad)
	}
	return matches
}

func matchesTags(p *pet.Pet, tags []string) bool {
	for _, tag := range tags {
		switch {
		case strings.EqualFold(tag, TagGoodWithKids):
			if !p.GoodWithKids {
				return false
			}
		case strings.EqualFold(tag, TagGoodWithOtherAnimals):
			if !p.GoodWithOtherAnimals {
				return false
			}
		case strings.EqualFold(tag, TagForInexperienced):
			if !p.SuitableForInexperienced {
				return false
			}
		case strings.EqualFold(tag, TagForFamilies):
			if !p.SuitableForFamilies {
				return false
			}
		}
	}
	return true
}
