// Package unitgen expands a property configuration into its unit inventory.
//
// Generation walks blocks, then floors, then unit positions. Each position is
// named by the configuration's naming scheme, excluded names are dropped, and
// the first occurrence of a name wins when the scheme produces collisions.
// Nothing in this package touches storage.
package unitgen

import (
	"iter"
	"slices"

	"condohub/server/internal/models"
)

// Candidates lazily yields every non-excluded unit of cfg in block-major,
// then floor, then position order. Names are not deduplicated.
func Candidates(condoID string, cfg models.PropertyConfiguration) iter.Seq[models.Unit] {
	scheme := cfg.NamingScheme
	excluded := cfg.ExcludedSet()

	return func(yield func(models.Unit) bool) {
		for blockIdx := 1; blockIdx <= cfg.Blocks; blockIdx++ {
			blockLabel := BlockLabel(blockIdx, scheme)

			for floorIdx := 1; floorIdx <= cfg.FloorsPerBlock; floorIdx++ {
				actualFloor := scheme.StartFloor + floorIdx - 1
				floorDisplay := FloorDisplay(actualFloor)

				for unitIdx := 1; unitIdx <= cfg.UnitsPerFloor; unitIdx++ {
					name := UnitName(blockIdx, floorDisplay, unitIdx, scheme)
					if _, skip := excluded[name]; skip {
						continue
					}
					if !yield(newUnit(condoID, name, actualFloor, blockLabel, cfg.UnitTypes)) {
						return
					}
				}
			}
		}
	}
}

// Generate validates cfg and returns the deduplicated, exclusion-filtered
// units for condoID. The result is deterministic for a given input.
func Generate(condoID string, cfg models.PropertyConfiguration) ([]models.Unit, error) {
	if err := Validate(condoID, cfg); err != nil {
		return nil, err
	}

	return Dedupe(slices.Collect(Candidates(condoID, cfg))), nil
}

// Dedupe keeps the first unit for every unit number, preserving order.
func Dedupe(units []models.Unit) []models.Unit {
	out := make([]models.Unit, 0, len(units))
	seen := make(map[string]struct{}, len(units))
	for _, u := range units {
		if _, dup := seen[u.UnitNumber]; dup {
			continue
		}
		seen[u.UnitNumber] = struct{}{}
		out = append(out, u)
	}
	return out
}

func newUnit(condoID, name string, floor int, block string, unitTypes map[string]string) models.Unit {
	unitType, ok := unitTypes[name]
	if !ok {
		unitType = models.DefaultUnitType
	}
	return models.Unit{
		CondoID:        condoID,
		UnitNumber:     name,
		FloorNumber:    floor,
		BlockNumber:    block,
		UnitType:       unitType,
		Status:         models.UnitStatusVacant,
		Excluded:       false,
		ResidentEmails: []string{},
	}
}
