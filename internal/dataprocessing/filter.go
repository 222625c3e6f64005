package dataprocessing

import (
	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/pkg/contracts/domain"
)

// FilterCarData returns the cars satisfying every constraint of f, in input
// order. Body types are classified once for the whole batch.
func FilterCarData(cars []domain.Car, f domain.Filter) []domain.Car {
	out := make([]domain.Car, 0, len(cars))
	if len(cars) == 0 {
		return out
	}

	brands := toSet(f.Brands)
	fuels := toSet(f.FuelTypes)
	bodies := toSet(f.BodyTypes)

	var bodyTypes []domain.BodyType
	if len(bodies) > 0 {
		bodyTypes = ClassifyAll(cars)
	}

	for i, car := range cars {
		if len(brands) > 0 && !brands[car.CompanyName] {
			continue
		}
		if !f.PriceRange.Contains(car.Price) {
			continue
		}
		if len(fuels) > 0 && !fuels[car.FuelType] {
			continue
		}
		if len(bodies) > 0 && !bodies[string(bodyTypes[i])] {
			continue
		}
		out = append(out, car)
	}
	return out
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
