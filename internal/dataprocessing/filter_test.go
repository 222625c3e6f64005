package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/pkg/contracts/domain"
)

func filterFixture() []domain.Car {
	return []domain.Car{
		{CompanyName: "FERRARI", ModelName: "SF90 STRADALE", Price: 1100000, FuelType: "Hybrid"},
		{CompanyName: "TOYOTA", ModelName: "Corolla Sedan", Price: 26700, FuelType: "Hybrid"},
		{CompanyName: "TESLA", ModelName: "Model X", Price: 108490, FuelType: "Electric"},
	}
}

func companies(cars []domain.Car) []string {
	out := make([]string, 0, len(cars))
	for _, c := range cars {
		out = append(out, c.CompanyName)
	}
	return out
}

func TestFilterCarData(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *domain.Filter)
		want   []string
	}{
		{
			name:   "default filter keeps everything",
			mutate: func(f *domain.Filter) {},
			want:   []string{"FERRARI", "TOYOTA", "TESLA"},
		},
		{
			name:   "by brand",
			mutate: func(f *domain.Filter) { f.Brands = []string{"FERRARI"} },
			want:   []string{"FERRARI"},
		},
		{
			name:   "by price range",
			mutate: func(f *domain.Filter) { f.PriceRange = domain.PriceRange{50000, 200000} },
			want:   []string{"TESLA"},
		},
		{
			name:   "price bounds are inclusive",
			mutate: func(f *domain.Filter) { f.PriceRange = domain.PriceRange{26700, 108490} },
			want:   []string{"TOYOTA", "TESLA"},
		},
		{
			name:   "by fuel type",
			mutate: func(f *domain.Filter) { f.FuelTypes = []string{"Electric"} },
			want:   []string{"TESLA"},
		},
		{
			name:   "by body type",
			mutate: func(f *domain.Filter) { f.BodyTypes = []string{"Sedan"} },
			want:   []string{"TOYOTA"},
		},
		{
			name: "constraints combine",
			mutate: func(f *domain.Filter) {
				f.FuelTypes = []string{"Hybrid"}
				f.Brands = []string{"TOYOTA", "TESLA"}
			},
			want: []string{"TOYOTA"},
		},
		{
			name:   "no match",
			mutate: func(f *domain.Filter) { f.Brands = []string{"LADA"} },
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := domain.DefaultFilter()
			tt.mutate(&f)

			got := FilterCarData(filterFixture(), f)

			assert.Equal(t, tt.want, companies(got))
		})
	}
}

func TestFilterCarDataEmptyInput(t *testing.T) {
	got := FilterCarData(nil, domain.DefaultFilter())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterCarDataIsSubsetInOrder(t *testing.T) {
	cars := filterFixture()
	f := domain.DefaultFilter()
	f.FuelTypes = []string{"Hybrid"}

	got := FilterCarData(cars, f)

	assert.Equal(t, []domain.Car{cars[0], cars[1]}, got)
}
