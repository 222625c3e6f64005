package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultFilter(t *testing.T) {
	f := DefaultFilter()

	assert.Empty(t, f.Brands)
	assert.Empty(t, f.FuelTypes)
	assert.Empty(t, f.BodyTypes)
	assert.Equal(t, PriceRange{0, 5000000}, f.PriceRange)
	assert.True(t, f.IsDefault())
}

func TestPriceRangeContains(t *testing.T) {
	r := PriceRange{100, 200}

	assert.True(t, r.Contains(100))
	assert.True(t, r.Contains(200))
	assert.True(t, r.Contains(150))
	assert.False(t, r.Contains(99.99))
	assert.False(t, r.Contains(200.01))
}

func TestFilterPatchApply(t *testing.T) {
	base := DefaultFilter()
	base.Brands = []string{"AUDI"}

	tests := []struct {
		name  string
		patch FilterPatch
		check func(t *testing.T, got Filter)
	}{
		{
			name:  "empty patch keeps everything",
			patch: FilterPatch{},
			check: func(t *testing.T, got Filter) {
				assert.Equal(t, base, got)
			},
		},
		{
			name:  "fields merge independently",
			patch: FilterPatch{FuelTypes: []string{"Electric"}},
			check: func(t *testing.T, got Filter) {
				assert.Equal(t, []string{"AUDI"}, got.Brands)
				assert.Equal(t, []string{"Electric"}, got.FuelTypes)
			},
		},
		{
			name:  "empty slice clears a dimension",
			patch: FilterPatch{Brands: []string{}},
			check: func(t *testing.T, got Filter) {
				assert.Empty(t, got.Brands)
				assert.NotNil(t, got.Brands)
			},
		},
		{
			name:  "price range replaces",
			patch: FilterPatch{PriceRange: &PriceRange{10, 20}},
			check: func(t *testing.T, got Filter) {
				assert.Equal(t, PriceRange{10, 20}, got.PriceRange)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, tt.patch.Apply(base))
		})
	}
}

func TestFilterPatchApplyDoesNotAlias(t *testing.T) {
	brands := []string{"BMW"}
	patch := FilterPatch{Brands: brands}

	got := patch.Apply(DefaultFilter())
	brands[0] = "changed"

	assert.Equal(t, []string{"BMW"}, got.Brands)
	assert.True(t, FilterPatch{}.IsEmpty())
	assert.False(t, patch.IsEmpty())
}

func TestFilterIsDefault(t *testing.T) {
	f := DefaultFilter()
	f.PriceRange = PriceRange{0, 100}
	assert.False(t, f.IsDefault())
}
