package domain

// DefaultMaxPrice is the upper bound of the default price range.
const DefaultMaxPrice = 5_000_000

// BodyType is a coarse vehicle category derived from the model name.
type BodyType string

const (
	BodyTypeSUV         BodyType = "SUV"
	BodyTypeSedan       BodyType = "Sedan"
	BodyTypeHatchback   BodyType = "Hatchback"
	BodyTypeCoupe       BodyType = "Coupe"
	BodyTypeConvertible BodyType = "Convertible"
	BodyTypeWagon       BodyType = "Wagon"
	BodyTypeVan         BodyType = "Van/MPV"
	BodyTypePickup      BodyType = "Pickup"
	BodyTypeOther       BodyType = "Other"
)

// PriceRange is an inclusive [min, max] price window.
type PriceRange [2]float64

// Min returns the lower bound.
func (p PriceRange) Min() float64 { return p[0] }

// Max returns the upper bound.
func (p PriceRange) Max() float64 { return p[1] }

// Contains reports whether price lies inside the range, bounds included.
func (p PriceRange) Contains(price float64) bool {
	return price >= p[0] && price <= p[1]
}

// Filter holds the user's active constraints. An empty set means no
// constraint on that dimension.
type Filter struct {
	Brands     []string   `json:"brands"`
	PriceRange PriceRange `json:"priceRange"`
	FuelTypes  []string   `json:"fuelTypes"`
	BodyTypes  []string   `json:"bodyTypes"`
}

// DefaultFilter returns the unconstrained filter with the default price range.
func DefaultFilter() Filter {
	return Filter{
		Brands:     []string{},
		PriceRange: PriceRange{0, DefaultMaxPrice},
		FuelTypes:  []string{},
		BodyTypes:  []string{},
	}
}

// Clone returns a deep copy of the filter.
func (f Filter) Clone() Filter {
	return Filter{
		Brands:     cloneStrings(f.Brands),
		PriceRange: f.PriceRange,
		FuelTypes:  cloneStrings(f.FuelTypes),
		BodyTypes:  cloneStrings(f.BodyTypes),
	}
}

// IsDefault reports whether the filter carries no constraint beyond the
// default price range.
func (f Filter) IsDefault() bool {
	return len(f.Brands) == 0 && len(f.FuelTypes) == 0 && len(f.BodyTypes) == 0 &&
		f.PriceRange == PriceRange{0, DefaultMaxPrice}
}

// FilterPatch is a partial filter update. Nil fields are left untouched.
type FilterPatch struct {
	Brands     []string    `json:"brands,omitempty" validate:"omitempty,dive,required"`
	PriceRange *PriceRange `json:"priceRange,omitempty" validate:"omitempty,price_range"`
	FuelTypes  []string    `json:"fuelTypes,omitempty" validate:"omitempty,dive,required"`
	BodyTypes  []string    `json:"bodyTypes,omitempty" validate:"omitempty,dive,oneof=SUV Sedan Hatchback Coupe Convertible Wagon Van/MPV Pickup Other"`
}

// IsEmpty reports whether the patch changes nothing.
func (p FilterPatch) IsEmpty() bool {
	return p.Brands == nil && p.PriceRange == nil && p.FuelTypes == nil && p.BodyTypes == nil
}

// Apply merges the patch into f and returns the result. f is not modified.
func (p FilterPatch) Apply(f Filter) Filter {
	out := f.Clone()
	if p.Brands != nil {
		out.Brands = cloneStrings(p.Brands)
	}
	if p.PriceRange != nil {
		out.PriceRange = *p.PriceRange
	}
	if p.FuelTypes != nil {
		out.FuelTypes = cloneStrings(p.FuelTypes)
	}
	if p.BodyTypes != nil {
		out.BodyTypes = cloneStrings(p.BodyTypes)
	}
	return out
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
