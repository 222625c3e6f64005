package dataprocessing

import (
	"fmt"
	"sort"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/pkg/contracts/domain"
)

// Table defaults.
const (
	DefaultPageSize       = 10
	DefaultComparisonSize = 3
)

// SortKey names a sortable table column.
type SortKey string

const (
	SortByCompany    SortKey = "companyName"
	SortByModel      SortKey = "modelName"
	SortByEngine     SortKey = "engine"
	SortByHorsePower SortKey = "horsePower"
	SortByPrice      SortKey = "price"
)

// ValidSortKey reports whether k names a sortable column. The empty key is
// valid and means source order.
func ValidSortKey(k SortKey) bool {
	switch k {
	case "", SortByCompany, SortByModel, SortByEngine, SortByHorsePower, SortByPrice:
		return true
	}
	return false
}

// SortCars returns a sorted copy of cars. Equal keys keep their relative
// order. An empty key returns the cars in their original order.
func SortCars(cars []domain.Car, key SortKey, descending bool) []domain.Car {
	out := make([]domain.Car, len(cars))
	copy(out, cars)
	less := carLess(key)
	if less == nil {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		if descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func carLess(key SortKey) func(a, b domain.Car) bool {
	switch key {
	case SortByCompany:
		return func(a, b domain.Car) bool { return a.CompanyName < b.CompanyName }
	case SortByModel:
		return func(a, b domain.Car) bool { return a.ModelName < b.ModelName }
	case SortByEngine:
		return func(a, b domain.Car) bool { return a.Engine() < b.Engine() }
	case SortByHorsePower:
		return func(a, b domain.Car) bool { return a.HorsePower < b.HorsePower }
	case SortByPrice:
		return func(a, b domain.Car) bool { return a.Price < b.Price }
	}
	return nil
}

// Paginate slices cars into 1-based pages. Pages past the end are empty; a
// page below one is treated as the first page.
func Paginate(cars []domain.Car, page, perPage int) domain.Page {
	if perPage < 1 {
		perPage = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	total := len(cars)
	result := domain.Page{
		Cars:       []domain.Car{},
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: (total + perPage - 1) / perPage,
	}
	start := (page - 1) * perPage
	if start >= total {
		return result
	}
	end := start + perPage
	if end > total {
		end = total
	}
	result.Cars = append(result.Cars, cars[start:end]...)
	return result
}

// FindCar returns the first car whose ID is id.
func FindCar(cars []domain.Car, id string) (domain.Car, bool) {
	for _, c := range cars {
		if c.ID() == id {
			return c, true
		}
	}
	return domain.Car{}, false
}

var pricePrinter = message.NewPrinter(language.English)

// FormatPrice renders a price with thousands separators, e.g. "$1,100,000".
func FormatPrice(v float64) string {
	return pricePrinter.Sprintf("$%v", number.Decimal(v, number.MaxFractionDigits(2)))
}

type comparisonSpec struct {
	label   string
	numeric bool
	value   func(domain.Car) string
}

var comparisonSpecs = []comparisonSpec{
	{"Engine", false, func(c domain.Car) string { return c.RawValue(domain.ColumnEngine) }},
	{"CC/Battery", false, func(c domain.Car) string { return c.RawValue(domain.ColumnCapacity) }},
	{"Horsepower", true, func(c domain.Car) string { return formatNumber(c.HorsePower) }},
	{"Torque", true, func(c domain.Car) string { return formatNumber(c.Torque) }},
	{"Top Speed", true, func(c domain.Car) string { return formatNumber(c.TotalSpeed) }},
	{"0-100 km/h", true, func(c domain.Car) string { return formatNumber(c.Performance) }},
	{"Fuel Type", false, func(c domain.Car) string { return c.FuelType }},
	{"Seats", false, func(c domain.Car) string { return c.RawValue(domain.ColumnSeats) }},
	{"Price", false, func(c domain.Car) string { return FormatPrice(c.Price) }},
}

// Compare lays the first limit cars side by side, one row per specification.
func Compare(cars []domain.Car, limit int) domain.Comparison {
	if limit < 1 {
		limit = DefaultComparisonSize
	}
	if len(cars) < limit {
		limit = len(cars)
	}
	selected := make([]domain.Car, limit)
	copy(selected, cars[:limit])

	rows := make([]domain.ComparisonRow, 0, len(comparisonSpecs))
	for _, spec := range comparisonSpecs {
		values := make([]string, len(selected))
		for i, c := range selected {
			values[i] = spec.value(c)
		}
		rows = append(rows, domain.ComparisonRow{Spec: spec.label, Values: values, Numeric: spec.numeric})
	}
	return domain.Comparison{Cars: selected, Rows: rows}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ComparisonHeaders returns the export header for a comparison of n cars.
func ComparisonHeaders(n int) []string {
	headers := []string{"specification"}
	for i := 1; i <= n; i++ {
		headers = append(headers, fmt.Sprintf("car_%d", i))
	}
	return headers
}
