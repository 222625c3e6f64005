package domain

// KPISummary holds the headline numbers for a set of cars.
type KPISummary struct {
	TotalVehicles    int     `json:"totalVehicles"`
	AveragePrice     float64 `json:"averagePrice"`
	MinPrice         float64 `json:"minPrice"`
	MaxPrice         float64 `json:"maxPrice"`
	MostExpensiveCar *Car    `json:"mostExpensiveCar"`
}

// BrandPerformance is the per-brand rollup used by the brand chart.
type BrandPerformance struct {
	Brand              string  `json:"brand"`
	AveragePrice       float64 `json:"averagePrice"`
	CarCount           int     `json:"carCount"`
	AveragePerformance float64 `json:"averagePerformance"`
	AverageHorsePower  float64 `json:"averageHorsePower"`
}

// PriceBucket is one bin of the price histogram.
type PriceBucket struct {
	Name       string  `json:"name"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// MarketShare is a brand's share of the listing count.
type MarketShare struct {
	Name       string  `json:"name"`
	Value      int     `json:"value"`
	Percentage float64 `json:"percentage"`
}

// FeatureScore is one axis of the feature radar, scaled to 0-100.
type FeatureScore struct {
	Feature string  `json:"feature"`
	Value   float64 `json:"value"`
	Max     float64 `json:"max"`
}

// FilterOptions are the selectable values derived from the full dataset.
type FilterOptions struct {
	Brands    []string `json:"brands"`
	FuelTypes []string `json:"fuelTypes"`
	BodyTypes []string `json:"bodyTypes"`
}

// ComparisonRow is one specification line of a side-by-side comparison.
type ComparisonRow struct {
	Spec    string   `json:"spec"`
	Values  []string `json:"values"`
	Numeric bool     `json:"numeric"`
}

// Comparison compares a handful of cars spec by spec.
type Comparison struct {
	Cars []Car           `json:"cars"`
	Rows []ComparisonRow `json:"rows"`
}

// Page is one page of a sorted car table.
type Page struct {
	Cars       []Car `json:"cars"`
	Page       int   `json:"page"`
	PerPage    int   `json:"perPage"`
	TotalPages int   `json:"totalPages"`
	Total      int   `json:"total"`
}

// DashboardSnapshot is the state pushed to dashboard clients whenever the
// active filter settles.
type DashboardSnapshot struct {
	Filter        Filter     `json:"filter"`
	PendingFilter *Filter    `json:"pendingFilter,omitempty"`
	KPIs          KPISummary `json:"kpis"`
	TotalRecords  int        `json:"totalRecords"`
	FilteredCount int        `json:"filteredCount"`
	Pending       bool       `json:"pending"`
	Generation    uint64     `json:"generation"`
}
