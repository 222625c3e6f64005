package domain

import "strings"

// Raw column names of the source listings dataset.
const (
	ColumnCompany     = "Company Names"
	ColumnModel       = "Cars Names"
	ColumnEngine      = "Engines"
	ColumnCapacity    = "CC/Battery Capacity"
	ColumnHorsePower  = "HorsePower"
	ColumnTotalSpeed  = "Total Speed"
	ColumnPerformance = "Performance(0 - 100 )KM/H"
	ColumnPrice       = "Cars Prices"
	ColumnFuelType    = "Fuel Types"
	ColumnSeats       = "Seats"
	ColumnTorque      = "Torque"
)

// Columns lists the raw columns in dataset order.
var Columns = []string{
	ColumnCompany,
	ColumnModel,
	ColumnEngine,
	ColumnCapacity,
	ColumnHorsePower,
	ColumnTotalSpeed,
	ColumnPerformance,
	ColumnPrice,
	ColumnFuelType,
	ColumnSeats,
	ColumnTorque,
}

// UnknownValue is used for absent categorical values.
const UnknownValue = "Unknown"

// RawRecord is one row of the source dataset keyed by column name.
// A missing key means the field is absent.
type RawRecord map[string]string

// Get returns the raw value of a column and whether it was present.
func (r RawRecord) Get(column string) (string, bool) {
	v, ok := r[column]
	return v, ok
}

// Clone returns an independent copy of the record.
func (r RawRecord) Clone() RawRecord {
	if r == nil {
		return nil
	}
	out := make(RawRecord, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Car is a normalized listing. Price is always strictly positive; records
// failing that are dropped during transformation.
type Car struct {
	CompanyName string    `json:"companyName"`
	ModelName   string    `json:"modelName"`
	Price       float64   `json:"price"`
	Performance float64   `json:"performance"`
	HorsePower  float64   `json:"horsePower"`
	Torque      float64   `json:"torque"`
	TotalSpeed  float64   `json:"totalSpeed"`
	FuelType    string    `json:"fuelType"`
	EngineType  string    `json:"engineType"`
	Raw         RawRecord `json:"raw"`
}

// ID identifies a car as "<company>-<model>".
func (c Car) ID() string {
	return c.CompanyName + "-" + c.ModelName
}

// Engine returns the raw engine description.
func (c Car) Engine() string { return c.Raw[ColumnEngine] }

// Capacity returns the raw engine displacement or battery capacity.
func (c Car) Capacity() string { return c.Raw[ColumnCapacity] }

// Seats returns the raw seat count.
func (c Car) Seats() string { return c.Raw[ColumnSeats] }

// RawValue returns a trimmed raw field, or "N/A" when absent or blank.
func (c Car) RawValue(column string) string {
	v := strings.TrimSpace(c.Raw[column])
	if v == "" {
		return "N/A"
	}
	return v
}
