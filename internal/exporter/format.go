package exporter

import (
	"strconv"

	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/internal/dataprocessing"
	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/pkg/contracts/domain"
)

// Dataset names an exportable view.
type Dataset string

const (
	DatasetCars              Dataset = "cars"
	DatasetBrandPerformance  Dataset = "brand-performance"
	DatasetPriceDistribution Dataset = "price-distribution"
	DatasetMarketShare       Dataset = "market-share"
	DatasetComparison        Dataset = "comparison"
)

// Datasets lists every exportable dataset.
var Datasets = []Dataset{
	DatasetCars,
	DatasetBrandPerformance,
	DatasetPriceDistribution,
	DatasetMarketShare,
	DatasetComparison,
}

var fileNames = map[Dataset]string{
	DatasetCars:              "car_data.csv",
	DatasetBrandPerformance:  "brand_performance.csv",
	DatasetPriceDistribution: "price_distribution.csv",
	DatasetMarketShare:       "market_share.csv",
	DatasetComparison:        "car_comparison.csv",
}

// ParseDataset resolves a dataset name.
func ParseDataset(name string) (Dataset, bool) {
	d := Dataset(name)
	_, ok := fileNames[d]
	return d, ok
}

// FileName returns the download name of the dataset.
func (d Dataset) FileName() string {
	return fileNames[d]
}

// carHeaders are the raw columns followed by the derived fields.
var carHeaders = append(append([]string{}, domain.Columns...),
	"companyName", "modelName", "price", "performance", "horsePower",
	"torque", "totalSpeed", "fuelType", "engineType")

// CarsTable exports cars with their raw and derived fields.
func CarsTable(cars []domain.Car) Table {
	rows := make([][]Field, 0, len(cars))
	for _, c := range cars {
		row := make([]Field, 0, len(carHeaders))
		for _, col := range domain.Columns {
			row = append(row, Text(c.Raw[col]))
		}
		row = append(row,
			Text(c.CompanyName),
			Text(c.ModelName),
			Number(c.Price),
			Number(c.Performance),
			Number(c.HorsePower),
			Number(c.Torque),
			Number(c.TotalSpeed),
			Text(c.FuelType),
			Text(c.EngineType),
		)
		rows = append(rows, row)
	}
	return Table{Headers: carHeaders, Rows: rows}
}

// BrandPerformanceTable exports the per-brand rollup.
func BrandPerformanceTable(brands []domain.BrandPerformance) Table {
	rows := make([][]Field, 0, len(brands))
	for _, b := range brands {
		rows = append(rows, []Field{
			Text(b.Brand),
			Number(b.AveragePrice),
			Int(b.CarCount),
			Number(b.AveragePerformance),
			Number(b.AverageHorsePower),
		})
	}
	return Table{
		Headers: []string{"brand", "averagePrice", "carCount", "averagePerformance", "averageHorsePower"},
		Rows:    rows,
	}
}

// PriceDistributionTable exports the price histogram.
func PriceDistributionTable(buckets []domain.PriceBucket) Table {
	rows := make([][]Field, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, []Field{
			Text(b.Name),
			Number(b.Min),
			Number(b.Max),
			Int(b.Count),
			Number(b.Percentage),
		})
	}
	return Table{
		Headers: []string{"name", "min", "max", "count", "percentage"},
		Rows:    rows,
	}
}

// MarketShareTable exports the brand share breakdown.
func MarketShareTable(shares []domain.MarketShare) Table {
	rows := make([][]Field, 0, len(shares))
	for _, s := range shares {
		rows = append(rows, []Field{
			Text(s.Name),
			Int(s.Value),
			Number(s.Percentage),
		})
	}
	return Table{
		Headers: []string{"name", "value", "percentage"},
		Rows:    rows,
	}
}

// ComparisonTable exports a side-by-side comparison, one row per specification.
func ComparisonTable(cmp domain.Comparison) Table {
	headers := dataprocessing.ComparisonHeaders(len(cmp.Cars))

	rows := make([][]Field, 0, len(cmp.Rows))
	for _, r := range cmp.Rows {
		row := []Field{Text(r.Spec)}
		for _, v := range r.Values {
			if r.Numeric {
				row = append(row, Field{Value: v})
			} else {
				row = append(row, Text(v))
			}
		}
		rows = append(rows, row)
	}
	return Table{Headers: headers, Rows: rows}
}

// formatFloat writes the shortest representation that round-trips.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}
