package exporter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/internal/dataprocessing"
	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/internal/shared/testutil"
	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/pkg/contracts/domain"
)

func sampleCars() []domain.Car {
	return dataprocessing.ProcessCarData(testutil.SampleRows())
}

func render(t *testing.T, table Table) []string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, NewCSVWriter(nil).Write(&buf, table, WriteOptions{}))
	return strings.Split(buf.String(), "\n")
}

func TestParseDataset(t *testing.T) {
	for _, d := range Datasets {
		got, ok := ParseDataset(string(d))
		assert.True(t, ok, d)
		assert.Equal(t, d, got)
		assert.True(t, strings.HasSuffix(d.FileName(), ".csv"))
	}

	_, ok := ParseDataset("year-trend")
	assert.False(t, ok)
}

func TestCarsTable(t *testing.T) {
	cars := sampleCars()
	lines := render(t, CarsTable(cars))

	require.Len(t, lines, len(cars)+1)
	assert.True(t, strings.HasPrefix(lines[0], "Company Names,Cars Names,"))
	assert.True(t, strings.HasSuffix(lines[0], ",fuelType,engineType"))
	assert.Contains(t, lines[1], `"FERRARI","SF90 STRADALE",1100000,`)
	assert.True(t, strings.HasSuffix(lines[1], `,"Hybrid","V8"`))
}

func TestBrandPerformanceTable(t *testing.T) {
	lines := render(t, BrandPerformanceTable([]domain.BrandPerformance{
		{Brand: "TOYOTA", AveragePrice: 30850, CarCount: 2, AveragePerformance: 5, AverageHorsePower: 169.5},
	}))

	assert.Equal(t, []string{
		"brand,averagePrice,carCount,averagePerformance,averageHorsePower",
		`"TOYOTA",30850,2,5,169.5`,
	}, lines)
}

func TestPriceDistributionTable(t *testing.T) {
	lines := render(t, PriceDistributionTable([]domain.PriceBucket{
		{Name: "$26700 - $134030", Min: 26700, Max: 134030, Count: 4, Percentage: 80},
	}))

	assert.Equal(t, `"$26700 - $134030",26700,134030,4,80`, lines[1])
}

func TestComparisonTable(t *testing.T) {
	cmp := dataprocessing.Compare(sampleCars(), 2)
	lines := render(t, ComparisonTable(cmp))

	require.Len(t, lines, len(cmp.Rows)+1)
	assert.Equal(t, "specification,car_1,car_2", lines[0])
	assert.Equal(t, `"Engine","V8","Inline-4"`, lines[1])
	assert.Equal(t, `"Horsepower",963,138`, lines[3])
	assert.Equal(t, `"Price","$1,100,000","$26,700"`, lines[9])
}
