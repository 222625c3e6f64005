package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/pkg/contracts/domain"
)

func testCar(company, model string, price float64) domain.Car {
	return domain.Car{
		CompanyName: company,
		ModelName:   model,
		Price:       price,
		FuelType:    "Petrol",
		EngineType:  "V8",
		Raw:         domain.RawRecord{domain.ColumnEngine: "V8"},
	}
}

func TestCalculateKPIs(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		kpis := CalculateKPIs(nil)
		assert.Equal(t, domain.KPISummary{}, kpis)
		assert.Nil(t, kpis.MostExpensiveCar)
	})

	t.Run("three cars", func(t *testing.T) {
		cars := []domain.Car{
			testCar("A", "a", 100000),
			testCar("B", "b", 200000),
			testCar("C", "c", 300000),
		}

		kpis := CalculateKPIs(cars)

		assert.Equal(t, 3, kpis.TotalVehicles)
		assert.Equal(t, 200000.0, kpis.AveragePrice)
		assert.Equal(t, 100000.0, kpis.MinPrice)
		assert.Equal(t, 300000.0, kpis.MaxPrice)
		require.NotNil(t, kpis.MostExpensiveCar)
		assert.Equal(t, 300000.0, kpis.MostExpensiveCar.Price)
	})

	t.Run("first car wins price ties", func(t *testing.T) {
		cars := []domain.Car{
			testCar("A", "first", 500),
			testCar("B", "second", 500),
			testCar("C", "cheap", 10),
		}

		kpis := CalculateKPIs(cars)

		require.NotNil(t, kpis.MostExpensiveCar)
		assert.Equal(t, "first", kpis.MostExpensiveCar.ModelName)
	})

	t.Run("average is rounded to two places", func(t *testing.T) {
		cars := []domain.Car{testCar("A", "a", 1), testCar("A", "b", 2), testCar("A", "c", 2)}
		assert.Equal(t, 1.67, CalculateKPIs(cars).AveragePrice)
	})

	t.Run("non-positive prices are excluded from price statistics", func(t *testing.T) {
		cars := []domain.Car{testCar("A", "a", 0), testCar("B", "b", 40)}

		kpis := CalculateKPIs(cars)

		assert.Equal(t, 2, kpis.TotalVehicles)
		assert.Equal(t, 40.0, kpis.AveragePrice)
		assert.Equal(t, 40.0, kpis.MinPrice)
	})

	t.Run("result does not alias input", func(t *testing.T) {
		cars := []domain.Car{testCar("A", "a", 10)}
		kpis := CalculateKPIs(cars)
		kpis.MostExpensiveCar.ModelName = "changed"
		assert.Equal(t, "a", cars[0].ModelName)
	})
}

func brandFixture() []domain.Car {
	cars := []domain.Car{
		testCar("AUDI", "a1", 100),
		testCar("BMW", "b1", 200),
		testCar("AUDI", "a2", 300),
		testCar("CUPRA", "c1", 50),
		testCar("BMW", "b2", 100),
	}
	cars[0].Performance, cars[0].HorsePower = 3, 300
	cars[2].Performance, cars[2].HorsePower = 4, 500
	return cars
}

func TestBrandPerformanceData(t *testing.T) {
	got := BrandPerformanceData(brandFixture())

	require.Len(t, got, 3)
	assert.Equal(t, domain.BrandPerformance{
		Brand:              "AUDI",
		AveragePrice:       200,
		CarCount:           2,
		AveragePerformance: 3.5,
		AverageHorsePower:  400,
	}, got[0])
	assert.Equal(t, "BMW", got[1].Brand, "ties keep first-seen order")
	assert.Equal(t, 150.0, got[1].AveragePrice)
	assert.Equal(t, "CUPRA", got[2].Brand)
	assert.Equal(t, 1, got[2].CarCount)

	assert.Empty(t, BrandPerformanceData(nil))
}

func TestMarketShareData(t *testing.T) {
	got := MarketShareData(brandFixture())

	require.Len(t, got, 3)
	assert.Equal(t, domain.MarketShare{Name: "AUDI", Value: 2, Percentage: 40}, got[0])
	assert.Equal(t, domain.MarketShare{Name: "BMW", Value: 2, Percentage: 40}, got[1])
	assert.Equal(t, domain.MarketShare{Name: "CUPRA", Value: 1, Percentage: 20}, got[2])

	var total float64
	for _, s := range got {
		total += s.Percentage
	}
	assert.InDelta(t, 100, total, 0.05)
}

func TestMarketShareSumsToHundredWithRounding(t *testing.T) {
	cars := []domain.Car{testCar("A", "1", 1), testCar("B", "2", 1), testCar("C", "3", 1)}

	var total float64
	for _, s := range MarketShareData(cars) {
		assert.Equal(t, 33.33, s.Percentage)
		total += s.Percentage
	}
	assert.InDelta(t, 100, total, 0.05)
}

func TestPriceDistributionData(t *testing.T) {
	t.Run("ten evenly spread prices", func(t *testing.T) {
		var cars []domain.Car
		for i := 1; i <= 10; i++ {
			cars = append(cars, testCar("A", "m", float64(i*100)))
		}

		got := PriceDistributionData(cars, 10)

		require.Len(t, got, 10)
		assert.Equal(t, "$100 - $190", got[0].Name)
		assert.Equal(t, 100.0, got[0].Min)
		assert.Equal(t, 190.0, got[0].Max)
		assert.Equal(t, "$910 - $1000", got[9].Name)
		total := 0
		for _, b := range got {
			assert.Equal(t, 1, b.Count)
			assert.Equal(t, 10.0, b.Percentage)
			total += b.Count
		}
		assert.Equal(t, len(cars), total)
	})

	t.Run("maximum price lands in the last bucket", func(t *testing.T) {
		cars := []domain.Car{testCar("A", "a", 0.5), testCar("A", "b", 10), testCar("A", "c", 10)}

		got := PriceDistributionData(cars, 4)

		require.Len(t, got, 4)
		assert.Equal(t, 1, got[0].Count)
		assert.Equal(t, 2, got[3].Count)
		assert.Equal(t, 66.67, got[3].Percentage)
	})

	t.Run("identical prices share the first bucket", func(t *testing.T) {
		cars := []domain.Car{testCar("A", "a", 500), testCar("B", "b", 500), testCar("C", "c", 500)}

		got := PriceDistributionData(cars, 10)

		require.Len(t, got, 10)
		assert.Equal(t, 3, got[0].Count)
		assert.Equal(t, 100.0, got[0].Percentage)
		assert.Equal(t, "$500 - $500", got[0].Name)
		for _, b := range got[1:] {
			assert.Zero(t, b.Count)
		}
	})

	t.Run("default bucket count", func(t *testing.T) {
		got := PriceDistributionData([]domain.Car{testCar("A", "a", 1), testCar("A", "b", 2)}, 0)
		assert.Len(t, got, DefaultBucketCount)
	})

	t.Run("empty input", func(t *testing.T) {
		got := PriceDistributionData(nil, 10)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestFeatureAnalysis(t *testing.T) {
	t.Run("no brands", func(t *testing.T) {
		got := FeatureAnalysis(nil)

		require.Len(t, got, 6)
		want := map[string]float64{
			"Performance": 100,
			"Price":       0,
			"Horsepower":  0,
			"Efficiency":  100,
			"Variety":     0,
			"Technology":  0,
		}
		for _, f := range got {
			assert.Equal(t, want[f.Feature], f.Value, f.Feature)
			assert.Equal(t, 100.0, f.Max)
		}
	})

	t.Run("scores are clamped", func(t *testing.T) {
		got := FeatureAnalysis([]domain.BrandPerformance{{
			Brand:              "BUGATTI",
			AveragePrice:       10_000_000,
			CarCount:           1,
			AveragePerformance: 2,
			AverageHorsePower:  3000,
		}})

		scores := make(map[string]float64)
		for _, f := range got {
			scores[f.Feature] = f.Value
		}
		assert.Equal(t, 80.0, scores["Performance"])
		assert.Equal(t, 100.0, scores["Price"])
		assert.Equal(t, 100.0, scores["Horsepower"])
		assert.Equal(t, 0.0, scores["Efficiency"])
		assert.Equal(t, 5.0, scores["Variety"])
		assert.Equal(t, 100.0, scores["Technology"])
	})
}

func TestReducersAreIdempotent(t *testing.T) {
	cars := brandFixture()

	assert.Equal(t, CalculateKPIs(cars), CalculateKPIs(cars))
	assert.Equal(t, BrandPerformanceData(cars), BrandPerformanceData(cars))
	assert.Equal(t, PriceDistributionData(cars, 10), PriceDistributionData(cars, 10))
	assert.Equal(t, MarketShareData(cars), MarketShareData(cars))
}

func TestOptions(t *testing.T) {
	cars := []domain.Car{
		{CompanyName: "TOYOTA", ModelName: "RAV4 SUV", FuelType: "Hybrid"},
		{CompanyName: "AUDI", ModelName: "A4 Sedan", FuelType: "Petrol"},
		{CompanyName: "TOYOTA", ModelName: "Supra", FuelType: "Petrol"},
	}

	opts := Options(cars)

	assert.Equal(t, []string{"AUDI", "TOYOTA"}, opts.Brands)
	assert.Equal(t, []string{"Hybrid", "Petrol"}, opts.FuelTypes)
	assert.Equal(t, []string{"Other", "SUV", "Sedan"}, opts.BodyTypes)
}

func TestSearchBrands(t *testing.T) {
	brands := []string{"AUDI", "BMW", "LAMBORGHINI", "ROLLS ROYCE"}

	assert.Equal(t, []string{"LAMBORGHINI", "ROLLS ROYCE"}, SearchBrands(brands, "o"))
	assert.Equal(t, []string{"BMW"}, SearchBrands(brands, " bm "))
	assert.Equal(t, brands, SearchBrands(brands, ""))
	assert.Empty(t, SearchBrands(brands, "tesla"))
}
