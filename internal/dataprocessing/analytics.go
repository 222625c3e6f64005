package dataprocessing

import (
	"fmt"
	"math"
	"sort"

	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/pkg/contracts/domain"
)

// DefaultBucketCount is the number of price histogram buckets.
const DefaultBucketCount = 10

// Radar scaling ceilings.
const (
	MaxFeaturePerformance = 10.0
	MaxFeaturePrice       = 5_000_000.0
	MaxFeatureHorsePower  = 1500.0
	featureBrandCeiling   = 20.0
)

// CalculateKPIs summarizes a set of cars. Price statistics consider positive
// prices only; the most expensive car is the first one holding the highest
// price.
func CalculateKPIs(cars []domain.Car) domain.KPISummary {
	if len(cars) == 0 {
		return domain.KPISummary{}
	}

	kpis := domain.KPISummary{TotalVehicles: len(cars)}

	var sum float64
	var n int
	minPrice, maxPrice := math.Inf(1), math.Inf(-1)
	for _, car := range cars {
		if car.Price <= 0 {
			continue
		}
		sum += car.Price
		n++
		minPrice = math.Min(minPrice, car.Price)
		maxPrice = math.Max(maxPrice, car.Price)
	}
	if n > 0 {
		kpis.AveragePrice = round2(sum / float64(n))
		kpis.MinPrice = minPrice
		kpis.MaxPrice = maxPrice
	}

	best := -1
	for i, car := range cars {
		threshold := 0.0
		if best >= 0 {
			threshold = cars[best].Price
		}
		if car.Price > threshold {
			best = i
		}
	}
	if best >= 0 {
		c := cars[best]
		kpis.MostExpensiveCar = &c
	}
	return kpis
}

type brandGroup struct {
	name string
	cars []domain.Car
}

// groupByBrand groups cars by company name in first-seen order.
func groupByBrand(cars []domain.Car) []brandGroup {
	index := make(map[string]int)
	var groups []brandGroup
	for _, car := range cars {
		i, ok := index[car.CompanyName]
		if !ok {
			i = len(groups)
			index[car.CompanyName] = i
			groups = append(groups, brandGroup{name: car.CompanyName})
		}
		groups[i].cars = append(groups[i].cars, car)
	}
	return groups
}

// BrandPerformanceData rolls cars up per brand, ordered by descending car
// count. Brands with equal counts keep their first-seen order.
func BrandPerformanceData(cars []domain.Car) []domain.BrandPerformance {
	groups := groupByBrand(cars)
	out := make([]domain.BrandPerformance, 0, len(groups))
	for _, g := range groups {
		var price, perf, hp float64
		for _, car := range g.cars {
			price += car.Price
			perf += car.Performance
			hp += car.HorsePower
		}
		n := float64(len(g.cars))
		out = append(out, domain.BrandPerformance{
			Brand:              g.name,
			AveragePrice:       round2(price / n),
			CarCount:           len(g.cars),
			AveragePerformance: round2(perf / n),
			AverageHorsePower:  round2(hp / n),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CarCount > out[j].CarCount
	})
	return out
}

// PriceDistributionData builds an equal-width histogram of positive prices.
// A bucketCount below one uses DefaultBucketCount. When every price is equal
// all of them land in the first bucket.
func PriceDistributionData(cars []domain.Car, bucketCount int) []domain.PriceBucket {
	if bucketCount < 1 {
		bucketCount = DefaultBucketCount
	}

	prices := make([]float64, 0, len(cars))
	for _, car := range cars {
		if car.Price > 0 {
			prices = append(prices, car.Price)
		}
	}
	if len(prices) == 0 {
		return []domain.PriceBucket{}
	}

	minPrice, maxPrice := prices[0], prices[0]
	for _, p := range prices[1:] {
		minPrice = math.Min(minPrice, p)
		maxPrice = math.Max(maxPrice, p)
	}
	width := (maxPrice - minPrice) / float64(bucketCount)

	buckets := make([]domain.PriceBucket, bucketCount)
	for i := range buckets {
		buckets[i].Min = minPrice + float64(i)*width
		buckets[i].Max = minPrice + float64(i+1)*width
	}

	for _, p := range prices {
		idx := 0
		if width > 0 {
			idx = int(math.Floor((p - minPrice) / width))
		}
		if idx >= bucketCount {
			idx = bucketCount - 1
		}
		buckets[idx].Count++
	}

	total := float64(len(prices))
	for i := range buckets {
		b := &buckets[i]
		b.Name = fmt.Sprintf("$%d - $%d", roundWhole(b.Min), roundWhole(b.Max))
		b.Percentage = round2(float64(b.Count) / total * 100)
	}
	return buckets
}

// MarketShareData counts listings per brand, ordered by descending count.
func MarketShareData(cars []domain.Car) []domain.MarketShare {
	groups := groupByBrand(cars)
	out := make([]domain.MarketShare, 0, len(groups))
	for _, g := range groups {
		out = append(out, domain.MarketShare{
			Name:       g.name,
			Value:      len(g.cars),
			Percentage: round2(float64(len(g.cars)) / float64(len(cars)) * 100),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	return out
}

// FeatureAnalysis scores the brand rollup on six radar axes scaled to 0-100.
func FeatureAnalysis(brands []domain.BrandPerformance) []domain.FeatureScore {
	var perf, price, hp float64
	if n := float64(len(brands)); n > 0 {
		for _, b := range brands {
			perf += b.AveragePerformance
			price += b.AveragePrice
			hp += b.AverageHorsePower
		}
		perf /= n
		price /= n
		hp /= n
	}

	score := func(feature string, v float64) domain.FeatureScore {
		return domain.FeatureScore{Feature: feature, Value: clamp(v, 0, 100), Max: 100}
	}
	return []domain.FeatureScore{
		score("Performance", (MaxFeaturePerformance-perf)/MaxFeaturePerformance*100),
		score("Price", price/MaxFeaturePrice*100),
		score("Horsepower", hp/MaxFeatureHorsePower*100),
		score("Efficiency", 100-price/MaxFeaturePrice*50),
		score("Variety", float64(len(brands))/featureBrandCeiling*100),
		score("Technology", hp/MaxFeatureHorsePower*100),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// roundWhole rounds to the nearest integer with halves rounded up.
func roundWhole(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
