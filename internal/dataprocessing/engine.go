package dataprocessing

import (
	"log/slog"
	"strconv"

	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/pkg/contracts/domain"
)

// Reducer names used in cache keys and metrics.
const (
	ReducerKPIs              = "kpis"
	ReducerBrandPerformance  = "brand_performance"
	ReducerPriceDistribution = "price_distribution"
	ReducerMarketShare       = "market_share"
	ReducerFeatures          = "features"
)

// CacheObserver is notified of every cache lookup.
type CacheObserver interface {
	ObserveCacheLookup(reducer string, hit bool)
}

// EngineConfig configures an aggregation engine.
type EngineConfig struct {
	CacheSize   int
	BucketCount int
}

// DefaultEngineConfig returns the standard engine configuration.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		CacheSize:   64,
		BucketCount: DefaultBucketCount,
	}
}

// Engine runs the aggregation reducers behind a content-keyed result cache.
// Results handed out are copies; callers may modify them freely.
type Engine struct {
	cache    *ResultCache
	config   EngineConfig
	observer CacheObserver
	logger   *slog.Logger
}

// NewEngine creates an aggregation engine.
func NewEngine(config EngineConfig, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if config.BucketCount < 1 {
		config.BucketCount = DefaultBucketCount
	}
	return &Engine{
		cache:  NewResultCache(config.CacheSize),
		config: config,
		logger: logger.With(slog.String("component", "aggregation_engine")),
	}
}

// SetObserver installs a cache observer.
func (e *Engine) SetObserver(o CacheObserver) {
	e.observer = o
}

// Summary bundles every reducer output for one record set.
type Summary struct {
	KPIs              domain.KPISummary         `json:"kpis"`
	BrandPerformance  []domain.BrandPerformance `json:"brandPerformance"`
	PriceDistribution []domain.PriceBucket      `json:"priceDistribution"`
	MarketShare       []domain.MarketShare      `json:"marketShare"`
	Features          []domain.FeatureScore     `json:"features"`
}

// Set is a record set with its fingerprint computed once.
type Set struct {
	Cars        []domain.Car
	fingerprint string
}

// NewSet fingerprints cars for repeated reducer calls.
func NewSet(cars []domain.Car) Set {
	return Set{Cars: cars, fingerprint: Fingerprint(cars)}
}

// Fingerprint returns the content digest of the set.
func (s Set) Fingerprint() string { return s.fingerprint }

// Summarize runs every reducer over the set.
func (e *Engine) Summarize(s Set) Summary {
	return Summary{
		KPIs:              e.KPIs(s),
		BrandPerformance:  e.BrandPerformance(s),
		PriceDistribution: e.PriceDistribution(s, e.config.BucketCount),
		MarketShare:       e.MarketShare(s),
		Features:          e.Features(s),
	}
}

// KPIs returns the headline numbers of the set.
func (e *Engine) KPIs(s Set) domain.KPISummary {
	v := e.memo(ReducerKPIs, s.fingerprint, func() any { return CalculateKPIs(s.Cars) })
	return copyKPIs(v.(domain.KPISummary))
}

// BrandPerformance returns the per-brand rollup of the set.
func (e *Engine) BrandPerformance(s Set) []domain.BrandPerformance {
	v := e.memo(ReducerBrandPerformance, s.fingerprint, func() any { return BrandPerformanceData(s.Cars) })
	return copySlice(v.([]domain.BrandPerformance))
}

// PriceDistribution returns the price histogram of the set.
func (e *Engine) PriceDistribution(s Set, bucketCount int) []domain.PriceBucket {
	if bucketCount < 1 {
		bucketCount = e.config.BucketCount
	}
	key := s.fingerprint + "/" + strconv.Itoa(bucketCount)
	v := e.memo(ReducerPriceDistribution, key, func() any { return PriceDistributionData(s.Cars, bucketCount) })
	return copySlice(v.([]domain.PriceBucket))
}

// MarketShare returns the brand share of the set.
func (e *Engine) MarketShare(s Set) []domain.MarketShare {
	v := e.memo(ReducerMarketShare, s.fingerprint, func() any { return MarketShareData(s.Cars) })
	return copySlice(v.([]domain.MarketShare))
}

// Features returns the radar scores of the set.
func (e *Engine) Features(s Set) []domain.FeatureScore {
	v := e.memo(ReducerFeatures, s.fingerprint, func() any {
		return FeatureAnalysis(e.BrandPerformance(s))
	})
	return copySlice(v.([]domain.FeatureScore))
}

// CacheStats reports cache usage.
func (e *Engine) CacheStats() CacheStats {
	return e.cache.Stats()
}

// Reset drops every cached result.
func (e *Engine) Reset() {
	e.cache.Purge()
}

func (e *Engine) memo(reducer, key string, compute func() any) any {
	cacheKey := reducer + ":" + key
	if v, ok := e.cache.Get(cacheKey); ok {
		e.observe(reducer, true)
		return v
	}
	e.observe(reducer, false)
	v := compute()
	e.cache.Set(cacheKey, v)
	e.logger.Debug("computed aggregation",
		slog.String("reducer", reducer),
		slog.String("key", key))
	return v
}

func (e *Engine) observe(reducer string, hit bool) {
	if e.observer != nil {
		e.observer.ObserveCacheLookup(reducer, hit)
	}
}

func copyKPIs(k domain.KPISummary) domain.KPISummary {
	if k.MostExpensiveCar != nil {
		c := *k.MostExpensiveCar
		c.Raw = c.Raw.Clone()
		k.MostExpensiveCar = &c
	}
	return k
}

func copySlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
