package http

import (
	"context"

	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/internal/dataprocessing"
	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/internal/exporter"
	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/pkg/contracts/domain"
)

// DashboardServiceInterface defines the dashboard operations served over HTTP
type DashboardServiceInterface interface {
	Snapshot() (domain.DashboardSnapshot, error)
	Filter() (active domain.Filter, pending *domain.Filter, err error)
	SetFilter(ctx context.Context, patch domain.FilterPatch) (domain.DashboardSnapshot, error)
	Flush(ctx context.Context) (domain.DashboardSnapshot, error)
	ResetFilter(ctx context.Context) (domain.DashboardSnapshot, error)

	Options(brandSearch string) (domain.FilterOptions, error)
	KPIs() (domain.KPISummary, error)
	BrandPerformance() ([]domain.BrandPerformance, error)
	PriceDistribution(bucketCount int) ([]domain.PriceBucket, error)
	MarketShare() ([]domain.MarketShare, error)
	Features() ([]domain.FeatureScore, error)

	Page(key dataprocessing.SortKey, descending bool, page, perPage int) (domain.Page, error)
	Car(id string) (domain.Car, error)
	Compare(limit int) (domain.Comparison, error)
	ExportTable(dataset exporter.Dataset) (exporter.Table, error)
}
