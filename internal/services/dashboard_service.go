package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/internal/dataprocessing"
	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/internal/exporter"
	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/internal/files"
	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/internal/validation"
	"github.com/abdullah-binmadhi/Car-Sales-Dashboard/pkg/contracts/domain"
)

const tracerName = "github.com/abdullah-binmadhi/Car-Sales-Dashboard/internal/services"

// DatasetState is the lifecycle stage of the dashboard dataset.
type DatasetState string

const (
	StateLoading DatasetState = "loading"
	StateReady   DatasetState = "ready"
	StateFailed  DatasetState = "failed"
)

// PipelineObserver receives pipeline measurements.
type PipelineObserver interface {
	dataprocessing.CacheObserver
	RecordLoad(ctx context.Context, loaded, dropped int, duration time.Duration, err error)
	RecordFilterApplied(ctx context.Context, matched int, duration time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveCacheLookup(string, bool)                            {}
func (nopObserver) RecordLoad(context.Context, int, int, time.Duration, error) {}
func (nopObserver) RecordFilterApplied(context.Context, int, time.Duration)    {}

// DashboardConfig tunes the dashboard coordinator.
type DashboardConfig struct {
	DebounceWindow  time.Duration
	DefaultMaxPrice float64
	BucketCount     int
	CacheSize       int
	PageSize        int
	ComparisonSize  int
}

// DefaultDashboardConfig returns the standard dashboard settings.
func DefaultDashboardConfig() DashboardConfig {
	return DashboardConfig{
		DebounceWindow:  300 * time.Millisecond,
		DefaultMaxPrice: domain.DefaultMaxPrice,
		BucketCount:     dataprocessing.DefaultBucketCount,
		CacheSize:       64,
		PageSize:        dataprocessing.DefaultPageSize,
		ComparisonSize:  dataprocessing.DefaultComparisonSize,
	}
}

// SnapshotHandler receives every settled dashboard snapshot. Handlers run in
// settle order and must not change the filter themselves.
type SnapshotHandler func(domain.DashboardSnapshot)

// DashboardService coordinates the dataset, the active filter and the
// filtered view.
type DashboardService struct {
	// mu guards dashboard state. notifyMu is taken before mu is released so
	// snapshots reach subscribers in the order they were produced.
	mu       sync.RWMutex
	notifyMu sync.Mutex

	config      DashboardConfig
	logger      *slog.Logger
	engine      *dataprocessing.Engine
	transformer *dataprocessing.RecordTransformer
	debouncer   *Debouncer
	observer    PipelineObserver
	discovery   *files.Discovery
	validator   *validation.FileValidator

	state   DatasetState
	loadErr error

	cars          []domain.Car
	options       domain.FilterOptions
	defaultFilter domain.Filter
	active        domain.Filter
	pending       *domain.Filter
	filtered      dataprocessing.Set
	generation    uint64

	subMu       sync.Mutex
	subscribers map[uint64]SnapshotHandler
	nextSub     uint64
}

// NewDashboardService creates a coordinator in the loading state.
func NewDashboardService(cfg DashboardConfig, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	defaults := DefaultDashboardConfig()
	if cfg.DebounceWindow < 0 {
		cfg.DebounceWindow = 0
	}
	if cfg.DefaultMaxPrice <= 0 {
		cfg.DefaultMaxPrice = defaults.DefaultMaxPrice
	}
	if cfg.BucketCount < 1 {
		cfg.BucketCount = defaults.BucketCount
	}
	if cfg.CacheSize < 0 {
		cfg.CacheSize = 0
	}
	if cfg.PageSize < 1 {
		cfg.PageSize = defaults.PageSize
	}
	if cfg.ComparisonSize < 1 {
		cfg.ComparisonSize = defaults.ComparisonSize
	}

	logger = logger.With(slog.String("component", "dashboard_service"))

	defaultFilter := domain.DefaultFilter()
	defaultFilter.PriceRange = domain.PriceRange{0, cfg.DefaultMaxPrice}

	s := &DashboardService{
		config: cfg,
		logger: logger,
		engine: dataprocessing.NewEngine(dataprocessing.EngineConfig{
			CacheSize:   cfg.CacheSize,
			BucketCount: cfg.BucketCount,
		}, logger),
		transformer:   dataprocessing.NewRecordTransformer(logger),
		debouncer:     NewDebouncer(cfg.DebounceWindow),
		observer:      nopObserver{},
		discovery:     files.NewDiscovery(""),
		validator:     validation.NewFileValidator(logger),
		state:         StateLoading,
		defaultFilter: defaultFilter,
		active:        defaultFilter.Clone(),
		subscribers:   make(map[uint64]SnapshotHandler),
	}
	s.filtered = dataprocessing.NewSet(nil)
	return s
}

// SetObserver installs the pipeline observer. Call before loading.
func (s *DashboardService) SetObserver(o PipelineObserver) {
	if o == nil {
		o = nopObserver{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = o
	s.engine.SetObserver(o)
}

// Config returns the effective configuration.
func (s *DashboardService) Config() DashboardConfig {
	return s.config
}

// DefaultFilter returns the filter restored by ResetFilter.
func (s *DashboardService) DefaultFilter() domain.Filter {
	return s.defaultFilter.Clone()
}

// Load normalizes rows and makes them the dashboard dataset. The dataset can
// be loaded once.
func (s *DashboardService) Load(ctx context.Context, rows []domain.RawRecord) error {
	s.mu.Lock()
	if s.state != StateLoading {
		s.mu.Unlock()
		return ErrDatasetAlreadyLoaded
	}

	start := time.Now()
	cars, stats := s.transformer.TransformWithStats(rows)

	s.cars = cars
	s.options = dataprocessing.Options(cars)
	s.state = StateReady
	s.observer.RecordLoad(ctx, stats.OutputRecords, stats.DroppedRecords, time.Since(start), nil)

	s.logger.InfoContext(ctx, "dataset loaded",
		slog.Int("rows", stats.InputRecords),
		slog.Int("cars", stats.OutputRecords),
		slog.Int("brands", len(s.options.Brands)),
		slog.Duration("duration", time.Since(start)))

	snap := s.applyLocked(ctx, s.defaultFilter.Clone())
	s.releaseAndPublish(snap)
	return nil
}

// LoadFile reads a CSV or Excel dataset and loads it. Any read failure puts the
// service in the terminal failed state.
func (s *DashboardService) LoadFile(ctx context.Context, path, sheet string) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "dataset.load",
		trace.WithAttributes(attribute.String("dataset.path", path)))
	defer span.End()

	start := time.Now()
	rows, err := s.readDataset(ctx, path, sheet)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.Fail(ctx, err)
		s.observer.RecordLoad(ctx, 0, 0, time.Since(start), err)
		return fmt.Errorf("%w: %v", ErrDatasetLoadFailed, err)
	}
	return s.Load(ctx, rows)
}

// readDataset resolves a dataset directory to its latest file before parsing.
func (s *DashboardService) readDataset(ctx context.Context, path, sheet string) ([]domain.RawRecord, error) {
	resolved, err := s.discovery.ResolveDataset(path)
	if err != nil {
		return nil, err
	}
	if resolved != path {
		s.logger.InfoContext(ctx, "dataset resolved",
			slog.String("path", path),
			slog.String("file", resolved))
	}
	if err := s.validator.ValidateDataset(resolved); err != nil {
		return nil, err
	}
	return dataprocessing.LoadFile(resolved, sheet)
}

// Fail records a terminal load failure. It has no effect once a dataset is
// loaded.
func (s *DashboardService) Fail(ctx context.Context, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateLoading {
		return
	}
	s.state = StateFailed
	s.loadErr = err
	s.logger.ErrorContext(ctx, "dataset load failed", slog.String("error", err.Error()))
}

// State returns the dataset state and, when failed, the load error.
func (s *DashboardService) State() (DatasetState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, s.loadErr
}

// readyLocked reports why data cannot be served. Callers hold mu.
func (s *DashboardService) readyLocked() error {
	switch s.state {
	case StateReady:
		return nil
	case StateFailed:
		return fmt.Errorf("%w: %v", ErrDatasetLoadFailed, s.loadErr)
	default:
		return ErrDatasetNotLoaded
	}
}

// SetFilter merges patch into the pending filter. With a zero debounce window
// the change is applied before SetFilter returns; otherwise it is applied once
// the window elapses without a newer change.
func (s *DashboardService) SetFilter(ctx context.Context, patch domain.FilterPatch) (domain.DashboardSnapshot, error) {
	s.mu.Lock()
	if err := s.readyLocked(); err != nil {
		s.mu.Unlock()
		return domain.DashboardSnapshot{}, err
	}

	base := s.active
	if s.pending != nil {
		base = *s.pending
	}
	next := patch.Apply(base)

	if s.config.DebounceWindow == 0 {
		s.pending = nil
		snap := s.applyLocked(ctx, next)
		s.releaseAndPublish(snap)
		return snap, nil
	}

	s.pending = &next
	token := s.debouncer.Schedule(s.settle)
	s.logger.DebugContext(ctx, "filter change scheduled",
		slog.Uint64("token", token),
		slog.Duration("window", s.config.DebounceWindow))

	snap := s.snapshotLocked()
	s.mu.Unlock()
	return snap, nil
}

// settle applies the pending filter when its debounce timer fires.
func (s *DashboardService) settle(token uint64) {
	s.mu.Lock()
	if !s.debouncer.Claim(token) || s.pending == nil {
		s.mu.Unlock()
		return
	}
	next := *s.pending
	s.pending = nil
	snap := s.applyLocked(context.Background(), next)
	s.releaseAndPublish(snap)
}

// Flush applies the pending filter immediately, if there is one.
func (s *DashboardService) Flush(ctx context.Context) (domain.DashboardSnapshot, error) {
	s.mu.Lock()
	if err := s.readyLocked(); err != nil {
		s.mu.Unlock()
		return domain.DashboardSnapshot{}, err
	}
	if s.pending == nil {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, nil
	}

	s.debouncer.Cancel()
	next := *s.pending
	s.pending = nil
	snap := s.applyLocked(ctx, next)
	s.releaseAndPublish(snap)
	return snap, nil
}

// ResetFilter discards any pending change and restores the default filter.
func (s *DashboardService) ResetFilter(ctx context.Context) (domain.DashboardSnapshot, error) {
	s.mu.Lock()
	if err := s.readyLocked(); err != nil {
		s.mu.Unlock()
		return domain.DashboardSnapshot{}, err
	}

	if s.debouncer.Cancel() {
		s.logger.DebugContext(ctx, "pending filter change discarded")
	}
	s.pending = nil
	snap := s.applyLocked(ctx, s.defaultFilter.Clone())
	s.releaseAndPublish(snap)
	return snap, nil
}

// applyLocked makes f the active filter and recomputes the filtered view.
// Callers hold mu for writing.
func (s *DashboardService) applyLocked(ctx context.Context, f domain.Filter) domain.DashboardSnapshot {
	start := time.Now()

	s.active = f
	s.filtered = dataprocessing.NewSet(dataprocessing.FilterCarData(s.cars, f))
	s.generation++

	snap := s.snapshotLocked()
	s.observer.RecordFilterApplied(ctx, snap.FilteredCount, time.Since(start))
	s.logger.DebugContext(ctx, "filter applied",
		slog.Uint64("generation", s.generation),
		slog.Int("matched", snap.FilteredCount),
		slog.Duration("duration", time.Since(start)))
	return snap
}

// snapshotLocked builds the current snapshot. Callers hold mu.
func (s *DashboardService) snapshotLocked() domain.DashboardSnapshot {
	snap := domain.DashboardSnapshot{
		Filter:        s.active.Clone(),
		KPIs:          s.engine.KPIs(s.filtered),
		TotalRecords:  len(s.cars),
		FilteredCount: len(s.filtered.Cars),
		Pending:       s.pending != nil,
		Generation:    s.generation,
	}
	if s.pending != nil {
		p := s.pending.Clone()
		snap.PendingFilter = &p
	}
	return snap
}

// releaseAndPublish unlocks mu and delivers snap to subscribers. notifyMu is
// acquired first so a later snapshot cannot overtake this one.
func (s *DashboardService) releaseAndPublish(snap domain.DashboardSnapshot) {
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	s.subMu.Lock()
	ids := make([]uint64, 0, len(s.subscribers))
	for id := range s.subscribers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	handlers := make([]SnapshotHandler, len(ids))
	for i, id := range ids {
		handlers[i] = s.subscribers[id]
	}
	s.subMu.Unlock()

	for _, h := range handlers {
		h(snap)
	}
}

// Subscribe registers h for settled snapshots and returns its cancel func.
func (s *DashboardService) Subscribe(h SnapshotHandler) (cancel func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.nextSub++
	id := s.nextSub
	s.subscribers[id] = h
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subscribers, id)
	}
}

// Close stops any pending filter timer.
func (s *DashboardService) Close() {
	s.debouncer.Cancel()
}

// Snapshot returns the current dashboard state.
func (s *DashboardService) Snapshot() (domain.DashboardSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.readyLocked(); err != nil {
		return domain.DashboardSnapshot{}, err
	}
	return s.snapshotLocked(), nil
}

// Filter returns the active filter and the pending one, if any.
func (s *DashboardService) Filter() (active domain.Filter, pending *domain.Filter, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.readyLocked(); err != nil {
		return domain.Filter{}, nil, err
	}
	if s.pending != nil {
		p := s.pending.Clone()
		pending = &p
	}
	return s.active.Clone(), pending, nil
}

// view returns the filtered set under a read lock.
func (s *DashboardService) view() (dataprocessing.Set, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.readyLocked(); err != nil {
		return dataprocessing.Set{}, err
	}
	return s.filtered, nil
}

// AllCars returns every normalized car.
func (s *DashboardService) AllCars() ([]domain.Car, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.readyLocked(); err != nil {
		return nil, err
	}
	out := make([]domain.Car, len(s.cars))
	copy(out, s.cars)
	return out, nil
}

// FilteredCars returns the cars matching the active filter.
func (s *DashboardService) FilteredCars() ([]domain.Car, error) {
	set, err := s.view()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Car, len(set.Cars))
	copy(out, set.Cars)
	return out, nil
}

// KPIs returns the headline numbers of the filtered view.
func (s *DashboardService) KPIs() (domain.KPISummary, error) {
	set, err := s.view()
	if err != nil {
		return domain.KPISummary{}, err
	}
	return s.engine.KPIs(set), nil
}

// BrandPerformance returns the per-brand rollup of the filtered view.
func (s *DashboardService) BrandPerformance() ([]domain.BrandPerformance, error) {
	set, err := s.view()
	if err != nil {
		return nil, err
	}
	return s.engine.BrandPerformance(set), nil
}

// PriceDistribution returns the price histogram of the filtered view. A
// non-positive bucketCount selects the configured default.
func (s *DashboardService) PriceDistribution(bucketCount int) ([]domain.PriceBucket, error) {
	set, err := s.view()
	if err != nil {
		return nil, err
	}
	if bucketCount < 1 {
		bucketCount = s.config.BucketCount
	}
	return s.engine.PriceDistribution(set, bucketCount), nil
}

// MarketShare returns the brand share of the filtered view.
func (s *DashboardService) MarketShare() ([]domain.MarketShare, error) {
	set, err := s.view()
	if err != nil {
		return nil, err
	}
	return s.engine.MarketShare(set), nil
}

// Features returns the radar scores of the filtered view.
func (s *DashboardService) Features() ([]domain.FeatureScore, error) {
	set, err := s.view()
	if err != nil {
		return nil, err
	}
	return s.engine.Features(set), nil
}

// Summary returns every chart of the filtered view.
func (s *DashboardService) Summary() (dataprocessing.Summary, error) {
	set, err := s.view()
	if err != nil {
		return dataprocessing.Summary{}, err
	}
	return s.engine.Summarize(set), nil
}

// Options returns the filter choices of the full dataset. A non-empty
// brandSearch narrows the brands by case-insensitive substring.
func (s *DashboardService) Options(brandSearch string) (domain.FilterOptions, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.readyLocked(); err != nil {
		return domain.FilterOptions{}, err
	}
	return domain.FilterOptions{
		Brands:    dataprocessing.SearchBrands(s.options.Brands, brandSearch),
		FuelTypes: append([]string{}, s.options.FuelTypes...),
		BodyTypes: append([]string{}, s.options.BodyTypes...),
	}, nil
}

// Page sorts the filtered view and returns one page of it. An empty key keeps
// the filtered order.
func (s *DashboardService) Page(key dataprocessing.SortKey, descending bool, page, perPage int) (domain.Page, error) {
	if key != "" && !dataprocessing.ValidSortKey(key) {
		return domain.Page{}, fmt.Errorf("%w: sort key %q", ErrInvalidInput, key)
	}
	set, err := s.view()
	if err != nil {
		return domain.Page{}, err
	}
	if perPage < 1 {
		perPage = s.config.PageSize
	}

	return dataprocessing.Paginate(dataprocessing.SortCars(set.Cars, key, descending), page, perPage), nil
}

// Car looks up a car of the filtered view by its "<company>-<model>" id.
func (s *DashboardService) Car(id string) (domain.Car, error) {
	set, err := s.view()
	if err != nil {
		return domain.Car{}, err
	}
	car, ok := dataprocessing.FindCar(set.Cars, id)
	if !ok {
		return domain.Car{}, fmt.Errorf("%w: %s", ErrCarNotFound, id)
	}
	car.Raw = car.Raw.Clone()
	return car, nil
}

// Compare lays the first limit filtered cars side by side. A non-positive
// limit selects the configured comparison size.
func (s *DashboardService) Compare(limit int) (domain.Comparison, error) {
	set, err := s.view()
	if err != nil {
		return domain.Comparison{}, err
	}
	if limit < 1 {
		limit = s.config.ComparisonSize
	}
	return dataprocessing.Compare(set.Cars, limit), nil
}

// ExportTable builds the export table of a dataset over the filtered view.
func (s *DashboardService) ExportTable(dataset exporter.Dataset) (exporter.Table, error) {
	set, err := s.view()
	if err != nil {
		return exporter.Table{}, err
	}

	switch dataset {
	case exporter.DatasetCars:
		return exporter.CarsTable(set.Cars), nil
	case exporter.DatasetBrandPerformance:
		return exporter.BrandPerformanceTable(s.engine.BrandPerformance(set)), nil
	case exporter.DatasetPriceDistribution:
		return exporter.PriceDistributionTable(s.engine.PriceDistribution(set, s.config.BucketCount)), nil
	case exporter.DatasetMarketShare:
		return exporter.MarketShareTable(s.engine.MarketShare(set)), nil
	case exporter.DatasetComparison:
		return exporter.ComparisonTable(dataprocessing.Compare(set.Cars, s.config.ComparisonSize)), nil
	default:
		return exporter.Table{}, fmt.Errorf("%w: %s", ErrUnknownExport, dataset)
	}
}

// CacheStats reports the aggregation cache counters.
func (s *DashboardService) CacheStats() dataprocessing.CacheStats {
	return s.engine.CacheStats()
}
