package infrastructure

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// PipelineMetrics records dataset, filter and aggregation cache activity.
// It satisfies the dashboard service's observer interface.
type PipelineMetrics struct {
	recordsLoaded  metric.Int64Counter
	loadDuration   metric.Float64Histogram
	filtersApplied metric.Int64Counter
	filterDuration metric.Float64Histogram
	filterMatched  metric.Int64Gauge
	cacheLookups   metric.Int64Counter
}

// NewPipelineMetrics creates the pipeline instruments on meter.
func NewPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	var (
		m   PipelineMetrics
		err error
		all []error
	)

	m.recordsLoaded, err = meter.Int64Counter("dataset_records_total",
		metric.WithDescription("Dataset rows processed at load, by outcome"))
	all = append(all, err)

	m.loadDuration, err = meter.Float64Histogram("dataset_load_duration_seconds",
		metric.WithDescription("Dataset load duration in seconds"),
		metric.WithUnit("s"))
	all = append(all, err)

	m.filtersApplied, err = meter.Int64Counter("filter_applied_total",
		metric.WithDescription("Total number of filters applied"))
	all = append(all, err)

	m.filterDuration, err = meter.Float64Histogram("filter_apply_duration_seconds",
		metric.WithDescription("Filter evaluation duration in seconds"),
		metric.WithUnit("s"))
	all = append(all, err)

	m.filterMatched, err = meter.Int64Gauge("filter_matched_cars",
		metric.WithDescription("Cars matched by the active filter"))
	all = append(all, err)

	m.cacheLookups, err = meter.Int64Counter("aggregation_cache_lookups_total",
		metric.WithDescription("Aggregation cache lookups, by reducer and result"))
	all = append(all, err)

	if err := errors.Join(all...); err != nil {
		return nil, err
	}
	return &m, nil
}

// ObserveCacheLookup counts one aggregation cache lookup.
func (m *PipelineMetrics) ObserveCacheLookup(reducer string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("reducer", reducer),
		attribute.String("result", result),
	))
}

// RecordLoad records a dataset load attempt.
func (m *PipelineMetrics) RecordLoad(ctx context.Context, loaded, dropped int, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
		RecordError(ctx, err)
	}

	m.loadDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.String("status", status)))
	m.recordsLoaded.Add(ctx, int64(loaded), metric.WithAttributes(attribute.String("outcome", "loaded")))
	m.recordsLoaded.Add(ctx, int64(dropped), metric.WithAttributes(attribute.String("outcome", "dropped")))

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("dataset.loaded", trace.WithAttributes(
			attribute.Int("cars", loaded),
			attribute.Int("dropped", dropped),
		))
	}
}

// RecordFilterApplied records one filter evaluation.
func (m *PipelineMetrics) RecordFilterApplied(ctx context.Context, matched int, duration time.Duration) {
	m.filtersApplied.Add(ctx, 1)
	m.filterDuration.Record(ctx, duration.Seconds())
	m.filterMatched.Record(ctx, int64(matched))
}
