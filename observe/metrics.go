package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric names.
const (
	MetricLookups     = "cache.lookups"
	MetricStores      = "cache.stores"
	MetricExpirations = "cache.expirations"
	MetricCodecErrors = "cache.codec_errors"
	MetricComputes    = "cache.compute.total"
	MetricComputeErrs = "cache.compute.errors"
	MetricComputeTime = "cache.compute.duration_ms"
)

// Metrics records cache activity.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordLookup records a read, labelled by hit or miss.
	RecordLookup(ctx context.Context, meta CacheMeta, hit bool)

	// RecordStore records a successful write.
	RecordStore(ctx context.Context, meta CacheMeta)

	// RecordExpiry records an expiry timer firing. Timers are not cancelled,
	// so a timer whose key was already deleted or overwritten still counts.
	RecordExpiry(ctx context.Context, meta CacheMeta)

	// RecordCodecError records a key or value serialization failure.
	RecordCodecError(ctx context.Context, meta CacheMeta)

	// RecordCompute records a producer call with its duration and outcome.
	RecordCompute(ctx context.Context, meta CacheMeta, duration time.Duration, err error)
}

type metricsImpl struct {
	lookups     metric.Int64Counter
	stores      metric.Int64Counter
	expirations metric.Int64Counter
	codecErrors metric.Int64Counter
	computes    metric.Int64Counter
	computeErrs metric.Int64Counter
	computeTime metric.Float64Histogram
}

// NewMetrics creates the cache instruments on meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	m := &metricsImpl{}
	var err error

	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
		unit string
	}{
		{&m.lookups, MetricLookups, "Cache lookups by outcome", "{lookup}"},
		{&m.stores, MetricStores, "Entries written to the cache", "{entry}"},
		{&m.expirations, MetricExpirations, "Expiry timers fired", "{timer}"},
		{&m.codecErrors, MetricCodecErrors, "Key or value serialization failures", "{error}"},
		{&m.computes, MetricComputes, "Producer calls on cache miss", "{call}"},
		{&m.computeErrs, MetricComputeErrs, "Producer calls that failed", "{error}"},
	}
	for _, c := range counters {
		*c.dst, err = meter.Int64Counter(c.name, metric.WithDescription(c.desc), metric.WithUnit(c.unit))
		if err != nil {
			return nil, err
		}
	}

	m.computeTime, err = meter.Float64Histogram(
		MetricComputeTime,
		metric.WithDescription("Producer call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *metricsImpl) RecordLookup(ctx context.Context, meta CacheMeta, hit bool) {
	m.lookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("cache.name", meta.Name),
		attribute.Bool("cache.hit", hit),
	))
}

func (m *metricsImpl) RecordStore(ctx context.Context, meta CacheMeta) {
	m.stores.Add(ctx, 1, metric.WithAttributes(attribute.String("cache.name", meta.Name)))
}

func (m *metricsImpl) RecordExpiry(ctx context.Context, meta CacheMeta) {
	m.expirations.Add(ctx, 1, metric.WithAttributes(attribute.String("cache.name", meta.Name)))
}

func (m *metricsImpl) RecordCodecError(ctx context.Context, meta CacheMeta) {
	m.codecErrors.Add(ctx, 1, metric.WithAttributes(meta.attributes()...))
}

func (m *metricsImpl) RecordCompute(ctx context.Context, meta CacheMeta, duration time.Duration, err error) {
	opt := metric.WithAttributes(attribute.String("cache.name", meta.Name))

	m.computes.Add(ctx, 1, opt)
	if err != nil {
		m.computeErrs.Add(ctx, 1, opt)
	}
	m.computeTime.Record(ctx, float64(duration.Microseconds())/1000, opt)
}

type noopMetrics struct{}

// NewNoopMetrics returns a Metrics that records nothing.
func NewNoopMetrics() Metrics { return noopMetrics{} }

func (noopMetrics) RecordLookup(context.Context, CacheMeta, bool)                   {}
func (noopMetrics) RecordStore(context.Context, CacheMeta)                          {}
func (noopMetrics) RecordExpiry(context.Context, CacheMeta)                         {}
func (noopMetrics) RecordCodecError(context.Context, CacheMeta)                     {}
func (noopMetrics) RecordCompute(context.Context, CacheMeta, time.Duration, error) {}
