package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records import and deduplication metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordDecode records one record decode with its error status.
	RecordDecode(ctx context.Context, sourceType string, err error)

	// RecordBatch records an import batch completion.
	RecordBatch(ctx context.Context, total, failed int, duration time.Duration)

	// RecordDecision records a duplicate handling decision.
	RecordDecision(ctx context.Context, decision string)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	decodes      metric.Int64Counter
	decodeErrors metric.Int64Counter
	batches      metric.Int64Counter
	batchLatency metric.Float64Histogram
	batchSize    metric.Int64Histogram
	decisions    metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("alarmkit")

	decodes, err := meter.Int64Counter("alarmkit.decode.records",
		metric.WithDescription("Number of records decoded"),
	)
	if err != nil {
		return nil, err
	}

	decodeErrors, err := meter.Int64Counter("alarmkit.decode.errors",
		metric.WithDescription("Number of records rejected during decode"),
	)
	if err != nil {
		return nil, err
	}

	batches, err := meter.Int64Counter("alarmkit.import.batches",
		metric.WithDescription("Number of import batches processed"),
	)
	if err != nil {
		return nil, err
	}

	batchLatency, err := meter.Float64Histogram("alarmkit.import.latency_ms",
		metric.WithDescription("Import batch latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	batchSize, err := meter.Int64Histogram("alarmkit.import.batch_size",
		metric.WithDescription("Records per import batch"),
	)
	if err != nil {
		return nil, err
	}

	decisions, err := meter.Int64Counter("alarmkit.dedup.decisions",
		metric.WithDescription("Duplicate handling decisions by outcome"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		decodes:      decodes,
		decodeErrors: decodeErrors,
		batches:      batches,
		batchLatency: batchLatency,
		batchSize:    batchSize,
		decisions:    decisions,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordDecode records one record decode.
func (m *otelMetrics) RecordDecode(ctx context.Context, sourceType string, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("source_type", sourceType),
	}

	m.decodes.Add(ctx, 1, metric.WithAttributes(attrs...))

	if err != nil {
		m.decodeErrors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("source_type", sourceType),
			attribute.String("error_class", ErrorClass(err)),
		))
	}
}

// RecordBatch records an import batch completion.
func (m *otelMetrics) RecordBatch(ctx context.Context, total, failed int, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.Bool("clean", failed == 0),
	}
	m.batches.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.batchLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	m.batchSize.Record(ctx, int64(total), metric.WithAttributes(attrs...))
}

// RecordDecision records a duplicate handling decision.
func (m *otelMetrics) RecordDecision(ctx context.Context, decision string) {
	m.decisions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("decision", decision),
	))
}
