package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/atoverton/alarmkit/pkg/alarmkit/codec"
)

// setupMetricsTest installs a manual-reader meter provider and returns the
// reader plus a cleanup function.
func setupMetricsTest(t *testing.T) (*sdkmetric.ManualReader, func()) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	originalProvider := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)

	cleanup := func() {
		otel.SetMeterProvider(originalProvider)
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down meter provider: %v", err)
		}
	}
	return reader, cleanup
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) *metricdata.ResourceMetrics {
	var rm metricdata.ResourceMetrics
	err := reader.Collect(context.Background(), &rm)
	require.NoError(t, err)
	return &rm
}

func findMetric(rm *metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestErrorClass(t *testing.T) {
	assert.Equal(t, "", ErrorClass(nil))
	assert.Equal(t, "missing_field", ErrorClass(&codec.MissingFieldError{Field: "dataSource"}))
	assert.Equal(t, "invalid_code", ErrorClass(&codec.InvalidCodeError{Field: "sourceType", Value: "X"}))
	assert.Equal(t, "unresolved_reference", ErrorClass(&codec.UnresolvedReferenceError{Field: "dataSource", XID: "ds-404"}))
	assert.Equal(t, "other", ErrorClass(errors.New("boom")))
}

func TestNewMetricsRecorder(t *testing.T) {
	_, cleanup := setupMetricsTest(t)
	defer cleanup()

	recorder := NewMetricsRecorder()
	require.NotNil(t, recorder)
}

func TestRecordDecode(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("records decode count", func(t *testing.T) {
		m.RecordDecode(ctx, "DATA_SOURCE", nil)

		rm := collectMetrics(t, reader)
		metric := findMetric(rm, "alarmkit.decode.records")
		require.NotNil(t, metric)

		sum, ok := metric.Data.(metricdata.Sum[int64])
		require.True(t, ok, "Expected Sum type")
		require.NotEmpty(t, sum.DataPoints)
	})

	t.Run("classifies errors", func(t *testing.T) {
		m.RecordDecode(ctx, "DATA_SOURCE", &codec.UnresolvedReferenceError{
			Field: "dataSource", XID: "ds-404",
		})

		rm := collectMetrics(t, reader)
		metric := findMetric(rm, "alarmkit.decode.errors")
		require.NotNil(t, metric)

		sum, ok := metric.Data.(metricdata.Sum[int64])
		require.True(t, ok, "Expected Sum type")

		found := false
		for _, dp := range sum.DataPoints {
			for _, attr := range dp.Attributes.ToSlice() {
				if attr.Key == "error_class" && attr.Value.AsString() == "unresolved_reference" {
					found = true
					assert.GreaterOrEqual(t, dp.Value, int64(1))
				}
			}
		}
		assert.True(t, found, "Expected an error datapoint classed unresolved_reference")
	})

	t.Run("does not record error when nil", func(t *testing.T) {
		m.RecordDecode(ctx, "SYSTEM", nil)

		rm := collectMetrics(t, reader)
		metric := findMetric(rm, "alarmkit.decode.errors")
		if metric != nil {
			sum, ok := metric.Data.(metricdata.Sum[int64])
			if ok {
				for _, dp := range sum.DataPoints {
					for _, attr := range dp.Attributes.ToSlice() {
						if attr.Key == "source_type" && attr.Value.AsString() == "SYSTEM" {
							assert.Equal(t, int64(0), dp.Value)
						}
					}
				}
			}
		}
	})
}

func TestRecordBatch(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordBatch(ctx, 40, 0, 120*time.Millisecond)
	m.RecordBatch(ctx, 12, 3, 20*time.Millisecond)

	rm := collectMetrics(t, reader)

	metric := findMetric(rm, "alarmkit.import.batches")
	require.NotNil(t, metric)
	sum, ok := metric.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.NotEmpty(t, sum.DataPoints)

	metric = findMetric(rm, "alarmkit.import.latency_ms")
	require.NotNil(t, metric)
	hist, ok := metric.Data.(metricdata.Histogram[float64])
	require.True(t, ok, "Expected Histogram type")
	require.NotEmpty(t, hist.DataPoints)

	metric = findMetric(rm, "alarmkit.import.batch_size")
	require.NotNil(t, metric)
	sizeHist, ok := metric.Data.(metricdata.Histogram[int64])
	require.True(t, ok, "Expected Histogram[int64] type")
	require.NotEmpty(t, sizeHist.DataPoints)
}

func TestRecordDecision(t *testing.T) {
	reader, cleanup := setupMetricsTest(t)
	defer cleanup()

	m, err := newOtelMetrics()
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordDecision(ctx, "DISCARD")
	m.RecordDecision(ctx, "RAISE")
	m.RecordDecision(ctx, "RAISE")

	rm := collectMetrics(t, reader)
	metric := findMetric(rm, "alarmkit.dedup.decisions")
	require.NotNil(t, metric)

	sum, ok := metric.Data.(metricdata.Sum[int64])
	require.True(t, ok)

	found := false
	for _, dp := range sum.DataPoints {
		for _, attr := range dp.Attributes.ToSlice() {
			if attr.Key == "decision" && attr.Value.AsString() == "RAISE" {
				found = true
				assert.Equal(t, int64(2), dp.Value)
			}
		}
	}
	assert.True(t, found, "Expected a datapoint for decision=RAISE")
}

func TestNoopImplementations(t *testing.T) {
	ctx := context.Background()

	// Must not panic or record anything.
	NoopMetrics{}.RecordDecode(ctx, "SYSTEM", nil)
	NoopMetrics{}.RecordBatch(ctx, 1, 0, time.Millisecond)
	NoopMetrics{}.RecordDecision(ctx, "RAISE")

	sm := NoopSpanManager{}
	spanCtx, span := sm.StartBatchSpan(ctx, "batch-1", 3)
	assert.Equal(t, ctx, spanCtx)
	sm.EndSpanWithError(span, errors.New("ignored"))
	sm.AddSpanEvent(ctx, "ignored")
}
