package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer uses the global OTel tracer provider.
var tracer = otel.Tracer("alarmkit")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartBatchSpan starts a span covering a whole import batch.
	StartBatchSpan(ctx context.Context, batchID string, records int) (context.Context, trace.Span)

	// StartRecordSpan starts a span for decoding one record.
	// The record span should be a child of the batch span.
	StartRecordSpan(ctx context.Context, index int) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the
// provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartBatchSpan starts a span covering a whole import batch.
func (m *otelSpanManager) StartBatchSpan(ctx context.Context, batchID string, records int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "alarmkit.import",
		trace.WithAttributes(
			attribute.String("batch.id", batchID),
			attribute.Int("batch.records", records),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartRecordSpan starts a span for decoding one record.
func (m *otelSpanManager) StartRecordSpan(ctx context.Context, index int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "alarmkit.decode",
		trace.WithAttributes(
			attribute.Int("record.index", index),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
