// Package observability provides structured logging, metrics, and tracing
// for import and deduplication workloads.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"errors"
	"log/slog"
	"time"

	"github.com/atoverton/alarmkit/pkg/alarmkit/codec"
)

// ErrorClass buckets a decode error for logs and metrics: "missing_field",
// "invalid_code", "unresolved_reference", or "other". Returns "" for nil.
func ErrorClass(err error) string {
	if err == nil {
		return ""
	}
	var (
		missing    *codec.MissingFieldError
		invalid    *codec.InvalidCodeError
		unresolved *codec.UnresolvedReferenceError
	)
	switch {
	case errors.As(err, &missing):
		return "missing_field"
	case errors.As(err, &invalid):
		return "invalid_code"
	case errors.As(err, &unresolved):
		return "unresolved_reference"
	default:
		return "other"
	}
}

// EnrichLogger adds import batch context to a logger.
// Returns a new logger with batch_id and source fields.
func EnrichLogger(logger *slog.Logger, batchID, source string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("batch_id", batchID),
		slog.String("source", source),
	)
}

// LogBatchStart logs the start of an import batch.
func LogBatchStart(logger *slog.Logger, batchID string, records int) {
	if logger == nil {
		return
	}
	logger.Info("import batch starting",
		slog.String("batch_id", batchID),
		slog.Int("records", records),
	)
}

// LogBatchComplete logs import batch completion, successful or not.
func LogBatchComplete(logger *slog.Logger, batchID string, decoded, failed int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("import batch completed",
		slog.String("batch_id", batchID),
		slog.Int("decoded", decoded),
		slog.Int("failed", failed),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogRecordDecoded logs a successfully decoded record.
func LogRecordDecoded(logger *slog.Logger, index int, sourceType string) {
	if logger == nil {
		return
	}
	logger.Debug("record decoded",
		slog.Int("index", index),
		slog.String("source_type", sourceType),
	)
}

// LogRecordError logs a record that failed to decode. The batch continues;
// decode errors are per-record.
func LogRecordError(logger *slog.Logger, index int, err error) {
	if logger == nil {
		return
	}
	logger.Warn("record rejected",
		slog.Int("index", index),
		slog.String("error_class", ErrorClass(err)),
		slog.String("error", err.Error()),
	)
}

// LogDecision logs a duplicate handling decision.
func LogDecision(logger *slog.Logger, decision string, sourceType string) {
	if logger == nil {
		return
	}
	logger.Debug("duplicate decision",
		slog.String("decision", decision),
		slog.String("source_type", sourceType),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
