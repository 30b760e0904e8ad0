// Package observability provides structured logging, metrics, and tracing
// for fixture lookups, file loads, and catalog operations.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// Every feature is opt-in and has a no-op implementation.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds fixture context to a logger.
// Returns a new logger with source and suite fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "testdata/orders.yaml", "orders")
//	enriched.Debug("lookup") // includes source, suite
func EnrichLogger(logger *slog.Logger, source, suite string) *slog.Logger {
	if logger == nil {
		return nil
	}
	attrs := []any{slog.String("source", source)}
	if suite != "" {
		attrs = append(attrs, slog.String("suite", suite))
	}
	return logger.With(attrs...)
}

// LogLookupMiss logs a lookup that produced no value.
func LogLookupMiss(logger *slog.Logger, op, key, typeName, reason string) {
	if logger == nil {
		return
	}
	logger.Debug("fixture lookup miss",
		slog.String("operation", op),
		slog.String("key", key),
		slog.String("type", typeName),
		slog.String("reason", reason),
	)
}

// LogAdaptFailure logs a value that could not be converted to the requested type.
func LogAdaptFailure(logger *slog.Logger, key, typeName string, err error) {
	if logger == nil {
		return
	}
	attrs := []any{
		slog.String("key", key),
		slog.String("type", typeName),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	logger.Debug("fixture adaptation failed", attrs...)
}

// LogLoad logs a successful fixture file load.
func LogLoad(logger *slog.Logger, path string, dataKeys, metadataKeys int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("fixture loaded",
		slog.String("path", path),
		slog.Int("data_keys", dataKeys),
		slog.Int("metadata_keys", metadataKeys),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogLoadError logs a failed fixture file load.
func LogLoadError(logger *slog.Logger, path string, err error) {
	if logger == nil {
		return
	}
	logger.Error("fixture load failed",
		slog.String("path", path),
		slog.String("error", err.Error()),
	)
}

// LogCatalogSave logs a fixture document saved to a catalog.
func LogCatalogSave(logger *slog.Logger, suite, name string, sizeBytes int) {
	if logger == nil {
		return
	}
	logger.Debug("fixture saved",
		slog.String("suite", suite),
		slog.String("name", name),
		slog.Int("size_bytes", sizeBytes),
	)
}

// LogCatalogError logs a failed catalog operation.
func LogCatalogError(logger *slog.Logger, suite, name, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("fixture catalog operation failed",
		slog.String("suite", suite),
		slog.String("name", name),
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
