// Package observability groups the logging, metrics and tracing setup of the service.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus business metrics
//   - tracing: OpenTelemetry tracing integration
//
// Example usage:
//
//	import (
//	    "stac-index/internal/observability/logging"
//	    "stac-index/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger, _ := logging.New(logging.Options{Level: "info", Format: "json"})
//	    logger.Info("application started")
//
//	    metrics.RecordSubmission("catalog", metrics.OutcomeSuccess)
//	}
package observability
