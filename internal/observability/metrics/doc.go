// Package metrics provides the business metrics of the STAC index.
//
// This package covers:
//   - Submissions by record type and outcome
//   - Live URL verifications
//   - Link rewrite proxy requests, fetch latency and rewritten links
//   - Read-path storage failures and database pool statistics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "stac-index/internal/observability/metrics"
//
//	func proxy(ctx context.Context, target string) {
//	    start := time.Now()
//	    // ... fetch and rewrite ...
//	    metrics.RecordProxyRequest(metrics.OutcomeSuccess, time.Since(start))
//	}
package metrics
