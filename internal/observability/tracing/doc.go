// Package tracing wires OpenTelemetry spans into the HTTP server and the
// outbound STAC fetches.
//
// Middleware starts a server span per request and returns its trace ID in the
// X-Trace-Id header. Use cases and the fetcher open child spans with Start.
//
// No exporter is installed by default, so spans are no-ops until a
// TracerProvider is registered with otel.SetTracerProvider.
package tracing
