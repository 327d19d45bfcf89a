package tracing

import (
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"stac-index/internal/handler/http/responsewriter"
)

// TraceIDHeader returns the server span's trace ID to the client.
const TraceIDHeader = "X-Trace-Id"

// Middleware starts a server span per request, continuing any incoming W3C
// trace context. The span is named after the matched route so that
// /catalogs/{slug} stays a single name, and is marked failed on 5xx.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		ctx, span := GetTracer().Start(ctx, r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", r.Method),
				attribute.String("url.path", r.URL.Path),
			),
		)
		defer span.End()

		w.Header().Set(TraceIDHeader, span.SpanContext().TraceID().String())

		rw := responsewriter.Wrap(w)
		r = r.WithContext(ctx)
		next.ServeHTTP(rw, r)

		// ServeMux は受け取った *Request に Pattern を書き込む
		if r.Pattern != "" {
			span.SetName(routeName(r.Method, r.Pattern))
			span.SetAttributes(attribute.String("http.route", r.Pattern))
		}

		status := rw.StatusCode()
		span.SetAttributes(
			attribute.Int("http.response.status_code", status),
			attribute.Int64("http.response.body.size", rw.BytesWritten()),
		)
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	})
}

// routeName builds "GET /catalogs/{slug}" from a pattern that may already
// carry a method prefix.
func routeName(method, pattern string) string {
	if strings.HasPrefix(pattern, method+" ") {
		return pattern
	}
	return method + " " + pattern
}
