package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business metrics track directory submissions and proxy traffic.
// HTTP request metrics live with the HTTP middleware.
var (
	// SubmissionsTotal counts submissions by record type and outcome.
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stacindex_submissions_total",
			Help: "Total number of submissions by type and outcome",
		},
		[]string{"type", "outcome"},
	)

	// URLVerificationsTotal counts live STAC checks of submitted URLs by result.
	URLVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stacindex_url_verifications_total",
			Help: "Total number of live catalog URL verifications",
		},
		[]string{"result"},
	)

	// ProxyRequestsTotal counts proxy requests by result.
	ProxyRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stacindex_proxy_requests_total",
			Help: "Total number of link rewrite proxy requests",
		},
		[]string{"result"},
	)

	// ProxyFetchDuration measures the upstream fetch of a proxy request.
	ProxyFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stacindex_proxy_fetch_duration_seconds",
			Help:    "Time taken to fetch the upstream document of a proxy request",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 8),
		},
	)

	// ProxyLinksRewritten counts hrefs replaced with proxy URLs.
	ProxyLinksRewritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stacindex_proxy_links_rewritten_total",
			Help: "Total number of links rewritten to go through the proxy",
		},
	)

	// ReadFailuresTotal counts storage failures on read paths that degraded to empty results.
	ReadFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stacindex_read_failures_total",
			Help: "Total number of read-path storage failures answered with empty results",
		},
		[]string{"operation"},
	)

	// CircuitBreakerState reports each breaker as 0 (closed), 1 (half-open) or 2 (open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state: 0 closed, 1 half-open, 2 open",
		},
		[]string{"name"},
	)

	// DBConnectionsActive tracks active database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)
