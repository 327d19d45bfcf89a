package metrics

import (
	"time"
)

// Outcome labels shared by the submission and proxy counters.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// RecordSubmission records the outcome of one submission.
// recordType is catalog, ecosystem or tutorial.
func RecordSubmission(recordType, outcome string) {
	SubmissionsTotal.WithLabelValues(recordType, outcome).Inc()
}

// RecordURLVerification records a live URL check. Result is "valid", "not_stac" or "unreachable".
func RecordURLVerification(result string) {
	URLVerificationsTotal.WithLabelValues(result).Inc()
}

// RecordProxyRequest records the result of a proxy request and, when the
// upstream was contacted, how long the fetch took.
func RecordProxyRequest(result string, fetchDuration time.Duration) {
	ProxyRequestsTotal.WithLabelValues(result).Inc()
	if fetchDuration > 0 {
		ProxyFetchDuration.Observe(fetchDuration.Seconds())
	}
}

// RecordLinksRewritten adds n rewritten links.
func RecordLinksRewritten(n int) {
	if n > 0 {
		ProxyLinksRewritten.Add(float64(n))
	}
}

// RecordReadFailure records a read-path storage failure.
func RecordReadFailure(operation string) {
	ReadFailuresTotal.WithLabelValues(operation).Inc()
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}

// SetCircuitBreakerState records the state of the named breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
