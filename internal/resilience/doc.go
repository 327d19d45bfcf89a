// Package resilience groups the fault tolerance around PostgreSQL.
//
//   - circuitbreaker stops sending queries to a failing database and reports
//     its state to /health and the circuit_breaker_state metric.
//   - retry waits for the database at startup with exponential backoff.
//
// Usage:
//
//	dcb := circuitbreaker.NewDBCircuitBreaker(db)
//	catalogs := postgres.NewCatalogRepo(dcb)
//
//	err := retry.WithBackoff(ctx, retry.DBStartupConfig(), func() error {
//	    return db.PingContext(ctx)
//	})
package resilience
