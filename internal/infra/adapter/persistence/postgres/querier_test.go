package postgres_test

import (
	"database/sql"

	"stac-index/internal/infra/adapter/persistence/postgres"
	"stac-index/internal/resilience/circuitbreaker"
)

var (
	_ postgres.Querier = (*sql.DB)(nil)
	_ postgres.Querier = (*circuitbreaker.DBCircuitBreaker)(nil)
)
