package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"stac-index/internal/domain/entity"
	"stac-index/internal/repository"
)

type EcosystemRepo struct{ db Querier }

func NewEcosystemRepo(db Querier) repository.EcosystemRepository {
	return &EcosystemRepo{db: db}
}

const ecosystemColumns = `id, url, title, summary, categories, language, email, created, updated`

func scanEcosystem(row rowScanner) (*entity.Ecosystem, error) {
	var (
		e        entity.Ecosystem
		language sql.NullString
		email    sql.NullString
	)
	if err := row.Scan(
		&e.ID, &e.URL, &e.Title, &e.Summary, pq.Array(&e.Categories),
		&language, &email, &e.Created, &e.Updated,
	); err != nil {
		return nil, err
	}
	if e.Categories == nil {
		e.Categories = []string{}
	}
	e.Language = stringPtr(language)
	e.Email = email.String
	return &e, nil
}

func (repo *EcosystemRepo) queryEcosystem(ctx context.Context, query string, args ...any) ([]*entity.Ecosystem, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	entries := make([]*entity.Ecosystem, 0, 50)
	for rows.Next() {
		e, err := scanEcosystem(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (repo *EcosystemRepo) List(ctx context.Context) ([]*entity.Ecosystem, error) {
	const query = `
SELECT ` + ecosystemColumns + `
FROM ecosystem
ORDER BY title ASC`
	entries, err := repo.queryEcosystem(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return entries, nil
}

func (repo *EcosystemRepo) ListNewest(ctx context.Context, limit int) ([]*entity.Ecosystem, error) {
	const query = `
SELECT ` + ecosystemColumns + `
FROM ecosystem
ORDER BY created DESC
LIMIT $1`
	entries, err := repo.queryEcosystem(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ListNewest: %w", err)
	}
	return entries, nil
}

func (repo *EcosystemRepo) ListKeys(ctx context.Context) ([]entity.ListingKey, error) {
	keys, err := scanKeys(ctx, repo.db, `SELECT url, title FROM ecosystem`)
	if err != nil {
		return nil, fmt.Errorf("ListKeys: %w", err)
	}
	return keys, nil
}

func (repo *EcosystemRepo) Create(ctx context.Context, entry *entity.Ecosystem) error {
	const query = `
INSERT INTO ecosystem (url, title, summary, categories, language, email, created, updated)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		entry.URL, entry.Title, entry.Summary, pq.Array(entry.Categories),
		nullStringPtr(entry.Language), nullString(entry.Email), entry.Created, entry.Updated,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}
