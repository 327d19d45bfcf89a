package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"stac-index/internal/domain/entity"
	"stac-index/internal/repository"
)

const catalogSlugConstraint = "catalogs_slug_key"

type CatalogRepo struct{ db Querier }

func NewCatalogRepo(db Querier) repository.CatalogRepository {
	return &CatalogRepo{db: db}
}

const catalogColumns = `id, slug, url, title, summary, access, access_info, is_api, email, created, updated`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCatalog(row rowScanner) (*entity.Catalog, error) {
	var (
		c          entity.Catalog
		access     string
		accessInfo sql.NullString
		email      sql.NullString
	)
	if err := row.Scan(
		&c.ID, &c.Slug, &c.URL, &c.Title, &c.Summary,
		&access, &accessInfo, &c.IsAPI, &email, &c.Created, &c.Updated,
	); err != nil {
		return nil, err
	}
	c.Access = entity.Access(access)
	c.AccessInfo = stringPtr(accessInfo)
	c.Email = email.String
	return &c, nil
}

func (repo *CatalogRepo) queryCatalogs(ctx context.Context, query string, args ...any) ([]*entity.Catalog, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	// パフォーマンス最適化: メモリ再割り当てを削減するため事前割り当て
	catalogs := make([]*entity.Catalog, 0, 50)
	for rows.Next() {
		c, err := scanCatalog(rows)
		if err != nil {
			return nil, err
		}
		catalogs = append(catalogs, c)
	}
	return catalogs, rows.Err()
}

func (repo *CatalogRepo) List(ctx context.Context) ([]*entity.Catalog, error) {
	const query = `
SELECT ` + catalogColumns + `
FROM catalogs
ORDER BY title ASC`
	catalogs, err := repo.queryCatalogs(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return catalogs, nil
}

func (repo *CatalogRepo) ListNewest(ctx context.Context, limit int) ([]*entity.Catalog, error) {
	const query = `
SELECT ` + catalogColumns + `
FROM catalogs
ORDER BY created DESC
LIMIT $1`
	catalogs, err := repo.queryCatalogs(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("ListNewest: %w", err)
	}
	return catalogs, nil
}

func (repo *CatalogRepo) ListKeys(ctx context.Context) ([]entity.ListingKey, error) {
	keys, err := scanKeys(ctx, repo.db, `SELECT url, title FROM catalogs`)
	if err != nil {
		return nil, fmt.Errorf("ListKeys: %w", err)
	}
	return keys, nil
}

func (repo *CatalogRepo) GetBySlug(ctx context.Context, slug string) (*entity.Catalog, error) {
	const query = `
SELECT ` + catalogColumns + `
FROM catalogs
WHERE slug = $1
LIMIT 1`
	c, err := scanCatalog(repo.db.QueryRowContext(ctx, query, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetBySlug: %w", err)
	}
	return c, nil
}

// Create inserts catalog and sets its ID. A taken slug yields *entity.SlugCollisionError.
func (repo *CatalogRepo) Create(ctx context.Context, catalog *entity.Catalog) error {
	const query = `
INSERT INTO catalogs (slug, url, title, summary, access, access_info, is_api, email, created, updated)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		catalog.Slug, catalog.URL, catalog.Title, catalog.Summary,
		string(catalog.Access), nullStringPtr(catalog.AccessInfo), catalog.IsAPI,
		nullString(catalog.Email), catalog.Created, catalog.Updated,
	).Scan(&catalog.ID)
	if isUniqueViolation(err, catalogSlugConstraint) {
		return &entity.SlugCollisionError{Slug: catalog.Slug}
	}
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}
