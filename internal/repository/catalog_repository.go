package repository

import (
	"context"

	"stac-index/internal/domain/entity"
)

// CatalogRepository stores catalog and API listings.
// GetBySlug returns (nil, nil) when no catalog has the slug.
type CatalogRepository interface {
	List(ctx context.Context) ([]*entity.Catalog, error)
	ListNewest(ctx context.Context, limit int) ([]*entity.Catalog, error)
	ListKeys(ctx context.Context) ([]entity.ListingKey, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Catalog, error)
	Create(ctx context.Context, catalog *entity.Catalog) error
}
