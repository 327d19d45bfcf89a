package repository

import (
	"context"

	"stac-index/internal/domain/entity"
)

type EcosystemRepository interface {
	List(ctx context.Context) ([]*entity.Ecosystem, error)
	ListNewest(ctx context.Context, limit int) ([]*entity.Ecosystem, error)
	ListKeys(ctx context.Context) ([]entity.ListingKey, error)
	Create(ctx context.Context, entry *entity.Ecosystem) error
}
