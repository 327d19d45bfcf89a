package repository

import (
	"context"

	"stac-index/internal/domain/entity"
)

type TutorialRepository interface {
	List(ctx context.Context) ([]*entity.Tutorial, error)
	ListNewest(ctx context.Context, limit int) ([]*entity.Tutorial, error)
	ListKeys(ctx context.Context) ([]entity.ListingKey, error)
	// ListTags returns every distinct tag stored on any tutorial.
	ListTags(ctx context.Context) ([]string, error)
	Create(ctx context.Context, tutorial *entity.Tutorial) error
}
