// Package directory serves the read side of the STAC index: listings, the
// newest entries, single catalogs, tag suggestions and reference lists.
//
// Storage failures on these paths are logged and answered with empty results.
package directory

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"stac-index/internal/domain/entity"
	"stac-index/internal/infra/refdata"
	"stac-index/internal/observability/logging"
	"stac-index/internal/observability/metrics"
	"stac-index/internal/repository"
)

// NewestLimit is the number of entries per collection returned by Newest.
const NewestLimit = 3

// ReferenceLists exposes the sorted reference data. *refdata.Data implements it.
type ReferenceLists interface {
	ProgrammingLanguages() []string
	SpokenLanguages() []refdata.SpokenLanguage
}

// Newest holds the most recent entries of each collection. Data are catalogs.
type Newest struct {
	Ecosystem []*entity.Ecosystem `json:"ecosystem"`
	Data      []*entity.Catalog   `json:"data"`
	Tutorials []*entity.Tutorial  `json:"tutorials"`
}

// Service answers read requests. Every returned record is in its public form.
type Service struct {
	Catalogs  repository.CatalogRepository
	Ecosystem repository.EcosystemRepository
	Tutorials repository.TutorialRepository
	Reference ReferenceLists
}

// ListCatalogs returns all catalogs ordered by title.
func (s *Service) ListCatalogs(ctx context.Context) []*entity.Catalog {
	list, err := s.Catalogs.List(ctx)
	if err != nil {
		readFailed(ctx, "list_catalogs", err)
	}
	return entity.UpgradeAll(list)
}

// GetCatalog returns the catalog with slug, or nil when there is none.
func (s *Service) GetCatalog(ctx context.Context, slug string) *entity.Catalog {
	c, err := s.Catalogs.GetBySlug(ctx, slug)
	if err != nil {
		readFailed(ctx, "get_catalog", err)
		return nil
	}
	return c.Upgrade()
}

// ListEcosystem returns all ecosystem entries ordered by title.
func (s *Service) ListEcosystem(ctx context.Context) []*entity.Ecosystem {
	list, err := s.Ecosystem.List(ctx)
	if err != nil {
		readFailed(ctx, "list_ecosystem", err)
	}
	return entity.UpgradeAll(list)
}

// ListTutorials returns all tutorials ordered by title.
func (s *Service) ListTutorials(ctx context.Context) []*entity.Tutorial {
	list, err := s.Tutorials.List(ctx)
	if err != nil {
		readFailed(ctx, "list_tutorials", err)
	}
	return entity.UpgradeAll(list)
}

// Newest loads the NewestLimit most recent entries of the three collections
// concurrently. A failing collection comes back empty.
func (s *Service) Newest(ctx context.Context) Newest {
	var (
		ecosystem []*entity.Ecosystem
		catalogs  []*entity.Catalog
		tutorials []*entity.Tutorial
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := s.Ecosystem.ListNewest(gctx, NewestLimit)
		if err != nil {
			readFailed(ctx, "newest_ecosystem", err)
		}
		ecosystem = list
		return nil
	})
	g.Go(func() error {
		list, err := s.Catalogs.ListNewest(gctx, NewestLimit)
		if err != nil {
			readFailed(ctx, "newest_catalogs", err)
		}
		catalogs = list
		return nil
	})
	g.Go(func() error {
		list, err := s.Tutorials.ListNewest(gctx, NewestLimit)
		if err != nil {
			readFailed(ctx, "newest_tutorials", err)
		}
		tutorials = list
		return nil
	})
	_ = g.Wait() // goroutines never fail

	return Newest{
		Ecosystem: entity.UpgradeAll(ecosystem),
		Data:      entity.UpgradeAll(catalogs),
		Tutorials: entity.UpgradeAll(tutorials),
	}
}

// Tags suggests tutorial tags: every stored tag plus the lowercased ecosystem
// categories, sorted and without repeats.
func (s *Service) Tags(ctx context.Context) []string {
	stored, err := s.Tutorials.ListTags(ctx)
	if err != nil {
		readFailed(ctx, "list_tags", err)
	}

	seen := make(map[string]struct{}, len(stored)+len(entity.Categories))
	tags := make([]string, 0, len(stored)+len(entity.Categories))
	add := func(tag string) {
		tag = strings.ToLower(tag)
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	for _, c := range entity.Categories {
		add(c)
	}
	for _, t := range stored {
		add(t)
	}
	sort.Strings(tags)
	return tags
}

// Languages returns the known programming languages.
func (s *Service) Languages() []string {
	return s.Reference.ProgrammingLanguages()
}

// SpokenLanguages returns the known spoken languages sorted by name.
func (s *Service) SpokenLanguages() []refdata.SpokenLanguage {
	return s.Reference.SpokenLanguages()
}

func readFailed(ctx context.Context, operation string, err error) {
	metrics.RecordReadFailure(operation)
	logging.WithRequestID(ctx, slog.Default()).Error("read failed, returning empty result",
		slog.String("operation", operation),
		slog.Any("error", err))
}
