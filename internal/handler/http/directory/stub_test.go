package directory_test

import (
	"context"
	"errors"

	"stac-index/internal/domain/entity"
	"stac-index/internal/infra/refdata"
	dirUC "stac-index/internal/usecase/directory"
	subUC "stac-index/internal/usecase/submission"
)

/* ───────── スタブ ───────── */

type stubReader struct {
	catalogs  []*entity.Catalog
	ecosystem []*entity.Ecosystem
	tutorials []*entity.Tutorial
	tags      []string
	sitemap   []dirUC.SitemapEntry
}

func (s *stubReader) ListCatalogs(context.Context) []*entity.Catalog { return s.catalogs }

func (s *stubReader) GetCatalog(_ context.Context, slug string) *entity.Catalog {
	for _, c := range s.catalogs {
		if c.Slug == slug {
			return c
		}
	}
	return nil
}

func (s *stubReader) ListEcosystem(context.Context) []*entity.Ecosystem { return s.ecosystem }
func (s *stubReader) ListTutorials(context.Context) []*entity.Tutorial  { return s.tutorials }

func (s *stubReader) Newest(context.Context) dirUC.Newest {
	return dirUC.Newest{
		Ecosystem: s.ecosystem,
		Data:      s.catalogs,
		Tutorials: s.tutorials,
	}
}

func (s *stubReader) Tags(context.Context) []string { return s.tags }
func (s *stubReader) Languages() []string           { return []string{"Go", "Python"} }

func (s *stubReader) SpokenLanguages() []refdata.SpokenLanguage {
	return []refdata.SpokenLanguage{{Code: "en", Name: "English"}, {Code: "de", Name: "German"}}
}

func (s *stubReader) Sitemap(context.Context) []dirUC.SitemapEntry { return s.sitemap }

type stubSubmitter struct {
	err       error
	catalog   *subUC.CatalogInput
	ecosystem *subUC.EcosystemInput
	tutorial  *subUC.TutorialInput
}

func (s *stubSubmitter) AddCatalog(_ context.Context, in subUC.CatalogInput) (*entity.Catalog, error) {
	s.catalog = &in
	if s.err != nil {
		return nil, s.err
	}
	return &entity.Catalog{ID: 1, Slug: in.Slug, URL: in.URL, Title: in.Title, Access: entity.Access(in.Access), IsAPI: in.IsAPI}, nil
}

func (s *stubSubmitter) AddEcosystem(_ context.Context, in subUC.EcosystemInput) (*entity.Ecosystem, error) {
	s.ecosystem = &in
	if s.err != nil {
		return nil, s.err
	}
	return &entity.Ecosystem{ID: 2, URL: in.URL, Title: in.Title, Categories: in.Categories}, nil
}

func (s *stubSubmitter) AddTutorial(_ context.Context, in subUC.TutorialInput) (*entity.Tutorial, error) {
	s.tutorial = &in
	if s.err != nil {
		return nil, s.err
	}
	return &entity.Tutorial{ID: 3, URL: in.URL, Title: in.Title, Tags: in.Tags, Language: in.Language}, nil
}

type stubProxy struct {
	body   []byte
	err    error
	target string
}

func (s *stubProxy) Do(_ context.Context, target string) ([]byte, error) {
	s.target = target
	return s.body, s.err
}

var errBoom = errors.New("boom")
