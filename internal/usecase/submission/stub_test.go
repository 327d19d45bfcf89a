package submission_test

import (
	"context"
	"errors"

	"stac-index/internal/domain/entity"
)

/*────────────────────  インメモリスタブ  ────────────────────*/

var errStorage = errors.New("connection refused")

type stubCatalogs struct {
	data      []*entity.Catalog
	listErr   error
	lookupErr error
	createErr error
	created   int
}

func (s *stubCatalogs) List(context.Context) ([]*entity.Catalog, error) { return s.data, s.listErr }
func (s *stubCatalogs) ListNewest(context.Context, int) ([]*entity.Catalog, error) {
	return s.data, s.listErr
}
func (s *stubCatalogs) ListKeys(context.Context) ([]entity.ListingKey, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	keys := make([]entity.ListingKey, 0, len(s.data))
	for _, c := range s.data {
		keys = append(keys, entity.ListingKey{URL: c.URL, Title: c.Title})
	}
	return keys, nil
}
func (s *stubCatalogs) GetBySlug(_ context.Context, slug string) (*entity.Catalog, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	for _, c := range s.data {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}
func (s *stubCatalogs) Create(_ context.Context, c *entity.Catalog) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created++
	c.ID = int64(len(s.data) + 1)
	stored := *c
	s.data = append(s.data, &stored)
	return nil
}

type stubEcosystem struct {
	data      []*entity.Ecosystem
	listErr   error
	createErr error
}

func (s *stubEcosystem) List(context.Context) ([]*entity.Ecosystem, error) { return s.data, s.listErr }
func (s *stubEcosystem) ListNewest(context.Context, int) ([]*entity.Ecosystem, error) {
	return s.data, s.listErr
}
func (s *stubEcosystem) ListKeys(context.Context) ([]entity.ListingKey, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	keys := make([]entity.ListingKey, 0, len(s.data))
	for _, e := range s.data {
		keys = append(keys, entity.ListingKey{URL: e.URL, Title: e.Title})
	}
	return keys, nil
}
func (s *stubEcosystem) Create(_ context.Context, e *entity.Ecosystem) error {
	if s.createErr != nil {
		return s.createErr
	}
	e.ID = int64(len(s.data) + 1)
	stored := *e
	s.data = append(s.data, &stored)
	return nil
}

type stubTutorials struct {
	data      []*entity.Tutorial
	listErr   error
	createErr error
}

func (s *stubTutorials) List(context.Context) ([]*entity.Tutorial, error) { return s.data, s.listErr }
func (s *stubTutorials) ListNewest(context.Context, int) ([]*entity.Tutorial, error) {
	return s.data, s.listErr
}
func (s *stubTutorials) ListKeys(context.Context) ([]entity.ListingKey, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	keys := make([]entity.ListingKey, 0, len(s.data))
	for _, t := range s.data {
		keys = append(keys, entity.ListingKey{URL: t.URL, Title: t.Title})
	}
	return keys, nil
}
func (s *stubTutorials) ListTags(context.Context) ([]string, error) { return nil, s.listErr }
func (s *stubTutorials) Create(_ context.Context, t *entity.Tutorial) error {
	if s.createErr != nil {
		return s.createErr
	}
	t.ID = int64(len(s.data) + 1)
	stored := *t
	s.data = append(s.data, &stored)
	return nil
}

// stubVerifier records live checks and fails URLs listed in unreachable.
type stubVerifier struct {
	live        []string
	unreachable map[string]bool
}

func (v *stubVerifier) VerifyURL(_ context.Context, rawURL string, live bool) (string, error) {
	if err := entity.ValidateURL(rawURL); err != nil {
		return "", err
	}
	if live {
		v.live = append(v.live, rawURL)
		if v.unreachable[rawURL] {
			return "", &entity.InvalidURLError{Message: "The URL given returned an error. Is this a private Catalog or API?"}
		}
	}
	return rawURL, nil
}

type stubReference struct{}

func (stubReference) IsProgrammingLanguage(name string) bool {
	return name == "Go" || name == "Python" || name == "JavaScript"
}
func (stubReference) IsSpokenLanguage(code string) bool {
	return code == "en" || code == "de"
}
