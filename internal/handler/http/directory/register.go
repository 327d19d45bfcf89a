// Package directory holds the HTTP handlers of the STAC Index API.
package directory

import (
	"context"
	"log/slog"
	"net/http"

	"stac-index/internal/domain/entity"
	"stac-index/internal/infra/refdata"
	dirUC "stac-index/internal/usecase/directory"
	subUC "stac-index/internal/usecase/submission"
)

// Reader serves the read endpoints. *directory.Service implements it.
type Reader interface {
	ListCatalogs(ctx context.Context) []*entity.Catalog
	GetCatalog(ctx context.Context, slug string) *entity.Catalog
	ListEcosystem(ctx context.Context) []*entity.Ecosystem
	ListTutorials(ctx context.Context) []*entity.Tutorial
	Newest(ctx context.Context) dirUC.Newest
	Tags(ctx context.Context) []string
	Languages() []string
	SpokenLanguages() []refdata.SpokenLanguage
	Sitemap(ctx context.Context) []dirUC.SitemapEntry
}

// Submitter accepts new entries. *submission.Service implements it.
type Submitter interface {
	AddCatalog(ctx context.Context, in subUC.CatalogInput) (*entity.Catalog, error)
	AddEcosystem(ctx context.Context, in subUC.EcosystemInput) (*entity.Ecosystem, error)
	AddTutorial(ctx context.Context, in subUC.TutorialInput) (*entity.Tutorial, error)
}

// Proxier fetches and rewrites a STAC document. *stac.Proxy implements it.
type Proxier interface {
	Do(ctx context.Context, target string) ([]byte, error)
}

// Deps are the collaborators of the route handlers.
type Deps struct {
	Reader    Reader
	Submitter Submitter
	Proxy     Proxier
	// Hostname is used for the absolute <loc> entries of the sitemap.
	Hostname string
	Logger   *slog.Logger

	// SubmitLimit and ProxyLimit wrap /add and /proxy when set.
	SubmitLimit func(http.Handler) http.Handler
	ProxyLimit  func(http.Handler) http.Handler
}

// Register registers every API route with mux.
func Register(mux *http.ServeMux, d Deps) {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux.Handle("GET /{$}", RootHandler{})
	mux.Handle("POST /add", limit(d.SubmitLimit, AddHandler{Svc: d.Submitter}))

	mux.Handle("GET /catalogs", CatalogsHandler{Svc: d.Reader})
	mux.Handle("GET /catalogs/{slug}", CatalogHandler{Svc: d.Reader})
	mux.Handle("GET /ecosystem", EcosystemHandler{Svc: d.Reader})
	mux.Handle("GET /tutorials", TutorialsHandler{Svc: d.Reader})
	mux.Handle("GET /newest", NewestHandler{Svc: d.Reader})
	mux.Handle("GET /languages", LanguagesHandler{Svc: d.Reader})
	mux.Handle("GET /spoken_languages", SpokenLanguagesHandler{Svc: d.Reader})
	mux.Handle("GET /tags", TagsHandler{Svc: d.Reader})

	mux.Handle("GET /proxy", limit(d.ProxyLimit, ProxyHandler{Svc: d.Proxy, Logger: logger}))
	mux.Handle("GET /sitemap.xml", SitemapHandler{Svc: d.Reader, Hostname: d.Hostname})
}

func limit(mw func(http.Handler) http.Handler, h http.Handler) http.Handler {
	if mw == nil {
		return h
	}
	return mw(h)
}
