package directory

import (
	"fmt"
	"net/http"

	"stac-index/internal/handler/http/respond"
)

// CatalogsHandler lists all catalogs and APIs.
type CatalogsHandler struct{ Svc Reader }

func (h CatalogsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.Svc.ListCatalogs(r.Context()))
}

// CatalogHandler returns one catalog by slug.
type CatalogHandler struct{ Svc Reader }

func (h CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	c := h.Svc.GetCatalog(r.Context(), slug)
	if c == nil {
		respond.Text(w, http.StatusNotFound, fmt.Sprintf("Catalog with slug '%s' doesn't exist", slug))
		return
	}
	respond.JSON(w, http.StatusOK, c)
}

// EcosystemHandler lists the ecosystem.
type EcosystemHandler struct{ Svc Reader }

func (h EcosystemHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.Svc.ListEcosystem(r.Context()))
}

// TutorialsHandler lists the tutorials.
type TutorialsHandler struct{ Svc Reader }

func (h TutorialsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.Svc.ListTutorials(r.Context()))
}

// NewestHandler returns the latest entries of each collection.
type NewestHandler struct{ Svc Reader }

func (h NewestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.Svc.Newest(r.Context()))
}

// LanguagesHandler lists the accepted programming languages.
type LanguagesHandler struct{ Svc Reader }

func (h LanguagesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.Svc.Languages())
}

// SpokenLanguagesHandler lists the accepted tutorial languages.
type SpokenLanguagesHandler struct{ Svc Reader }

func (h SpokenLanguagesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.Svc.SpokenLanguages())
}

// TagsHandler suggests tutorial tags.
type TagsHandler struct{ Svc Reader }

func (h TagsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.Svc.Tags(r.Context()))
}
