package directory

import (
	"net/http"

	"stac-index/internal/handler/http/respond"
)

// StacVersion is the STAC version announced by the root catalog.
const StacVersion = "1.1.0"

type rootCatalog struct {
	StacVersion string `json:"stac_version"`
	ID          string `json:"id"`
	Description string `json:"description"`
	Links       []any  `json:"links"`
}

// RootHandler serves the STAC root catalog of the index.
type RootHandler struct{}

func (RootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, rootCatalog{
		StacVersion: StacVersion,
		ID:          "stac-index",
		Description: "Root catalog of STAC Index.",
		Links:       []any{},
	})
}
