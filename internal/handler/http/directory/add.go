package directory

import (
	"encoding/json"
	"net/http"

	"stac-index/internal/handler/http/respond"
	subUC "stac-index/internal/usecase/submission"
)

const (
	msgNoData      = "No data given"
	msgInvalidType = "Invalid type specified."
)

// submission is the decoded POST /add body. Fields are read leniently:
// a value of the wrong JSON type counts as absent and fails validation later.
type submission map[string]any

func (s submission) str(key string) string {
	v, _ := s[key].(string)
	return v
}

// list returns the string elements of an array field; other elements become "".
func (s submission) list(key string) []string {
	arr, ok := s[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, len(arr))
	for i, v := range arr {
		out[i], _ = v.(string)
	}
	return out
}

// AddHandler accepts catalog, API, ecosystem and tutorial submissions.
type AddHandler struct{ Svc Submitter }

func (h AddHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body submission
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body == nil {
		respond.Text(w, http.StatusBadRequest, msgNoData)
		return
	}

	ctx := r.Context()
	switch t := body.str("type"); t {
	case "api", "catalog":
		c, err := h.Svc.AddCatalog(ctx, subUC.CatalogInput{
			IsAPI:      t == "api",
			URL:        body.str("url"),
			Slug:       body.str("slug"),
			Title:      body.str("title"),
			Summary:    body.str("summary"),
			Access:     body.str("access"),
			AccessInfo: body.str("accessInfo"),
			Email:      body.str("email"),
		})
		if err != nil {
			respond.Fail(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, c)
	case "ecosystem":
		e, err := h.Svc.AddEcosystem(ctx, subUC.EcosystemInput{
			URL:        body.str("url"),
			Title:      body.str("title"),
			Summary:    body.str("summary"),
			Categories: body.list("categories"),
			Language:   body.str("language"),
			Email:      body.str("email"),
		})
		if err != nil {
			respond.Fail(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, e)
	case "tutorial":
		tut, err := h.Svc.AddTutorial(ctx, subUC.TutorialInput{
			URL:      body.str("url"),
			Title:    body.str("title"),
			Summary:  body.str("summary"),
			Language: body.str("language"),
			Tags:     body.list("tags"),
			Email:    body.str("email"),
		})
		if err != nil {
			respond.Fail(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, tut)
	default:
		respond.Text(w, http.StatusBadRequest, msgInvalidType)
	}
}
