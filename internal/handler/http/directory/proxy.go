package directory

import (
	"log/slog"
	"net/http"

	"stac-index/internal/handler/http/respond"
	"stac-index/internal/observability/logging"
	"stac-index/internal/usecase/stac"
)

// ProxyHandler serves GET /proxy?<url>. The whole query string is the target.
type ProxyHandler struct {
	Svc    Proxier
	Logger *slog.Logger
}

func (h ProxyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	target, err := stac.TargetFromQuery(r.URL.RawQuery)
	if err != nil {
		respond.Fail(w, err)
		return
	}

	body, err := h.Svc.Do(r.Context(), target)
	if err != nil {
		logging.WithRequestID(r.Context(), h.Logger).Info("proxy request failed",
			slog.String("target", target),
			slog.String("error", err.Error()))
		respond.Fail(w, err)
		return
	}
	respond.RawJSON(w, http.StatusOK, body)
}
