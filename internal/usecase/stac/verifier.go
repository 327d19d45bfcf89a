package stac

import (
	"context"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"stac-index/internal/domain/entity"
	"stac-index/internal/infra/fetcher"
	"stac-index/internal/observability/metrics"
	"stac-index/internal/observability/tracing"
)

// Fetcher performs one bounded GET. *fetcher.JSONFetcher implements it.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*fetcher.Response, error)
}

// Verifier checks submitted catalog URLs.
type Verifier struct {
	Fetcher Fetcher
}

// NewVerifier creates a Verifier that fetches with f.
func NewVerifier(f Fetcher) *Verifier {
	return &Verifier{Fetcher: f}
}

// VerifyURL validates rawURL and, when live is true, fetches it and requires a
// JSON object with a string id, a string description and a links array.
//
// A transport failure (including timeouts, oversize bodies and non-2xx
// statuses) is reported with MsgURLError; a response that is not a catalog
// with MsgNoCatalog. Both are *entity.InvalidURLError.
func (v *Verifier) VerifyURL(ctx context.Context, rawURL string, live bool) (string, error) {
	if err := entity.ValidateURL(rawURL); err != nil {
		return "", err
	}
	if !live {
		return rawURL, nil
	}

	ctx, span := tracing.Start(ctx, "stac.VerifyURL", attribute.String("stac.url", rawURL))
	defer span.End()

	resp, err := v.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		metrics.RecordURLVerification("unreachable")
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return "", &entity.InvalidURLError{Message: MsgURLError, Err: err}
	}

	if !IsCatalog(resp.Body) {
		metrics.RecordURLVerification("not_stac")
		span.SetStatus(codes.Error, "not a catalog")
		return "", &entity.InvalidURLError{Message: MsgNoCatalog}
	}

	metrics.RecordURLVerification("valid")
	return rawURL, nil
}

// IsCatalog reports whether body is a JSON object with a string id, a string
// description and a links array.
func IsCatalog(body []byte) bool {
	if !gjson.ValidBytes(body) {
		return false
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return false
	}
	return doc.Get("id").Type == gjson.String &&
		doc.Get("description").Type == gjson.String &&
		doc.Get("links").IsArray()
}

// IsProxyable reports whether body is a JSON object with a string
// stac_version or a links array.
func IsProxyable(body []byte) bool {
	if !gjson.ValidBytes(body) {
		return false
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return false
	}
	return doc.Get("stac_version").Type == gjson.String || doc.Get("links").IsArray()
}
