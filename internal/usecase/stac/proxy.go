package stac

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"stac-index/internal/domain/entity"
	"stac-index/internal/infra/fetcher"
	"stac-index/internal/observability/metrics"
	"stac-index/internal/observability/tracing"
)

// Proxy result labels.
const (
	proxyResultSuccess     = "success"
	proxyResultBadRequest  = "bad_request"
	proxyResultUpstreamErr = "upstream_error"
	proxyResultNotSTAC     = "not_stac"
)

// Proxy relays STAC documents and rewrites their navigation links to point
// back at this service.
type Proxy struct {
	Fetcher   Fetcher
	PublicURL string
}

// NewProxy creates a Proxy. f should carry the proxy limits
// (fetcher.ProxyConfig).
func NewProxy(f Fetcher, publicURL string) *Proxy {
	return &Proxy{Fetcher: f, PublicURL: publicURL}
}

// TargetFromQuery extracts the target URL from a raw query string. The query
// must consist of exactly one key, which is the URL. An unescaped URL with a
// single query parameter ("a?b=c") arrives split into key and value and is
// joined back. Only "&" separates parameters; a ";" stays part of the URL.
func TargetFromQuery(rawQuery string) (string, error) {
	var params []string
	for _, p := range strings.Split(rawQuery, "&") {
		if p != "" {
			params = append(params, p)
		}
	}
	if len(params) != 1 {
		return "", &entity.ProxyError{Message: MsgQueryInvalid}
	}

	rawKey, rawValue, _ := strings.Cut(params[0], "=")
	key, err := url.QueryUnescape(rawKey)
	if err != nil || key == "" {
		return "", &entity.ProxyError{Message: MsgQueryInvalid, Err: err}
	}
	value, err := url.QueryUnescape(rawValue)
	if err != nil {
		return "", &entity.ProxyError{Message: MsgQueryInvalid, Err: err}
	}
	if value != "" {
		return key + "=" + value, nil
	}
	return key, nil
}

// Do fetches target and returns the document as JSON with its links rewritten.
// Every failure is an *entity.ProxyError whose message tells a failed request
// apart from a document that is not STAC.
func (p *Proxy) Do(ctx context.Context, target string) ([]byte, error) {
	ctx, span := tracing.Start(ctx, "stac.Proxy", attribute.String("stac.url", target))
	defer span.End()

	if err := entity.ValidateURL(target); err != nil {
		metrics.RecordProxyRequest(proxyResultBadRequest, 0)
		return nil, &entity.ProxyError{Message: err.Error(), Err: err}
	}

	start := time.Now()
	resp, err := p.Fetcher.Fetch(ctx, target)
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordProxyRequest(proxyResultUpstreamErr, elapsed)
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return nil, &entity.ProxyError{Message: fmt.Sprintf(msgRequestFailedFmt, failureReason(err)), Err: err}
	}

	if !IsProxyable(resp.Body) {
		metrics.RecordProxyRequest(proxyResultNotSTAC, elapsed)
		span.SetStatus(codes.Error, "not stac")
		return nil, &entity.ProxyError{Message: MsgNotSTAC}
	}

	// UseNumber keeps large integers and decimals as written.
	var doc map[string]any
	dec := json.NewDecoder(bytes.NewReader(resp.Body))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		metrics.RecordProxyRequest(proxyResultNotSTAC, elapsed)
		return nil, &entity.ProxyError{Message: MsgNotSTAC, Err: err}
	}

	rw := Rewriter{PublicURL: p.PublicURL, Base: resp.URL}
	rewritten, err := rw.Rewrite(doc)
	if err != nil {
		metrics.RecordProxyRequest(proxyResultNotSTAC, elapsed)
		span.SetStatus(codes.Error, "too deep")
		return nil, &entity.ProxyError{Message: MsgTooDeep, Err: err}
	}

	out, err := encode(doc)
	if err != nil {
		return nil, fmt.Errorf("encode proxied document: %w", err)
	}

	metrics.RecordLinksRewritten(rewritten)
	metrics.RecordProxyRequest(proxyResultSuccess, elapsed)
	span.SetAttributes(attribute.Int("stac.links_rewritten", rewritten))
	return out, nil
}

func encode(doc any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// failureReason describes a fetch error without leaking addresses or internals.
func failureReason(err error) string {
	var statusErr *fetcher.StatusError
	switch {
	case errors.As(err, &statusErr):
		return fmt.Sprintf("upstream returned HTTP %d", statusErr.StatusCode)
	case errors.Is(err, fetcher.ErrTimeout):
		return "upstream timed out"
	case errors.Is(err, fetcher.ErrBodyTooLarge):
		return "response exceeds the size limit"
	case errors.Is(err, fetcher.ErrTooManyRedirects):
		return "too many redirects"
	case errors.Is(err, fetcher.ErrPrivateIP), errors.Is(err, fetcher.ErrInvalidURL):
		return "URL is not allowed"
	}
	return "upstream unreachable"
}
