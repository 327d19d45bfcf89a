// Package fetcher performs bounded outbound GET requests for JSON documents.
package fetcher

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"stac-index/internal/observability/tracing"
)

// Response is a fetched document.
type Response struct {
	// URL is the final URL after redirects.
	URL  *url.URL
	Body []byte
}

// JSONFetcher fetches documents with the limits of its Config.
// It is safe for concurrent use.
type JSONFetcher struct {
	client *http.Client
	config Config
}

// New creates a JSONFetcher. Each redirect target is validated like the
// initial URL, and connections to blocked addresses are refused at dial time.
func New(config Config) *JSONFetcher {
	if config.UserAgent == "" {
		config.UserAgent = defaultUserAgent
	}
	f := &JSONFetcher{config: config}
	f.client = &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			DialContext:         newDialer(config.DenyPrivateIPs).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12, // Enforce TLS 1.2+
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > f.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", ErrTooManyRedirects, len(via))
			}
			if err := validateURL(req.Context(), req.URL.String(), f.config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target validation failed: %w", err)
			}
			return nil
		},
	}
	return f
}

// Config returns the limits of f.
func (f *JSONFetcher) Config() Config {
	return f.config
}

// Fetch GETs rawURL and returns the body. It fails with ErrTimeout when the
// request (including the body read) exceeds Timeout, with ErrBodyTooLarge when
// the body exceeds MaxBodySize, and with *StatusError on a non-2xx response.
func (f *JSONFetcher) Fetch(ctx context.Context, rawURL string) (*Response, error) {
	ctx, span := tracing.Start(ctx, "fetcher.Fetch", attribute.String("url.full", rawURL))
	defer span.End()

	resp, err := f.fetch(ctx, rawURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("http.response_size", len(resp.Body)))
	return resp, nil
}

func (f *JSONFetcher) fetch(ctx context.Context, rawURL string) (*Response, error) {
	// Timeout covers the DNS lookup of the address check too
	reqCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	if err := validateURL(reqCtx, rawURL, f.config.DenyPrivateIPs); err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: request exceeded %v", ErrTimeout, f.config.Timeout)
		}
		return nil, err
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInvalidURL, err)
	}
	req.Header.Set("Accept", "application/json, application/geo+json;q=0.9, */*;q=0.1")
	req.Header.Set("User-Agent", f.config.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: request exceeded %v", ErrTimeout, f.config.Timeout)
		}
		// Check if error is due to redirect validation
		var urlErr *url.Error
		if errors.As(err, &urlErr) && (errors.Is(urlErr.Err, ErrTooManyRedirects) ||
			errors.Is(urlErr.Err, ErrPrivateIP) || errors.Is(urlErr.Err, ErrInvalidURL)) {
			return nil, urlErr.Err
		}
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	// Read one byte past the limit to tell "exactly at the limit" from "over it"
	limitedReader := io.LimitReader(resp.Body, f.config.MaxBodySize+1)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: request exceeded %v", ErrTimeout, f.config.Timeout)
		}
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > f.config.MaxBodySize {
		return nil, fmt.Errorf("%w: response exceeds limit of %d bytes", ErrBodyTooLarge, f.config.MaxBodySize)
	}

	final := req.URL
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL
	}
	return &Response{URL: final, Body: body}, nil
}
