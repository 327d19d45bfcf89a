package stac

import (
	"errors"
	"net/url"
	"strings"
)

// MaxDepth is the deepest nesting of objects and arrays the rewriter walks.
const MaxDepth = 64

// ErrTooDeep is returned by Rewrite for documents nested deeper than MaxDepth.
var ErrTooDeep = errors.New("document exceeds maximum nesting depth")

// proxiedRels are the link relations a browser follows to navigate a catalog.
var proxiedRels = map[string]struct{}{
	"child":      {},
	"collection": {},
	"data":       {},
	"item":       {},
	"items":      {},
	"parent":     {},
	"root":       {},
	"self":       {},
}

// Rewriter turns navigation links of a decoded JSON document into proxy URLs.
type Rewriter struct {
	// PublicURL is this service's public base URL, without a trailing slash.
	PublicURL string
	// Base resolves relative hrefs. Relative hrefs are left alone when nil.
	Base *url.URL
}

// Rewrite walks doc (as produced by encoding/json into any) and rewrites, in
// every array stored under a "links" key, the href of each link whose rel is
// one of child, collection, data, item, items, parent, root or self.
// It mutates doc and returns the number of rewritten links.
func (rw Rewriter) Rewrite(doc any) (int, error) {
	return rw.walk(doc, 0)
}

func (rw Rewriter) walk(v any, depth int) (int, error) {
	if depth > MaxDepth {
		return 0, ErrTooDeep
	}

	total := 0
	switch node := v.(type) {
	case map[string]any:
		for key, val := range node {
			if key == "links" {
				if links, ok := val.([]any); ok {
					total += rw.rewriteLinks(links)
					continue
				}
			}
			n, err := rw.walk(val, depth+1)
			if err != nil {
				return 0, err
			}
			total += n
		}
	case []any:
		for _, val := range node {
			n, err := rw.walk(val, depth+1)
			if err != nil {
				return 0, err
			}
			total += n
		}
	}
	return total, nil
}

func (rw Rewriter) rewriteLinks(links []any) int {
	n := 0
	for _, l := range links {
		link, ok := l.(map[string]any)
		if !ok {
			continue
		}
		href, ok := link["href"].(string)
		if !ok {
			continue
		}
		rel, _ := link["rel"].(string)
		if _, ok := proxiedRels[rel]; !ok {
			continue
		}
		target, ok := rw.target(href)
		if !ok {
			continue
		}
		link["href"] = ProxyURL(rw.PublicURL, target)
		n++
	}
	return n
}

// target returns the absolute http(s) URL an href points to. Absolute hrefs
// are tunneled exactly as written; relative ones are resolved against Base.
func (rw Rewriter) target(href string) (string, bool) {
	if isAbsoluteHTTP(href) {
		return href, true
	}
	ref, err := url.Parse(href)
	if err != nil || ref.IsAbs() || rw.Base == nil {
		return "", false
	}
	resolved := rw.Base.ResolveReference(ref).String()
	if !isAbsoluteHTTP(resolved) {
		return "", false
	}
	return resolved, true
}

func isAbsoluteHTTP(href string) bool {
	lower := strings.ToLower(href)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// ProxyURL returns publicURL + "/proxy?" + the component-encoded target.
func ProxyURL(publicURL, target string) string {
	return strings.TrimRight(publicURL, "/") + "/proxy?" + encodeComponent(target)
}

// encodeComponent percent-encodes s for use as a whole query string. Spaces
// become %20 so the proxy reads back the same key.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
