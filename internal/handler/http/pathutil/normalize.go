// Package pathutil maps request paths to low-cardinality metric labels.
package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns defines the list of patterns for dynamic routes.
// Patterns are evaluated in order from most specific to least specific.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/catalogs/[^/]+$`), Template: "/catalogs/:slug"},
}

// knownPaths are the static routes. Anything else collapses into "other" so
// that scanners probing random paths cannot grow the label set.
var knownPaths = map[string]struct{}{
	"/":                 {},
	"/add":              {},
	"/catalogs":         {},
	"/ecosystem":        {},
	"/tutorials":        {},
	"/newest":           {},
	"/languages":        {},
	"/spoken_languages": {},
	"/tags":             {},
	"/proxy":            {},
	"/sitemap.xml":      {},
	"/health":           {},
	"/ready":            {},
	"/live":             {},
	"/metrics":          {},
}

// OtherPath is the label for paths that match no route.
const OtherPath = "other"

// NormalizePath normalizes dynamic URL paths to prevent metrics label cardinality explosion.
//
// Examples:
//
//	NormalizePath("/catalogs/earth-search")    // "/catalogs/:slug"
//	NormalizePath("/proxy?https://x.org/a")    // "/proxy"
//	NormalizePath("/catalogs/")                // "/catalogs"
//	NormalizePath("/wp-login.php")             // "other"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	if _, ok := knownPaths[path]; ok {
		return path
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	return OtherPath
}

// GetExpectedCardinality returns the number of distinct labels NormalizePath can produce.
func GetExpectedCardinality() int {
	return len(knownPaths) + len(pathPatterns) + 1
}
