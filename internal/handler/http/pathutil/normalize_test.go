package pathutil

import (
	"testing"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		// Catalog detail routes (should be normalized)
		{
			name:     "catalog slug",
			path:     "/catalogs/earth-search",
			expected: "/catalogs/:slug",
		},
		{
			name:     "catalog slug with trailing slash",
			path:     "/catalogs/earth-search/",
			expected: "/catalogs/:slug",
		},
		{
			name:     "catalog slug with query params",
			path:     "/catalogs/cbers?x=1",
			expected: "/catalogs/:slug",
		},

		// Static routes (unchanged)
		{name: "root", path: "/", expected: "/"},
		{name: "catalogs list", path: "/catalogs", expected: "/catalogs"},
		{name: "add", path: "/add", expected: "/add"},
		{name: "ecosystem", path: "/ecosystem", expected: "/ecosystem"},
		{name: "tutorials", path: "/tutorials", expected: "/tutorials"},
		{name: "newest", path: "/newest", expected: "/newest"},
		{name: "languages", path: "/languages", expected: "/languages"},
		{name: "spoken languages", path: "/spoken_languages", expected: "/spoken_languages"},
		{name: "tags", path: "/tags", expected: "/tags"},
		{name: "sitemap", path: "/sitemap.xml", expected: "/sitemap.xml"},
		{name: "health", path: "/health", expected: "/health"},
		{name: "metrics", path: "/metrics", expected: "/metrics"},

		// Proxy carries its target in the query
		{
			name:     "proxy",
			path:     "/proxy?https%3A%2F%2Fexample.com%2Fcatalog.json",
			expected: "/proxy",
		},

		// Unknown routes collapse
		{name: "unknown", path: "/admin", expected: OtherPath},
		{name: "nested under catalog", path: "/catalogs/a/items", expected: OtherPath},
		{name: "empty", path: "", expected: OtherPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizePath(tt.path)
			if result != tt.expected {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, result, tt.expected)
			}
		})
	}
}

func TestNormalizePath_Cardinality(t *testing.T) {
	// Test that different slugs produce the same normalized path
	paths := []string{
		"/catalogs/earth-search",
		"/catalogs/planetary-computer",
		"/catalogs/cbers",
		"/catalogs/usgs-landsat",
	}

	uniqueResults := make(map[string]bool)
	for _, path := range paths {
		uniqueResults[NormalizePath(path)] = true
	}

	if len(uniqueResults) != 1 {
		t.Errorf("Expected cardinality of 1, got %d unique paths: %v", len(uniqueResults), uniqueResults)
	}
}

func TestNormalizePath_TrailingSlash(t *testing.T) {
	// Test that trailing slashes are handled consistently
	tests := []struct {
		path1    string
		path2    string
		expected string
	}{
		{"/catalogs/abc", "/catalogs/abc/", "/catalogs/:slug"},
		{"/health", "/health/", "/health"},
		{"/catalogs", "/catalogs/", "/catalogs"},
	}

	for _, tt := range tests {
		result1 := NormalizePath(tt.path1)
		result2 := NormalizePath(tt.path2)

		if result1 != tt.expected {
			t.Errorf("NormalizePath(%q) = %q, want %q", tt.path1, result1, tt.expected)
		}
		if result1 != result2 {
			t.Errorf("Trailing slash inconsistency: %q vs %q", result1, result2)
		}
	}
}

func TestGetExpectedCardinality(t *testing.T) {
	seen := make(map[string]struct{})
	for path := range knownPaths {
		seen[NormalizePath(path)] = struct{}{}
	}
	seen[NormalizePath("/catalogs/x")] = struct{}{}
	seen[NormalizePath("/nope")] = struct{}{}

	if got := GetExpectedCardinality(); got != len(seen) {
		t.Errorf("GetExpectedCardinality() = %d, want %d", got, len(seen))
	}
}
