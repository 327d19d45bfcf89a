package stac

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPublicURL = "http://localhost:9999"

func link(rel, href string) map[string]any {
	return map[string]any{"rel": rel, "href": href}
}

func TestProxyURL(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"https://ext.test/c", "http://localhost:9999/proxy?https%3A%2F%2Fext.test%2Fc"},
		{"https://ext.test/a b.json", "http://localhost:9999/proxy?https%3A%2F%2Fext.test%2Fa%20b.json"},
		{"https://ext.test/search?limit=10&bbox=1,2", "http://localhost:9999/proxy?https%3A%2F%2Fext.test%2Fsearch%3Flimit%3D10%26bbox%3D1%2C2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ProxyURL(testPublicURL, tt.target))
		assert.Equal(t, tt.want, ProxyURL(testPublicURL+"/", tt.target), "trailing slash on the public URL")
	}
}

func TestRewrite_EligibleRels(t *testing.T) {
	rels := []string{"child", "collection", "data", "item", "items", "parent", "root", "self"}
	for _, rel := range rels {
		doc := map[string]any{"links": []any{link(rel, "https://ext.test/x")}}
		n, err := Rewriter{PublicURL: testPublicURL}.Rewrite(doc)
		require.NoError(t, err)
		assert.Equal(t, 1, n, rel)
		got := doc["links"].([]any)[0].(map[string]any)["href"]
		assert.Equal(t, "http://localhost:9999/proxy?https%3A%2F%2Fext.test%2Fx", got, rel)
	}
}

func TestRewrite_LeavesOtherLinks(t *testing.T) {
	doc := map[string]any{
		"links": []any{
			link("license", "https://ext.test/license"),
			link("alternate", "https://ext.test/index.html"),
			map[string]any{"href": "https://ext.test/no-rel"},
			map[string]any{"rel": "child", "href": 42},
			link("child", "s3://bucket/catalog.json"),
			"not a link",
		},
	}
	want := map[string]any{
		"links": []any{
			link("license", "https://ext.test/license"),
			link("alternate", "https://ext.test/index.html"),
			map[string]any{"href": "https://ext.test/no-rel"},
			map[string]any{"rel": "child", "href": 42},
			link("child", "s3://bucket/catalog.json"),
			"not a link",
		},
	}

	n, err := Rewriter{PublicURL: testPublicURL}.Rewrite(doc)
	require.NoError(t, err)
	assert.Zero(t, n)
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("document changed (-want +got):\n%s", diff)
	}
}

func TestRewrite_RelativeHrefs(t *testing.T) {
	base, err := url.Parse("https://ext.test/stac/catalog.json")
	require.NoError(t, err)

	doc := map[string]any{
		"links": []any{
			link("child", "./sentinel/collection.json"),
			link("root", "../catalog.json"),
			link("item", "//cdn.ext.test/item.json"),
			link("license", "LICENSE"),
		},
	}

	n, err := Rewriter{PublicURL: testPublicURL, Base: base}.Rewrite(doc)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	links := doc["links"].([]any)
	assert.Equal(t, ProxyURL(testPublicURL, "https://ext.test/stac/sentinel/collection.json"), links[0].(map[string]any)["href"])
	assert.Equal(t, ProxyURL(testPublicURL, "https://ext.test/catalog.json"), links[1].(map[string]any)["href"])
	assert.Equal(t, ProxyURL(testPublicURL, "https://cdn.ext.test/item.json"), links[2].(map[string]any)["href"])
	assert.Equal(t, "LICENSE", links[3].(map[string]any)["href"])
}

func TestRewrite_RelativeWithoutBase(t *testing.T) {
	doc := map[string]any{"links": []any{link("child", "./sub/catalog.json")}}

	n, err := Rewriter{PublicURL: testPublicURL}.Rewrite(doc)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, "./sub/catalog.json", doc["links"].([]any)[0].(map[string]any)["href"])
}

func TestRewrite_Nested(t *testing.T) {
	// ItemCollection: features carry their own links arrays
	doc := map[string]any{
		"type": "FeatureCollection",
		"features": []any{
			map[string]any{
				"id":    "item-1",
				"links": []any{link("self", "https://ext.test/items/1"), link("parent", "https://ext.test/c")},
				"properties": map[string]any{
					"links": map[string]any{
						"links": []any{link("data", "https://ext.test/deep")},
					},
				},
			},
		},
		"links": []any{link("next", "https://ext.test/items?page=2")},
	}

	n, err := Rewriter{PublicURL: testPublicURL}.Rewrite(doc)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	feature := doc["features"].([]any)[0].(map[string]any)
	assert.Equal(t, ProxyURL(testPublicURL, "https://ext.test/items/1"), feature["links"].([]any)[0].(map[string]any)["href"])
	deep := feature["properties"].(map[string]any)["links"].(map[string]any)["links"].([]any)[0].(map[string]any)
	assert.Equal(t, ProxyURL(testPublicURL, "https://ext.test/deep"), deep["href"])
	assert.Equal(t, "https://ext.test/items?page=2", doc["links"].([]any)[0].(map[string]any)["href"])
}

func nestedDoc(depth int) map[string]any {
	doc := map[string]any{}
	cur := doc
	for i := 0; i < depth; i++ {
		next := map[string]any{}
		cur["child"] = next
		cur = next
	}
	cur["links"] = []any{link("self", "https://ext.test/leaf")}
	return doc
}

func TestRewrite_DepthLimit(t *testing.T) {
	n, err := Rewriter{PublicURL: testPublicURL}.Rewrite(nestedDoc(MaxDepth))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = Rewriter{PublicURL: testPublicURL}.Rewrite(nestedDoc(MaxDepth + 1))
	assert.ErrorIs(t, err, ErrTooDeep)
}

func TestRewrite_SecondPassTunnelsAgain(t *testing.T) {
	// rewritten hrefs are absolute URLs of this service
	doc := map[string]any{"links": []any{link("self", "https://ext.test/x")}}
	rw := Rewriter{PublicURL: testPublicURL}

	_, err := rw.Rewrite(doc)
	require.NoError(t, err)
	first := doc["links"].([]any)[0].(map[string]any)["href"].(string)

	_, err = rw.Rewrite(doc)
	require.NoError(t, err)
	second := doc["links"].([]any)[0].(map[string]any)["href"].(string)

	assert.Equal(t, ProxyURL(testPublicURL, first), second)
}
