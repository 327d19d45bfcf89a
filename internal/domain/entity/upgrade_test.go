package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCatalog(access Access) *Catalog {
	info := "Ask the operator for an account."
	c := &Catalog{
		ID:      7,
		Slug:    "my-cat",
		URL:     "https://x.test/cat",
		Title:   "My Cat",
		Summary: "A catalog",
		Access:  access,
		IsAPI:   true,
		Email:   "owner@example.org",
		Created: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Updated: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	if access != AccessPublic {
		c.AccessInfo = &info
	}
	return c
}

func TestCatalog_Upgrade(t *testing.T) {
	in := sampleCatalog(AccessProtected)
	got := in.Upgrade()

	assert.Empty(t, got.Email)
	assert.True(t, got.IsPrivate)
	assert.True(t, got.IsAPI)
	assert.Equal(t, "owner@example.org", in.Email, "receiver must not be modified")

	public := sampleCatalog(AccessPublic).Upgrade()
	assert.False(t, public.IsPrivate)
}

func TestCatalog_UpgradeIdempotent(t *testing.T) {
	for _, access := range []Access{AccessPublic, AccessProtected, AccessPrivate} {
		once := sampleCatalog(access).Upgrade()
		twice := once.Upgrade()
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Fatalf("%s: upgrade not idempotent (-once +twice):\n%s", access, diff)
		}
	}
}

func TestCatalog_UpgradeJSON(t *testing.T) {
	raw, err := json.Marshal(sampleCatalog(AccessPublic).Upgrade())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.NotContains(t, doc, "email")
	assert.NotContains(t, doc, "accessInfo")
	assert.NotContains(t, doc, "is_api")
	assert.Equal(t, true, doc["isApi"])
	assert.Equal(t, false, doc["isPrivate"])
}

func TestEcosystemAndTutorial_Upgrade(t *testing.T) {
	eco := (&Ecosystem{Title: "pystac", Email: "a@b.org", Categories: []string{"Client"}}).Upgrade()
	assert.Empty(t, eco.Email)
	assert.Equal(t, eco, eco.Upgrade())

	tut := (&Tutorial{Title: "Intro", Email: "a@b.org", Tags: []string{"intro"}}).Upgrade()
	assert.Empty(t, tut.Email)
	assert.Equal(t, tut, tut.Upgrade())

	var nilCatalog *Catalog
	assert.Nil(t, nilCatalog.Upgrade())
}

func TestUpgradeAll(t *testing.T) {
	in := []*Catalog{sampleCatalog(AccessPublic), sampleCatalog(AccessPrivate)}
	in[1].Slug = "second"

	got := UpgradeAll(in)
	require.Len(t, got, 2)
	assert.Equal(t, "my-cat", got[0].Slug)
	assert.Equal(t, "second", got[1].Slug)
	for _, c := range got {
		assert.Empty(t, c.Email)
	}

	empty := UpgradeAll[*Tutorial](nil)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
