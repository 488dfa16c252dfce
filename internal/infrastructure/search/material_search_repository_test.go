//go:build unit
// +build unit

package search

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openeduhub/metaqs/internal/pkg/testutil"
)

const clickedResourceSource = `{
	"nodeRef": {"id": "res-1"},
	"type": "ccm:io",
	"properties": {
		"cm:name": "optik.pdf",
		"cclom:title": "Optik",
		"ccm:replicationsource": "serlo_spider",
		"cm:creator": "admin"
	},
	"collections": [
		{"path": ["root", "portal-1", "sub-collection"]},
		{"path": ["root", "portal-2"]}
	]
}`

func TestMaterialSearchRepository_ResourceInfo(t *testing.T) {
	searcher := &fakeSearcher{envelopes: map[string]*Envelope{
		"hits": hitEnvelope(t, 1, clickedResourceSource),
	}}

	repo, err := NewMaterialSearchRepository(searcher, "workspace", "oeh-search-analytics", testutil.SetupTestLogger(t))
	require.NoError(t, err)

	material, err := repo.ResourceInfo(context.Background(), "res-1", []string{"portal-1", "portal-3"})
	require.NoError(t, err)

	assert.Equal(t, "res-1", material.ID)
	assert.Equal(t, "Optik", material.Title)
	assert.Equal(t, "serlo_spider", material.Crawler)
	assert.Equal(t, "admin", material.Creator)
	assert.Equal(t, int64(1), material.Clicks)
	assert.Equal(t, []string{"portal-1"}, material.PortalIDs, "Only the first collection path is intersected with the known portals")
}

func TestMaterialSearchRepository_ResourceInfo_NotFound(t *testing.T) {
	searcher := &fakeSearcher{envelopes: map[string]*Envelope{}}

	repo, err := NewMaterialSearchRepository(searcher, "workspace", "oeh-search-analytics", testutil.SetupTestLogger(t))
	require.NoError(t, err)

	_, err = repo.ResourceInfo(context.Background(), "missing", nil)
	assert.Error(t, err)
}

func TestMaterialSearchRepository_SearchEvents(t *testing.T) {
	eventSource := `{
		"action": "result_click",
		"searchString": "optik",
		"clickedResult": {"id": "res-1"},
		"timestamp": "2023-05-01T12:00:00Z"
	}`

	searcher := &fakeSearcher{envelopes: map[string]*Envelope{
		"hits": {Hits: HitsEnvelope{
			Total: TotalHits{Value: 2},
			Hits: []Hit{
				{ID: "evt-1", Source: json.RawMessage(eventSource)},
				{ID: "evt-2", Source: json.RawMessage(`{"timestamp": "not a timestamp"}`)},
			},
		}},
	}}

	repo, err := NewMaterialSearchRepository(searcher, "workspace", "oeh-search-analytics", testutil.SetupTestLogger(t))
	require.NoError(t, err)

	events, err := repo.SearchEvents(context.Background(), time.Now().Add(-time.Hour), 100)
	require.NoError(t, err)

	require.Len(t, events, 1, "Malformed events are skipped")
	assert.Equal(t, "result_click", events[0].Action)
	assert.Equal(t, "optik", events[0].SearchString)
	assert.Equal(t, "res-1", events[0].ClickedResultID)
	assert.True(t, events[0].IsResultClick())
}
