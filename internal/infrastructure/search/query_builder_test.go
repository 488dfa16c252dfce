//go:build unit
// +build unit

package search

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encode round-trips a query body through JSON so assertions see exactly
// what the search backend would receive.
func encode(t *testing.T, query map[string]interface{}) string {
	t.Helper()
	payload, err := json.Marshal(query)
	require.NoError(t, err)
	return string(payload)
}

func TestBaseCondition(t *testing.T) {
	payload := encode(t, body{"query": baseCondition("portal-1", nil)})

	assert.Contains(t, payload, `"type":["ccm:io"]`)
	assert.Contains(t, payload, `"permissions.read":["GROUP_EVERYONE"]`)
	assert.Contains(t, payload, `"properties.cm:edu_metadataset":["mds_oeh"]`)
	assert.Contains(t, payload, `"nodeRef.storeRef.protocol":["workspace"]`)
	assert.Contains(t, payload, `"collections.path":"portal-1"`)
	assert.Contains(t, payload, `"collections.nodeRef.id":"portal-1"`)
	assert.Contains(t, payload, `"minimum_should_match":1`)
}

func TestBaseConditionWithoutCollection(t *testing.T) {
	payload := encode(t, body{"query": baseCondition("", nil)})

	assert.Contains(t, payload, `"type":["ccm:io"]`)
	assert.NotContains(t, payload, "collections.path")
	assert.NotContains(t, payload, "minimum_should_match")
}

func TestCollectionByIDBody(t *testing.T) {
	payload := encode(t, CollectionByIDBody("abc-123"))

	assert.Contains(t, payload, `"type":["ccm:map"]`)
	assert.Contains(t, payload, `"nodeRef.id":"abc-123"`)
	assert.Contains(t, payload, `"track_total_hits":true`)
}

func TestChildrenBody(t *testing.T) {
	payload := encode(t, ChildrenBody("abc-123"))

	assert.Contains(t, payload, `"type":["ccm:map"]`)
	assert.Contains(t, payload, `"path":"abc-123"`)
}

func TestCountsByAttributeBody(t *testing.T) {
	payload := encode(t, CountsByAttributeBody("portal-1", LicenseAttribute))

	assert.Contains(t, payload, `"my-agg"`)
	assert.Contains(t, payload, `"field":"properties.ccm:commonlicense_key.keyword"`)
	assert.Contains(t, payload, `"size":0`)
}

func TestMissingAttributeBodies(t *testing.T) {
	collectionsPayload := encode(t, CollectionsMissingAttributeBody("portal-1", "properties.cm:description", DefaultSize))
	assert.Contains(t, collectionsPayload, `"type":["ccm:map"]`)
	assert.Contains(t, collectionsPayload, `"must_not"`)
	assert.Contains(t, collectionsPayload, `"wildcard":{"properties.cm:description":"*"}`)

	materialsPayload := encode(t, MaterialsMissingAttributeBody("portal-1", "properties.cm:description", DefaultSize))
	assert.Contains(t, materialsPayload, `"type":["ccm:io"]`)
	assert.Contains(t, materialsPayload, `"wildcard":{"properties.cm:description":"*"}`)
}

func TestMaterialsWithoutLicenseBody(t *testing.T) {
	payload := encode(t, MaterialsWithoutLicenseBody("portal-1", DefaultSize))

	assert.Contains(t, payload, `"properties.ccm:commonlicense_key.keyword":["NONE","","UNTERRICHTS_UND_LEHRMEDIEN"]`)
	assert.Contains(t, payload, `"collections.path":"portal-1"`)
}

func TestUsageAggregationBody(t *testing.T) {
	payload := encode(t, UsageAggregationBody(UsageAttribute))

	assert.Contains(t, payload, `"field":"collections.nodeRef.id.keyword"`)
	assert.Contains(t, payload, `"size":0`)
}

func TestSearchEventsBody(t *testing.T) {
	since := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	payload := encode(t, SearchEventsBody(since, 10000))

	assert.Contains(t, payload, `"gt":"2023-05-01T12:00:00Z"`)
	assert.Contains(t, payload, `"lt":"now"`)
	assert.Contains(t, payload, `"order":"desc"`)
	assert.Contains(t, payload, `"size":10000`)
}
