//go:build unit
// +build unit

package materials

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestMaterialMerge tests folding a second sighting into a material
func TestMaterialMerge(t *testing.T) {
	older := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	newer := older.Add(48 * time.Hour)

	material := &Material{
		ID:            "res-1",
		Title:         "Optik Grundlagen",
		Clicks:        2,
		SearchStrings: map[string]int64{"optik": 2},
		Timestamp:     older,
	}

	material.Merge(&Material{
		ID:            "res-1",
		Name:          "optik_grundlagen.pdf",
		Clicks:        1,
		SearchStrings: map[string]int64{"optik": 1, "licht": 1},
		Timestamp:     newer,
		PortalIDs:     []string{"portal-1"},
	})

	assert.Equal(t, int64(3), material.Clicks)
	assert.Equal(t, int64(3), material.SearchStrings["optik"])
	assert.Equal(t, int64(1), material.SearchStrings["licht"])
	assert.Equal(t, newer, material.Timestamp)
	assert.Equal(t, "optik_grundlagen.pdf", material.Name, "Unset fields are filled from the other material")
	assert.Equal(t, "Optik Grundlagen", material.Title, "Set fields are kept")
	assert.Equal(t, []string{"portal-1"}, material.PortalIDs)
}

// TestMaterialMergeIgnoresForeignIDs tests that merging a different material is a no-op
func TestMaterialMergeIgnoresForeignIDs(t *testing.T) {
	material := &Material{ID: "res-1", Clicks: 2}

	material.Merge(&Material{ID: "res-2", Clicks: 5})
	material.Merge(nil)

	assert.Equal(t, int64(2), material.Clicks)
}

// TestMaterialMergeOlderTimestamp tests that the newest click timestamp wins
func TestMaterialMergeOlderTimestamp(t *testing.T) {
	newer := time.Date(2023, 5, 3, 12, 0, 0, 0, time.UTC)
	older := newer.Add(-48 * time.Hour)

	material := &Material{ID: "res-1", Timestamp: newer}
	material.Merge(&Material{ID: "res-1", Timestamp: older})

	assert.Equal(t, newer, material.Timestamp)
}

// TestMaterialClone tests that a clone shares no map or slice state
func TestMaterialClone(t *testing.T) {
	material := &Material{
		ID:            "res-1",
		Clicks:        2,
		SearchStrings: map[string]int64{"optik": 2},
		PortalIDs:     []string{"portal-1"},
	}

	clone := material.Clone()
	clone.Clicks = 99
	clone.SearchStrings["licht"] = 1
	clone.PortalIDs[0] = "portal-2"

	assert.Equal(t, int64(2), material.Clicks)
	assert.NotContains(t, material.SearchStrings, "licht")
	assert.Equal(t, []string{"portal-1"}, material.PortalIDs)

	empty := (&Material{ID: "res-2"}).Clone()
	assert.NotNil(t, empty.SearchStrings)
	assert.Empty(t, empty.PortalIDs)
}

// TestMaterialThumbnailURL tests the preview URL template
func TestMaterialThumbnailURL(t *testing.T) {
	material := &Material{ID: "res-1"}
	assert.Equal(t,
		"https://redaktion.openeduhub.net/edu-sharing/preview?maxWidth=200&maxHeight=200&crop=true&storeProtocol=workspace&storeId=SpacesStore&nodeId=res-1",
		material.ThumbnailURL())
}

// TestSearchEventIsResultClick tests the result click predicate
func TestSearchEventIsResultClick(t *testing.T) {
	click := SearchEvent{Action: "result_click", SearchString: "optik", ClickedResultID: "res-1"}
	assert.True(t, click.IsResultClick())

	plainSearch := SearchEvent{Action: "search", SearchString: "optik"}
	assert.False(t, plainSearch.IsResultClick())

	clickWithoutTarget := SearchEvent{Action: "result_click", SearchString: "optik"}
	assert.False(t, clickWithoutTarget.IsResultClick())
}
