package materials

import (
	"fmt"
	"time"
)

// ES preview URL template for material thumbnails
const thumbnailURLTemplate = "https://redaktion.openeduhub.net/edu-sharing/preview?maxWidth=200&maxHeight=200&crop=true&storeProtocol=workspace&storeId=SpacesStore&nodeId=%s"

// PortalNone groups materials whose collection paths intersect no known
// portal.
const PortalNone = "none"

// Material is a resource users clicked in search, with the search terms
// that led to it.
type Material struct {
	ID            string
	Name          string
	Title         string
	ContentURL    string
	Crawler       string
	Creator       string
	Clicks        int64
	SearchStrings map[string]int64
	Timestamp     time.Time
	PortalIDs     []string
}

// ThumbnailURL returns the preview image URL of the material
func (m *Material) ThumbnailURL() string {
	return fmt.Sprintf(thumbnailURLTemplate, m.ID)
}

// Merge folds another sighting of the same material into this one: clicks
// add up, search-string counters merge and the timestamp keeps the newest
// value. Descriptive fields are filled from the other material when unset.
func (m *Material) Merge(other *Material) {
	if other == nil || other.ID != m.ID {
		return
	}

	m.Clicks += other.Clicks

	if m.SearchStrings == nil {
		m.SearchStrings = make(map[string]int64)
	}
	for term, count := range other.SearchStrings {
		m.SearchStrings[term] += count
	}

	if other.Timestamp.After(m.Timestamp) {
		m.Timestamp = other.Timestamp
	}

	if m.Name == "" {
		m.Name = other.Name
	}
	if m.Title == "" {
		m.Title = other.Title
	}
	if m.ContentURL == "" {
		m.ContentURL = other.ContentURL
	}
	if m.Crawler == "" {
		m.Crawler = other.Crawler
	}
	if m.Creator == "" {
		m.Creator = other.Creator
	}
	if len(m.PortalIDs) == 0 {
		m.PortalIDs = other.PortalIDs
	}
}

// Clone returns a deep copy of the material. The copy shares no map or
// slice state with the receiver.
func (m *Material) Clone() *Material {
	clone := *m

	clone.SearchStrings = make(map[string]int64, len(m.SearchStrings))
	for term, count := range m.SearchStrings {
		clone.SearchStrings[term] = count
	}

	clone.PortalIDs = append([]string(nil), m.PortalIDs...)

	return &clone
}

// SearchEvent is one raw hit from the search analytics index
type SearchEvent struct {
	Action          string
	SearchString    string
	ClickedResultID string
	Timestamp       time.Time
}

// IsResultClick reports whether the event is a usable result click: a
// non-blank search string and a clicked resource.
func (e *SearchEvent) IsResultClick() bool {
	return e.Action == "result_click" && e.ClickedResultID != ""
}
