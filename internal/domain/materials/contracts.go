package materials

import (
	"context"
	"time"
)

// MaterialSearchRepository defines the read operations against the search
// analytics index and resource lookups in the workspace index.
type MaterialSearchRepository interface {
	// ResourceInfo looks up a clicked resource and determines which of the
	// given portal IDs appear in its collection paths.
	ResourceInfo(ctx context.Context, resourceID string, portalIDs []string) (*Material, error)

	// SearchEvents returns the raw search events newer than the given
	// timestamp, newest first, up to limit entries.
	SearchEvents(ctx context.Context, since time.Time, limit int) ([]SearchEvent, error)
}

// AnalyticsService aggregates clicked search results per portal.
type AnalyticsService interface {
	// Refresh pulls search events since the last refresh (initially the
	// last 30 days) and merges them into the material state.
	Refresh(ctx context.Context) error

	// MaterialsByPortal returns the clicked materials of one portal, or of
	// all portals keyed by portal ID when portalID is empty. Materials that
	// belong to no portal are keyed under PortalNone.
	MaterialsByPortal(portalID string) map[string][]*Material

	// SortedMaterials returns all known materials sorted by last click,
	// newest first.
	SortedMaterials() []*Material
}
