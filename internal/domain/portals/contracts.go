package portals

import (
	"context"
)

// Missing-attribute report modes
const (
	ModeCollections = "collections"
	ModeMaterials   = "materials"
)

// CollectionSearchRepository defines the read operations against the
// workspace index of the search backend.
type CollectionSearchRepository interface {
	// GetCollection retrieves a single collection node by its ID.
	// It returns ErrNotFound when no such node exists.
	GetCollection(ctx context.Context, id string) (*Collection, error)

	// GetChildren retrieves the collection nodes below the given collection,
	// including each child's total resource count.
	GetChildren(ctx context.Context, collectionID string) ([]*Collection, error)

	// CountResources returns the number of published resources inside a
	// collection, counted over the collection path.
	CountResources(ctx context.Context, collectionID string) (int64, error)

	// CountsByAttribute returns the terms aggregation of an attribute over
	// the resources of a collection, plus the total resource count.
	CountsByAttribute(ctx context.Context, collectionID, attribute string) ([]Bucket, int64, error)

	// CollectionsMissingAttribute lists the collection nodes below the given
	// collection that lack the attribute entirely. The returned count is the
	// total number of matches, which may exceed the returned page.
	CollectionsMissingAttribute(ctx context.Context, collectionID, attribute string) ([]Resource, int64, error)

	// MaterialsMissingAttribute lists the resources inside the given
	// collection that lack the attribute entirely. The returned count is the
	// total number of matches, which may exceed the returned page.
	MaterialsMissingAttribute(ctx context.Context, collectionID, attribute string) ([]Resource, int64, error)

	// MaterialsWithoutLicense lists the resources inside the given collection
	// whose license key is one of the not-a-license values.
	MaterialsWithoutLicense(ctx context.Context, collectionID string) ([]Resource, error)

	// AggregateCollectionUsage returns how many resources reference each
	// collection, as one bucket per collection ID.
	AggregateCollectionUsage(ctx context.Context) ([]Bucket, error)
}

// EditorialClient fetches the editorial portal roots from the edu-sharing
// REST API.
type EditorialClient interface {
	// GetEditorialCollections returns the portal root collections without
	// resource counts.
	GetEditorialCollections(ctx context.Context) ([]*Collection, error)
}

// SnapshotStore persists portal cache snapshots.
type SnapshotStore interface {
	// Save persists a snapshot, replacing any previous one.
	Save(ctx context.Context, snapshot *Snapshot) error

	// Load returns the most recent snapshot, or ErrNotFound when the store
	// is empty.
	Load(ctx context.Context) (*Snapshot, error)

	// Clear removes all persisted snapshots.
	Clear(ctx context.Context) error
}

// PortalCatalogService serves the portal listing and lookups.
type PortalCatalogService interface {
	// List returns all editorial portals. A warm cache is preferred; a cold
	// cache falls through to the live backends.
	List(ctx context.Context) ([]*Collection, error)

	// GetByID returns a single portal or collection node by ID.
	GetByID(ctx context.Context, id string) (*Collection, error)
}

// PortalTreeService serves the children of a portal.
type PortalTreeService interface {
	// Children returns the child collections of a portal, filtered and
	// sorted according to the query.
	Children(ctx context.Context, id string, query *CollectionQuery) ([]*Collection, error)
}

// PortalQualityService reports on metadata quality inside a portal.
type PortalQualityService interface {
	// MissingAttribute reports the resources of a portal that lack the given
	// attribute. Mode selects collection nodes or materials.
	MissingAttribute(ctx context.Context, id, attribute, mode string) (*MissingAttributeReport, error)

	// LicenseSummary aggregates the license attribute over the resources of
	// a portal and lists the resources without a usable license.
	LicenseSummary(ctx context.Context, id string) (*LicenseSummary, error)
}

// CacheService manages the portal snapshot cache.
type CacheService interface {
	// Warmup loads the persisted snapshot into memory, building and
	// persisting a fresh one when the store is empty.
	Warmup(ctx context.Context) error

	// Refresh rebuilds the snapshot from the live backends and persists it.
	Refresh(ctx context.Context) (*Snapshot, error)

	// Clear drops the persisted snapshot and the in-memory copy.
	Clear(ctx context.Context) error

	// Status describes the currently loaded snapshot.
	Status(ctx context.Context) (*CacheStatus, error)
}
