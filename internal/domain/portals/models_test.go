//go:build unit
// +build unit

package portals

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCollectionValidation tests the Validator method for Collection
func TestCollectionValidation(t *testing.T) {
	validCollection := Collection{
		ID:    "abc-123",
		Name:  "Physik",
		Title: "Physik",
		Type:  TypeCollection,
	}

	invalidCollection := Collection{
		ID:    "", // Invalid empty ID
		Title: "Physik",
	}

	err := validCollection.Validate()
	assert.Nil(t, err, "Expected no validation errors for valid Collection")

	err = invalidCollection.Validate()
	assert.NotNil(t, err, "Expected validation errors for invalid Collection")
}

// TestCollectionPortalURL tests that the frontend URL is derived from the node type
func TestCollectionPortalURL(t *testing.T) {
	collection := Collection{ID: "abc-123", Type: TypeCollection}
	assert.Equal(t, "https://redaktion.openeduhub.net/edu-sharing/components/collections?id=abc-123", collection.PortalURL())

	resourceNode := Collection{ID: "abc-123", Type: TypeResource}
	assert.Equal(t, "https://redaktion.openeduhub.net/edu-sharing/components/render/abc-123", resourceNode.PortalURL())

	untyped := Collection{ID: "abc-123"}
	assert.Equal(t, collection.PortalURL(), untyped.PortalURL())
}

// TestSnapshotPortalLookup tests the portal lookup on a snapshot
func TestSnapshotPortalLookup(t *testing.T) {
	snapshot := Snapshot{
		ID: "snap-1",
		Portals: []*Collection{
			{ID: "portal-1", Title: "Physik"},
			{ID: "portal-2", Title: "Chemie"},
		},
	}

	portal := snapshot.Portal("portal-2")
	assert.NotNil(t, portal)
	assert.Equal(t, "Chemie", portal.Title)

	assert.Nil(t, snapshot.Portal("portal-3"))
}
