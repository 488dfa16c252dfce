//go:build unit
// +build unit

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openeduhub/metaqs/internal/domain/portals"
)

func TestCollectionModel_RoundTrip(t *testing.T) {
	collection := &portals.Collection{
		ID:                  "child-1",
		Name:                "optik",
		Title:               "Optik",
		Type:                portals.TypeCollection,
		Path:                []string{"root", "portal-1"},
		ContentURL:          "https://example.org/optik",
		CountTotalResources: 3,
	}

	model := &CollectionModel{}
	model.FromDomain("snap-1", "portal-1", collection)

	assert.Equal(t, "snap-1", model.SnapshotID)
	assert.Equal(t, "portal-1", model.ParentID)
	assert.Equal(t, "child-1", model.NodeID)
	assert.Equal(t, `["root","portal-1"]`, model.Path)

	restored := model.ToDomain()
	assert.Equal(t, collection, restored)
}

func TestCollectionModel_PortalRootHasNoParent(t *testing.T) {
	portal := &portals.Collection{ID: "portal-1", Title: "Physik"}

	model := &CollectionModel{}
	model.FromDomain("snap-1", "", portal)

	assert.Equal(t, "", model.ParentID)
	assert.Equal(t, "", model.Path, "Portals without a path store the empty string")

	restored := model.ToDomain()
	assert.Nil(t, restored.Path)
}
