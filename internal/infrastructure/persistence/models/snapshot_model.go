// Package models holds the GORM row types of the snapshot store and their
// conversions to and from the domain entities.
package models

import (
	"encoding/json"
	"time"

	"github.com/openeduhub/metaqs/internal/domain/portals"
)

// SnapshotModel is the database representation of a cache snapshot
type SnapshotModel struct {
	ID        string    `gorm:"primaryKey;size:36"`
	CreatedAt time.Time `gorm:"index"`
}

// TableName overrides the default table name
func (SnapshotModel) TableName() string {
	return "snapshots"
}

// CollectionModel is one cached collection row. Rows with an empty
// ParentID are portal roots; the others are children keyed by their portal.
type CollectionModel struct {
	ID                  uint   `gorm:"primaryKey;autoIncrement"`
	SnapshotID          string `gorm:"index;size:36"`
	ParentID            string `gorm:"index;size:64"`
	NodeID              string `gorm:"size:64"`
	Name                string
	Title               string
	Type                string `gorm:"size:32"`
	Path                string
	ContentURL          string
	CountTotalResources int64
}

// TableName overrides the default table name
func (CollectionModel) TableName() string {
	return "snapshot_collections"
}

// FromDomain populates the model from a domain collection
func (m *CollectionModel) FromDomain(snapshotID, parentID string, c *portals.Collection) {
	m.SnapshotID = snapshotID
	m.ParentID = parentID
	m.NodeID = c.ID
	m.Name = c.Name
	m.Title = c.Title
	m.Type = c.Type
	m.ContentURL = c.ContentURL
	m.CountTotalResources = c.CountTotalResources

	if len(c.Path) > 0 {
		if encoded, err := json.Marshal(c.Path); err == nil {
			m.Path = string(encoded)
		}
	}
}

// ToDomain converts the model back into a domain collection
func (m *CollectionModel) ToDomain() *portals.Collection {
	collection := &portals.Collection{
		ID:                  m.NodeID,
		Name:                m.Name,
		Title:               m.Title,
		Type:                m.Type,
		ContentURL:          m.ContentURL,
		CountTotalResources: m.CountTotalResources,
	}

	if m.Path != "" {
		var path []string
		if err := json.Unmarshal([]byte(m.Path), &path); err == nil {
			collection.Path = path
		}
	}

	return collection
}

// UsageBucketModel is one cached usage aggregation bucket
type UsageBucketModel struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	SnapshotID string `gorm:"index;size:36"`
	BucketKey  string `gorm:"size:64"`
	DocCount   int64
}

// TableName overrides the default table name
func (UsageBucketModel) TableName() string {
	return "snapshot_usage_buckets"
}
