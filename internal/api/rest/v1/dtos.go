package v1

import (
	"time"

	"github.com/openeduhub/metaqs/internal/domain/materials"
	"github.com/openeduhub/metaqs/internal/domain/portals"
)

// ErrorResponse is the envelope for error messages
type ErrorResponse struct {
	Message string `json:"message"`
}

// InfoResponse is the envelope for informational messages
type InfoResponse struct {
	Message string `json:"message"`
}

// CollectionResponse represents a portal or collection node
type CollectionResponse struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Title               string   `json:"title"`
	Type                string   `json:"type"`
	Path                []string `json:"path"`
	PortalURL           string   `json:"portal_url"`
	ContentURL          string   `json:"content_url,omitempty"`
	CountTotalResources int64    `json:"count_total_resources"`
}

func newCollectionResponse(c *portals.Collection) CollectionResponse {
	return CollectionResponse{
		ID:                  c.ID,
		Name:                c.Name,
		Title:               c.Title,
		Type:                c.Type,
		Path:                c.Path,
		PortalURL:           c.PortalURL(),
		ContentURL:          c.ContentURL,
		CountTotalResources: c.CountTotalResources,
	}
}

func newCollectionListResponse(collections []*portals.Collection) []CollectionResponse {
	listResponse := []CollectionResponse{}
	for _, c := range collections {
		listResponse = append(listResponse, newCollectionResponse(c))
	}
	return listResponse
}

// ChildrenResponse represents a portal and its child collections
type ChildrenResponse struct {
	ID       CollectionResponse   `json:"id"`
	Children []CollectionResponse `json:"children"`
}

// ResourceResponse represents a workspace node reference
type ResourceResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Title      string `json:"title"`
	Type       string `json:"type"`
	ContentURL string `json:"content_url,omitempty"`
}

func newResourceListResponse(resources []portals.Resource) []ResourceResponse {
	listResponse := []ResourceResponse{}
	for _, r := range resources {
		listResponse = append(listResponse, ResourceResponse{
			ID:         r.ID,
			Name:       r.Name,
			Title:      r.Title,
			Type:       r.Type,
			ContentURL: r.ContentURL,
		})
	}
	return listResponse
}

// BucketResponse represents one aggregation bucket
type BucketResponse struct {
	Key      string `json:"key"`
	DocCount int64  `json:"doc_count"`
}

func newBucketListResponse(buckets []portals.Bucket) []BucketResponse {
	listResponse := []BucketResponse{}
	for _, b := range buckets {
		listResponse = append(listResponse, BucketResponse{Key: b.Key, DocCount: b.DocCount})
	}
	return listResponse
}

// MissingAttributeResponse reports resources lacking an attribute
type MissingAttributeResponse struct {
	PortalID  string             `json:"portal_id"`
	Attribute string             `json:"attribute"`
	Mode      string             `json:"mode"`
	Total     int64              `json:"total"`
	Resources []ResourceResponse `json:"resources"`
}

// LicenseSummaryResponse aggregates licenses over a portal
type LicenseSummaryResponse struct {
	PortalID                string             `json:"portal_id"`
	Total                   int64              `json:"total"`
	Licenses                []BucketResponse   `json:"licenses"`
	ResourcesMissingLicense []ResourceResponse `json:"resources_missing_license"`
}

// MaterialResponse represents a clicked search result
type MaterialResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Title         string           `json:"title"`
	Clicks        int64            `json:"clicks"`
	SearchStrings map[string]int64 `json:"search_strings"`
	Crawler       string           `json:"crawler,omitempty"`
	Creator       string           `json:"creator,omitempty"`
	Timestamp     time.Time        `json:"timestamp"`
	ThumbnailURL  string           `json:"thumbnail_url"`
	ContentURL    string           `json:"content_url,omitempty"`
	PortalIDs     []string         `json:"portal_ids"`
}

func newMaterialResponse(m *materials.Material) MaterialResponse {
	return MaterialResponse{
		ID:            m.ID,
		Name:          m.Name,
		Title:         m.Title,
		Clicks:        m.Clicks,
		SearchStrings: m.SearchStrings,
		Crawler:       m.Crawler,
		Creator:       m.Creator,
		Timestamp:     m.Timestamp,
		ThumbnailURL:  m.ThumbnailURL(),
		ContentURL:    m.ContentURL,
		PortalIDs:     m.PortalIDs,
	}
}

// MaterialsByPortalResponse groups clicked materials by portal ID
type MaterialsByPortalResponse struct {
	MaterialsByPortal map[string][]MaterialResponse `json:"materials_by_portal"`
}

// CacheStatusResponse describes the loaded cache snapshot
type CacheStatusResponse struct {
	Warm         bool      `json:"warm"`
	SnapshotID   string    `json:"snapshot_id,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	PortalCount  int       `json:"portal_count"`
	ChildrenSets int       `json:"children_sets"`
}
