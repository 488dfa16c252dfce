package portals

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Node types used in the workspace index
const (
	TypeCollection = "ccm:map"
	TypeResource   = "ccm:io"
)

// Public edu-sharing frontend URL templates
const (
	CollectionURLTemplate = "https://redaktion.openeduhub.net/edu-sharing/components/collections?id=%s"
	NodeURLTemplate       = "https://redaktion.openeduhub.net/edu-sharing/components/render/%s"
)

// LicenseAttribute is the keyword field carrying the license of a resource
const LicenseAttribute = "properties.ccm:commonlicense_key.keyword"

// ErrNotFound indicates that a requested collection does not exist
var ErrNotFound = errors.New("collection not found")

// Collection entity. A portal is a collection at the editorial root; its
// children are collections as well.
type Collection struct {
	ID                         string `validate:"required"`
	Name                       string
	Title                      string
	Type                       string
	Path                       []string
	ContentURL                 string
	CountTotalResources        int64
	Licenses                   map[string]int64
	ResourcesWithNoLicense     []string
	ResourcesWithNoDescription []string
}

// Validate for validating Collection struct
func (c *Collection) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validation failed for Collection: %w", err)
	}

	return nil
}

// PortalURL returns the public frontend URL of the collection. It is derived
// from the ID and never stored.
func (c *Collection) PortalURL() string {
	if c.Type == TypeCollection || c.Type == "" {
		return fmt.Sprintf(CollectionURLTemplate, c.ID)
	}
	return fmt.Sprintf(NodeURLTemplate, c.ID)
}

// Resource is a lightweight reference to a workspace node, used in
// missing-attribute reports.
type Resource struct {
	ID         string
	Name       string
	Title      string
	Type       string
	ContentURL string
}

// Bucket is one term of an Elasticsearch aggregation
type Bucket struct {
	Key      string
	DocCount int64
}

// Snapshot is a persisted build of the portal cache
type Snapshot struct {
	ID               string
	CreatedAt        time.Time
	Portals          []*Collection
	ChildrenByPortal map[string][]*Collection
	UsageBuckets     []Bucket
}

// Portal returns the cached portal with the given ID, or nil
func (s *Snapshot) Portal(id string) *Collection {
	for _, p := range s.Portals {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// MissingAttributeReport lists the resources of a portal that lack a
// metadata attribute.
type MissingAttributeReport struct {
	PortalID  string
	Attribute string
	Mode      string
	Total     int64
	Resources []Resource
}

// LicenseSummary aggregates the license attribute over the resources of a
// portal. Resources whose license key is absent or one of the
// not-a-license values count as missing.
type LicenseSummary struct {
	PortalID                string
	Total                   int64
	Licenses                []Bucket
	ResourcesMissingLicense []Resource
}

// CacheStatus describes the persisted snapshot
type CacheStatus struct {
	Warm         bool
	SnapshotID   string
	CreatedAt    time.Time
	PortalCount  int
	ChildrenSets int
}
