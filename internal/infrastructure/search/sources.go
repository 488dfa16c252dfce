package search

import (
	"time"

	"github.com/openeduhub/metaqs/internal/domain/portals"
)

// workspaceSource is the decoded _source of a workspace node
type workspaceSource struct {
	NodeRef struct {
		ID string `json:"id"`
	} `json:"nodeRef"`
	Type       string   `json:"type"`
	Path       []string `json:"path"`
	Properties struct {
		CmName            string `json:"cm:name"`
		CmTitle           string `json:"cm:title"`
		CclomTitle        string `json:"cclom:title"`
		WwwURL            string `json:"ccm:wwwurl"`
		ReplicationSource string `json:"ccm:replicationsource"`
		Creator           string `json:"cm:creator"`
	} `json:"properties"`
	Collections []struct {
		Path []string `json:"path"`
	} `json:"collections"`
}

// title returns the display title of the node: collections carry cm:title,
// resources carry cclom:title.
func (s *workspaceSource) title() string {
	if s.Type == portals.TypeResource && s.Properties.CclomTitle != "" {
		return s.Properties.CclomTitle
	}
	if s.Properties.CmTitle != "" {
		return s.Properties.CmTitle
	}
	return s.Properties.CclomTitle
}

func (s *workspaceSource) toCollection() *portals.Collection {
	return &portals.Collection{
		ID:         s.NodeRef.ID,
		Name:       s.Properties.CmName,
		Title:      s.title(),
		Type:       s.Type,
		Path:       s.Path,
		ContentURL: s.Properties.WwwURL,
	}
}

func (s *workspaceSource) toResource() portals.Resource {
	return portals.Resource{
		ID:         s.NodeRef.ID,
		Name:       s.Properties.CmName,
		Title:      s.title(),
		Type:       s.Type,
		ContentURL: s.Properties.WwwURL,
	}
}

// analyticsSource is the decoded _source of a search analytics event
type analyticsSource struct {
	Action        string `json:"action"`
	SearchString  string `json:"searchString"`
	ClickedResult struct {
		ID string `json:"id"`
	} `json:"clickedResult"`
	Timestamp time.Time `json:"timestamp"`
}
