package search

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/openeduhub/metaqs/internal/domain/materials"
	"github.com/openeduhub/metaqs/internal/pkg/logger"
)

type materialSearchRepository struct {
	client         Searcher
	workspaceIndex string
	analyticsIndex string
	logger         logger.Logger
}

// NewMaterialSearchRepository creates a MaterialSearchRepository backed by
// the workspace and analytics indices
func NewMaterialSearchRepository(client Searcher, workspaceIndex, analyticsIndex string, log logger.Logger) (materials.MaterialSearchRepository, error) {
	return &materialSearchRepository{
		client:         client,
		workspaceIndex: workspaceIndex,
		analyticsIndex: analyticsIndex,
		logger:         log,
	}, nil
}

func (r *materialSearchRepository) ResourceInfo(ctx context.Context, resourceID string, portalIDs []string) (*materials.Material, error) {
	envelope, err := r.client.Search(ctx, r.workspaceIndex, NodePathBody(resourceID))
	if err != nil {
		return nil, fmt.Errorf("failed to look up resource %s: %w", resourceID, err)
	}

	if len(envelope.Hits.Hits) == 0 {
		return nil, fmt.Errorf("resource %s not found in workspace index", resourceID)
	}

	var source workspaceSource
	if err := json.Unmarshal(envelope.Hits.Hits[0].Source, &source); err != nil {
		return nil, fmt.Errorf("failed to parse resource %s: %w", resourceID, err)
	}

	var paths []string
	if len(source.Collections) > 0 {
		paths = source.Collections[0].Path
	}

	known := make(map[string]bool, len(portalIDs))
	for _, id := range portalIDs {
		known[id] = true
	}

	var includedPortals []string
	for _, p := range paths {
		if known[p] {
			includedPortals = append(includedPortals, p)
		}
	}

	return &materials.Material{
		ID:            resourceID,
		Name:          source.Properties.CmName,
		Title:         source.Properties.CclomTitle,
		ContentURL:    source.Properties.WwwURL,
		Crawler:       source.Properties.ReplicationSource,
		Creator:       source.Properties.Creator,
		Clicks:        1,
		SearchStrings: make(map[string]int64),
		PortalIDs:     includedPortals,
	}, nil
}

func (r *materialSearchRepository) SearchEvents(ctx context.Context, since time.Time, limit int) ([]materials.SearchEvent, error) {
	envelope, err := r.client.Search(ctx, r.analyticsIndex, SearchEventsBody(since, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch search events: %w", err)
	}

	events := make([]materials.SearchEvent, 0, len(envelope.Hits.Hits))
	for _, hit := range envelope.Hits.Hits {
		var source analyticsSource
		if err := json.Unmarshal(hit.Source, &source); err != nil {
			r.logger.Warn("skipping malformed search event ", hit.ID, ": ", err)
			continue
		}
		events = append(events, materials.SearchEvent{
			Action:          source.Action,
			SearchString:    source.SearchString,
			ClickedResultID: source.ClickedResult.ID,
			Timestamp:       source.Timestamp,
		})
	}

	return events, nil
}
