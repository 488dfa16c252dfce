package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/openeduhub/metaqs/internal/domain/materials"
	"github.com/openeduhub/metaqs/internal/domain/portals"
	"github.com/openeduhub/metaqs/internal/pkg/logger"
)

// analyticsWindow is the initial lookback for search events
const analyticsWindow = 30 * 24 * time.Hour

// analyticsEventLimit caps the events fetched per refresh
const analyticsEventLimit = 10000

// analyticsService implements the AnalyticsService interface. It keeps the
// merged material state in memory and refreshes it incrementally.
type analyticsService struct {
	materialRepo materials.MaterialSearchRepository
	catalog      portals.PortalCatalogService
	logger       logger.Logger

	mu        sync.RWMutex
	since     time.Time
	materials map[string]*materials.Material
}

// NewAnalyticsService creates a new analyticsService instance
func NewAnalyticsService(
	materialRepo materials.MaterialSearchRepository,
	catalog portals.PortalCatalogService,
	logger logger.Logger,
) (materials.AnalyticsService, error) {
	return &analyticsService{
		materialRepo: materialRepo,
		catalog:      catalog,
		logger:       logger,
		since:        time.Now().UTC().Add(-analyticsWindow),
		materials:    make(map[string]*materials.Material),
	}, nil
}

// Refresh pulls search events since the last refresh and merges them into
// the material state.
func (s *analyticsService) Refresh(ctx context.Context) error {
	portalList, err := s.catalog.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list portals for analytics: %w", err)
	}

	portalIDs := make([]string, 0, len(portalList))
	for _, portal := range portalList {
		portalIDs = append(portalIDs, portal.ID)
	}

	s.mu.RLock()
	since := s.since
	s.mu.RUnlock()

	events, err := s.materialRepo.SearchEvents(ctx, since, analyticsEventLimit)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Events arrive newest first; the first one advances the watermark.
	if len(events) > 0 && events[0].Timestamp.After(s.since) {
		s.since = events[0].Timestamp
	}

	for _, event := range events {
		if !event.IsResultClick() {
			continue
		}

		searchString := strings.TrimSpace(event.SearchString)

		existing, ok := s.materials[event.ClickedResultID]
		if !ok {
			info, err := s.materialRepo.ResourceInfo(ctx, event.ClickedResultID, portalIDs)
			if err != nil {
				s.logger.Warn("skipping clicked resource ", event.ClickedResultID, ": ", err)
				continue
			}
			info.Timestamp = event.Timestamp
			if searchString != "" {
				info.SearchStrings[searchString]++
			}
			s.materials[event.ClickedResultID] = info
			continue
		}

		existing.Merge(clickSighting(event.ClickedResultID, searchString, event.Timestamp))
	}

	s.logger.Info("Analytics refreshed, tracking ", len(s.materials), " materials")
	return nil
}

// clickSighting builds the one-click delta a search event contributes to
// an already known material.
func clickSighting(resourceID, searchString string, timestamp time.Time) *materials.Material {
	sighting := &materials.Material{
		ID:        resourceID,
		Clicks:    1,
		Timestamp: timestamp,
	}
	if searchString != "" {
		sighting.SearchStrings = map[string]int64{searchString: 1}
	}
	return sighting
}

// MaterialsByPortal returns the clicked materials grouped by portal ID.
// The returned materials are copies, detached from the state Refresh
// mutates.
func (s *analyticsService) MaterialsByPortal(portalID string) map[string][]*materials.Material {
	s.mu.RLock()
	defer s.mu.RUnlock()

	grouped := make(map[string][]*materials.Material)
	for _, material := range s.materials {
		if len(material.PortalIDs) == 0 {
			grouped[materials.PortalNone] = append(grouped[materials.PortalNone], material.Clone())
			continue
		}
		for _, id := range material.PortalIDs {
			grouped[id] = append(grouped[id], material.Clone())
		}
	}

	for _, group := range grouped {
		sortByLastClick(group)
	}

	if portalID == "" {
		return grouped
	}

	filtered := make(map[string][]*materials.Material, 1)
	if group, ok := grouped[portalID]; ok {
		filtered[portalID] = group
	}
	return filtered
}

// SortedMaterials returns copies of all known materials sorted by last
// click, newest first.
func (s *analyticsService) SortedMaterials() []*materials.Material {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*materials.Material, 0, len(s.materials))
	for _, material := range s.materials {
		all = append(all, material.Clone())
	}

	sortByLastClick(all)
	return all
}

func sortByLastClick(group []*materials.Material) {
	sort.SliceStable(group, func(i, j int) bool {
		return group[i].Timestamp.After(group[j].Timestamp)
	})
}
