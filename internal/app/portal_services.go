package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/openeduhub/metaqs/internal/domain/portals"
	"github.com/openeduhub/metaqs/internal/pkg/logger"
)

// portalCatalogService implements the PortalCatalogService interface
type portalCatalogService struct {
	editorialClient portals.EditorialClient
	searchRepo      portals.CollectionSearchRepository
	holder          *SnapshotHolder
	logger          logger.Logger
}

// NewPortalCatalogService creates a new portalCatalogService instance
func NewPortalCatalogService(
	editorialClient portals.EditorialClient,
	searchRepo portals.CollectionSearchRepository,
	holder *SnapshotHolder,
	logger logger.Logger,
) (portals.PortalCatalogService, error) {
	return &portalCatalogService{
		editorialClient: editorialClient,
		searchRepo:      searchRepo,
		holder:          holder,
		logger:          logger,
	}, nil
}

// List returns all editorial portals, preferring the warm snapshot.
func (s *portalCatalogService) List(ctx context.Context) ([]*portals.Collection, error) {
	if snapshot := s.holder.Current(); snapshot != nil {
		return snapshot.Portals, nil
	}

	s.logger.Warn("Cache cold, listing portals from live backends")
	portalList, err := s.editorialClient.GetEditorialCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch editorial collections: %w", err)
	}

	for _, portal := range portalList {
		count, err := s.searchRepo.CountResources(ctx, portal.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count resources of portal %s: %w", portal.ID, err)
		}
		portal.CountTotalResources = count
	}

	return portalList, nil
}

// GetByID returns a single portal or collection node by ID.
func (s *portalCatalogService) GetByID(ctx context.Context, id string) (*portals.Collection, error) {
	if snapshot := s.holder.Current(); snapshot != nil {
		if portal := snapshot.Portal(id); portal != nil {
			return portal, nil
		}
	}

	collection, err := s.searchRepo.GetCollection(ctx, id)
	if err != nil {
		return nil, err
	}

	return collection, nil
}

// portalTreeService implements the PortalTreeService interface
type portalTreeService struct {
	searchRepo portals.CollectionSearchRepository
	holder     *SnapshotHolder
	logger     logger.Logger
}

// NewPortalTreeService creates a new portalTreeService instance
func NewPortalTreeService(
	searchRepo portals.CollectionSearchRepository,
	holder *SnapshotHolder,
	logger logger.Logger,
) (portals.PortalTreeService, error) {
	return &portalTreeService{
		searchRepo: searchRepo,
		holder:     holder,
		logger:     logger,
	}, nil
}

// Children returns the child collections of a portal, filtered and sorted
// according to the query.
func (s *portalTreeService) Children(ctx context.Context, id string, query *portals.CollectionQuery) ([]*portals.Collection, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var children []*portals.Collection
	if snapshot := s.holder.Current(); snapshot != nil {
		if cached, ok := snapshot.ChildrenByPortal[id]; ok {
			children = cached
		}
	}

	if children == nil {
		s.logger.Info("Querying the search backend for children of ", id)
		fetched, err := s.searchRepo.GetChildren(ctx, id)
		if err != nil {
			return nil, err
		}
		children = fetched
	}

	return applyQuery(children, query), nil
}

// applyQuery filters, sorts and paginates a children listing
func applyQuery(children []*portals.Collection, query *portals.CollectionQuery) []*portals.Collection {
	filtered := make([]*portals.Collection, 0, len(children))
	for _, child := range children {
		if query.Admits(child) {
			filtered = append(filtered, child)
		}
	}

	if query.SortBy != "" {
		asc := query.SortOrder != "desc"
		sort.SliceStable(filtered, func(i, j int) bool {
			var less bool
			switch query.SortBy {
			case "title":
				less = filtered[i].Title < filtered[j].Title
			case "name":
				less = filtered[i].Name < filtered[j].Name
			case "count_total_resources":
				less = filtered[i].CountTotalResources < filtered[j].CountTotalResources
			}
			if asc {
				return less
			}
			return !less
		})
	}

	if query.Offset > 0 {
		if query.Offset >= len(filtered) {
			return []*portals.Collection{}
		}
		filtered = filtered[query.Offset:]
	}

	if query.Limit > 0 && query.Limit < len(filtered) {
		filtered = filtered[:query.Limit]
	}

	return filtered
}
