package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openeduhub/metaqs/internal/domain/portals"
	"github.com/openeduhub/metaqs/internal/pkg/logger"
)

// cacheService implements the CacheService interface for building, loading
// and persisting portal snapshots
type cacheService struct {
	editorialClient portals.EditorialClient
	searchRepo      portals.CollectionSearchRepository
	store           portals.SnapshotStore
	holder          *SnapshotHolder
	logger          logger.Logger
}

// NewCacheService creates a new cacheService instance
func NewCacheService(
	editorialClient portals.EditorialClient,
	searchRepo portals.CollectionSearchRepository,
	store portals.SnapshotStore,
	holder *SnapshotHolder,
	logger logger.Logger,
) (portals.CacheService, error) {
	return &cacheService{
		editorialClient: editorialClient,
		searchRepo:      searchRepo,
		store:           store,
		holder:          holder,
		logger:          logger,
	}, nil
}

// Warmup loads the persisted snapshot into memory, building and persisting
// a fresh one when the store is empty.
func (s *cacheService) Warmup(ctx context.Context) error {
	snapshot, err := s.store.Load(ctx)
	if err == nil {
		s.holder.Set(snapshot)
		s.logger.Info("Cache loaded from snapshot ", snapshot.ID)
		return nil
	}

	if !errors.Is(err, portals.ErrNotFound) {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	s.logger.Warn("Could not load cache snapshot, building")
	if _, err := s.Refresh(ctx); err != nil {
		return err
	}
	return nil
}

// Refresh rebuilds the snapshot from the live backends and persists it.
func (s *cacheService) Refresh(ctx context.Context) (*portals.Snapshot, error) {
	snapshot, err := s.buildSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to persist snapshot: %w", err)
	}

	s.holder.Set(snapshot)
	return snapshot, nil
}

// Clear drops the persisted snapshot and the in-memory copy.
func (s *cacheService) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear snapshot store: %w", err)
	}
	s.holder.Set(nil)
	return nil
}

// Status describes the currently loaded snapshot.
func (s *cacheService) Status(ctx context.Context) (*portals.CacheStatus, error) {
	snapshot := s.holder.Current()
	if snapshot == nil {
		return &portals.CacheStatus{Warm: false}, nil
	}

	return &portals.CacheStatus{
		Warm:         true,
		SnapshotID:   snapshot.ID,
		CreatedAt:    snapshot.CreatedAt,
		PortalCount:  len(snapshot.Portals),
		ChildrenSets: len(snapshot.ChildrenByPortal),
	}, nil
}

func (s *cacheService) buildSnapshot(ctx context.Context) (*portals.Snapshot, error) {
	s.logger.Info("Building portal cache snapshot")

	portalList, err := s.editorialClient.GetEditorialCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch editorial collections: %w", err)
	}

	children := make(map[string][]*portals.Collection, len(portalList))
	for _, portal := range portalList {
		count, err := s.searchRepo.CountResources(ctx, portal.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count resources of portal %s: %w", portal.ID, err)
		}
		portal.CountTotalResources = count

		portalChildren, err := s.searchRepo.GetChildren(ctx, portal.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch children of portal %s: %w", portal.ID, err)
		}
		children[portal.ID] = portalChildren
	}

	usage, err := s.searchRepo.AggregateCollectionUsage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate collection usage: %w", err)
	}

	return &portals.Snapshot{
		ID:               uuid.New().String(),
		CreatedAt:        time.Now().UTC(),
		Portals:          portalList,
		ChildrenByPortal: children,
		UsageBuckets:     usage,
	}, nil
}
