//go:build unit
// +build unit

package app

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/openeduhub/metaqs/internal/domain/materials"
	"github.com/openeduhub/metaqs/internal/domain/portals"
)

// MockCollectionSearchRepository is a mock implementation of CollectionSearchRepository
type MockCollectionSearchRepository struct {
	mock.Mock
}

func (m *MockCollectionSearchRepository) GetCollection(ctx context.Context, id string) (*portals.Collection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portals.Collection), args.Error(1)
}

func (m *MockCollectionSearchRepository) GetChildren(ctx context.Context, collectionID string) ([]*portals.Collection, error) {
	args := m.Called(ctx, collectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*portals.Collection), args.Error(1)
}

func (m *MockCollectionSearchRepository) CountResources(ctx context.Context, collectionID string) (int64, error) {
	args := m.Called(ctx, collectionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCollectionSearchRepository) CountsByAttribute(ctx context.Context, collectionID, attribute string) ([]portals.Bucket, int64, error) {
	args := m.Called(ctx, collectionID, attribute)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]portals.Bucket), args.Get(1).(int64), args.Error(2)
}

func (m *MockCollectionSearchRepository) CollectionsMissingAttribute(ctx context.Context, collectionID, attribute string) ([]portals.Resource, int64, error) {
	args := m.Called(ctx, collectionID, attribute)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]portals.Resource), args.Get(1).(int64), args.Error(2)
}

func (m *MockCollectionSearchRepository) MaterialsMissingAttribute(ctx context.Context, collectionID, attribute string) ([]portals.Resource, int64, error) {
	args := m.Called(ctx, collectionID, attribute)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]portals.Resource), args.Get(1).(int64), args.Error(2)
}

func (m *MockCollectionSearchRepository) MaterialsWithoutLicense(ctx context.Context, collectionID string) ([]portals.Resource, error) {
	args := m.Called(ctx, collectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portals.Resource), args.Error(1)
}

func (m *MockCollectionSearchRepository) AggregateCollectionUsage(ctx context.Context) ([]portals.Bucket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portals.Bucket), args.Error(1)
}

// MockEditorialClient is a mock implementation of EditorialClient
type MockEditorialClient struct {
	mock.Mock
}

func (m *MockEditorialClient) GetEditorialCollections(ctx context.Context) ([]*portals.Collection, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*portals.Collection), args.Error(1)
}

// MockSnapshotStore is a mock implementation of SnapshotStore
type MockSnapshotStore struct {
	mock.Mock
}

func (m *MockSnapshotStore) Save(ctx context.Context, snapshot *portals.Snapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockSnapshotStore) Load(ctx context.Context) (*portals.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portals.Snapshot), args.Error(1)
}

func (m *MockSnapshotStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockMaterialSearchRepository is a mock implementation of MaterialSearchRepository
type MockMaterialSearchRepository struct {
	mock.Mock
}

func (m *MockMaterialSearchRepository) ResourceInfo(ctx context.Context, resourceID string, portalIDs []string) (*materials.Material, error) {
	args := m.Called(ctx, resourceID, portalIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*materials.Material), args.Error(1)
}

func (m *MockMaterialSearchRepository) SearchEvents(ctx context.Context, since time.Time, limit int) ([]materials.SearchEvent, error) {
	args := m.Called(ctx, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]materials.SearchEvent), args.Error(1)
}
