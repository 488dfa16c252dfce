//go:build unit
// +build unit

package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/openeduhub/metaqs/internal/domain/portals"
	"github.com/openeduhub/metaqs/internal/pkg/testutil"
)

func TestCacheService_Warmup_LoadsPersistedSnapshot(t *testing.T) {
	mockEditorialClient := new(MockEditorialClient)
	mockSearchRepo := new(MockCollectionSearchRepository)
	mockStore := new(MockSnapshotStore)

	snapshot := &portals.Snapshot{
		ID:        "snap-1",
		CreatedAt: time.Now().UTC(),
		Portals:   []*portals.Collection{{ID: "portal-1"}},
	}

	mockStore.
		On("Load", mock.Anything).
		Return(snapshot, nil)

	holder := NewSnapshotHolder()
	service, err := NewCacheService(mockEditorialClient, mockSearchRepo, mockStore, holder, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	require.NoError(t, service.Warmup(context.Background()))

	assert.Equal(t, snapshot, holder.Current())
	mockEditorialClient.AssertNotCalled(t, "GetEditorialCollections", mock.Anything)
	mockStore.AssertExpectations(t)
}

func TestCacheService_Warmup_BuildsWhenStoreEmpty(t *testing.T) {
	mockEditorialClient := new(MockEditorialClient)
	mockSearchRepo := new(MockCollectionSearchRepository)
	mockStore := new(MockSnapshotStore)

	mockStore.
		On("Load", mock.Anything).
		Return(nil, portals.ErrNotFound)
	mockStore.
		On("Save", mock.Anything, mock.AnythingOfType("*portals.Snapshot")).
		Return(nil)

	mockEditorialClient.
		On("GetEditorialCollections", mock.Anything).
		Return([]*portals.Collection{{ID: "portal-1", Title: "Physik"}}, nil)
	mockSearchRepo.
		On("CountResources", mock.Anything, "portal-1").
		Return(int64(42), nil)
	mockSearchRepo.
		On("GetChildren", mock.Anything, "portal-1").
		Return([]*portals.Collection{{ID: "child-1"}}, nil)
	mockSearchRepo.
		On("AggregateCollectionUsage", mock.Anything).
		Return([]portals.Bucket{{Key: "portal-1", DocCount: 42}}, nil)

	holder := NewSnapshotHolder()
	service, err := NewCacheService(mockEditorialClient, mockSearchRepo, mockStore, holder, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	require.NoError(t, service.Warmup(context.Background()))

	snapshot := holder.Current()
	require.NotNil(t, snapshot)
	assert.NotEmpty(t, snapshot.ID)
	require.Len(t, snapshot.Portals, 1)
	assert.Equal(t, int64(42), snapshot.Portals[0].CountTotalResources)
	assert.Len(t, snapshot.ChildrenByPortal["portal-1"], 1)
	mockStore.AssertExpectations(t)
	mockEditorialClient.AssertExpectations(t)
	mockSearchRepo.AssertExpectations(t)
}

func TestCacheService_Warmup_StoreError(t *testing.T) {
	mockEditorialClient := new(MockEditorialClient)
	mockSearchRepo := new(MockCollectionSearchRepository)
	mockStore := new(MockSnapshotStore)

	mockStore.
		On("Load", mock.Anything).
		Return(nil, errors.New("store unreachable"))

	service, err := NewCacheService(mockEditorialClient, mockSearchRepo, mockStore, NewSnapshotHolder(), testutil.SetupTestLogger(t))
	require.NoError(t, err)

	assert.Error(t, service.Warmup(context.Background()))
}

func TestCacheService_Refresh_PersistsAndPublishes(t *testing.T) {
	mockEditorialClient := new(MockEditorialClient)
	mockSearchRepo := new(MockCollectionSearchRepository)
	mockStore := new(MockSnapshotStore)

	mockEditorialClient.
		On("GetEditorialCollections", mock.Anything).
		Return([]*portals.Collection{{ID: "portal-1"}}, nil)
	mockSearchRepo.
		On("CountResources", mock.Anything, "portal-1").
		Return(int64(7), nil)
	mockSearchRepo.
		On("GetChildren", mock.Anything, "portal-1").
		Return([]*portals.Collection{}, nil)
	mockSearchRepo.
		On("AggregateCollectionUsage", mock.Anything).
		Return([]portals.Bucket{}, nil)
	mockStore.
		On("Save", mock.Anything, mock.AnythingOfType("*portals.Snapshot")).
		Return(nil)

	holder := NewSnapshotHolder()
	service, err := NewCacheService(mockEditorialClient, mockSearchRepo, mockStore, holder, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	snapshot, err := service.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, snapshot, holder.Current())
	mockStore.AssertExpectations(t)
}

func TestCacheService_Refresh_SaveErrorLeavesHolderCold(t *testing.T) {
	mockEditorialClient := new(MockEditorialClient)
	mockSearchRepo := new(MockCollectionSearchRepository)
	mockStore := new(MockSnapshotStore)

	mockEditorialClient.
		On("GetEditorialCollections", mock.Anything).
		Return([]*portals.Collection{}, nil)
	mockSearchRepo.
		On("AggregateCollectionUsage", mock.Anything).
		Return([]portals.Bucket{}, nil)
	mockStore.
		On("Save", mock.Anything, mock.AnythingOfType("*portals.Snapshot")).
		Return(errors.New("store unreachable"))

	holder := NewSnapshotHolder()
	service, err := NewCacheService(mockEditorialClient, mockSearchRepo, mockStore, holder, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	_, err = service.Refresh(context.Background())
	assert.Error(t, err)
	assert.Nil(t, holder.Current())
}

func TestCacheService_Clear(t *testing.T) {
	mockEditorialClient := new(MockEditorialClient)
	mockSearchRepo := new(MockCollectionSearchRepository)
	mockStore := new(MockSnapshotStore)

	mockStore.
		On("Clear", mock.Anything).
		Return(nil)

	holder := warmHolder(&portals.Snapshot{ID: "snap-1"})
	service, err := NewCacheService(mockEditorialClient, mockSearchRepo, mockStore, holder, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	require.NoError(t, service.Clear(context.Background()))
	assert.Nil(t, holder.Current())
	mockStore.AssertExpectations(t)
}

func TestCacheService_Status(t *testing.T) {
	mockEditorialClient := new(MockEditorialClient)
	mockSearchRepo := new(MockCollectionSearchRepository)
	mockStore := new(MockSnapshotStore)

	snapshot := &portals.Snapshot{
		ID:        "snap-1",
		CreatedAt: time.Now().UTC(),
		Portals:   []*portals.Collection{{ID: "portal-1"}, {ID: "portal-2"}},
		ChildrenByPortal: map[string][]*portals.Collection{
			"portal-1": {},
		},
	}

	service, err := NewCacheService(mockEditorialClient, mockSearchRepo, mockStore, warmHolder(snapshot), testutil.SetupTestLogger(t))
	require.NoError(t, err)

	status, err := service.Status(context.Background())
	require.NoError(t, err)

	assert.True(t, status.Warm)
	assert.Equal(t, "snap-1", status.SnapshotID)
	assert.Equal(t, 2, status.PortalCount)
	assert.Equal(t, 1, status.ChildrenSets)
}

func TestCacheService_Status_Cold(t *testing.T) {
	mockEditorialClient := new(MockEditorialClient)
	mockSearchRepo := new(MockCollectionSearchRepository)
	mockStore := new(MockSnapshotStore)

	service, err := NewCacheService(mockEditorialClient, mockSearchRepo, mockStore, NewSnapshotHolder(), testutil.SetupTestLogger(t))
	require.NoError(t, err)

	status, err := service.Status(context.Background())
	require.NoError(t, err)

	assert.False(t, status.Warm)
	assert.Empty(t, status.SnapshotID)
}
