//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openeduhub/metaqs/internal/domain/portals"
	"github.com/openeduhub/metaqs/internal/infrastructure/persistence/models"
)

func TestGormSnapshotRepository_SaveAndLoad(t *testing.T) {
	ctx := SetupTestDB(t)

	snapshot := CreateTestSnapshot(t)
	require.NoError(t, ctx.Store.Save(context.Background(), snapshot))

	// Verify using GORM models (infrastructure concern)
	var snapshotModel models.SnapshotModel
	require.NoError(t, ctx.DB.First(&snapshotModel, "id = ?", snapshot.ID).Error)
	assert.Equal(t, snapshot.ID, snapshotModel.ID)

	loaded, err := ctx.Store.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, snapshot.ID, loaded.ID)
	require.Len(t, loaded.Portals, 2)
	assert.Equal(t, "Physik", loaded.Portals[0].Title)
	assert.Equal(t, int64(42), loaded.Portals[0].CountTotalResources)

	require.Len(t, loaded.ChildrenByPortal["portal-1"], 1)
	assert.Equal(t, []string{"root", "portal-1"}, loaded.ChildrenByPortal["portal-1"][0].Path)

	require.Len(t, loaded.UsageBuckets, 1)
	assert.Equal(t, portals.Bucket{Key: "portal-1", DocCount: 42}, loaded.UsageBuckets[0])
}

func TestGormSnapshotRepository_SaveReplacesPrevious(t *testing.T) {
	ctx := SetupTestDB(t)

	first := CreateTestSnapshot(t)
	require.NoError(t, ctx.Store.Save(context.Background(), first))

	second := CreateTestSnapshot(t)
	second.CreatedAt = first.CreatedAt.Add(time.Minute)
	require.NoError(t, ctx.Store.Save(context.Background(), second))

	loaded, err := ctx.Store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, second.ID, loaded.ID)

	var count int64
	require.NoError(t, ctx.DB.Model(&models.SnapshotModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "Saving replaces the previous snapshot")
}

func TestGormSnapshotRepository_Save_EmptyID(t *testing.T) {
	ctx := SetupTestDB(t)

	err := ctx.Store.Save(context.Background(), &portals.Snapshot{})
	assert.Error(t, err)
}

func TestGormSnapshotRepository_Load_Empty(t *testing.T) {
	ctx := SetupTestDB(t)

	_, err := ctx.Store.Load(context.Background())
	assert.ErrorIs(t, err, portals.ErrNotFound)
}

func TestGormSnapshotRepository_Clear(t *testing.T) {
	ctx := SetupTestDB(t)

	require.NoError(t, ctx.Store.Save(context.Background(), CreateTestSnapshot(t)))
	require.NoError(t, ctx.Store.Clear(context.Background()))

	_, err := ctx.Store.Load(context.Background())
	assert.ErrorIs(t, err, portals.ErrNotFound)

	var count int64
	require.NoError(t, ctx.DB.Model(&models.CollectionModel{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestGormSnapshotRepository_EmptySnapshotRoundTrip(t *testing.T) {
	ctx := SetupTestDB(t)

	snapshot := &portals.Snapshot{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, ctx.Store.Save(context.Background(), snapshot))

	loaded, err := ctx.Store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, snapshot.ID, loaded.ID)
	assert.Empty(t, loaded.Portals)
	assert.Empty(t, loaded.UsageBuckets)
}
