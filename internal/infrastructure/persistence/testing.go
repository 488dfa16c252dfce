//go:build integration
// +build integration

package persistence

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/openeduhub/metaqs/internal/domain/portals"
	"github.com/openeduhub/metaqs/internal/pkg/config"
	"github.com/openeduhub/metaqs/internal/pkg/testutil"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB    *gorm.DB
	Store portals.SnapshotStore
}

// SetupTestDB initializes an in-memory test database with the snapshot store
func SetupTestDB(t *testing.T) *TestContext {
	t.Helper()

	settings := config.DatabaseSettings{
		Type: config.SqliteDbType,
		DSN:  ":memory:",
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	store, err := NewGormSnapshotRepository(db, testutil.SetupTestLogger(t))
	require.NoError(t, err, "Failed to create snapshot repository")

	t.Cleanup(func() {
		_ = CloseDB(db)
	})

	return &TestContext{DB: db, Store: store}
}

// CreateTestSnapshot builds a snapshot with two portals and one child
func CreateTestSnapshot(t *testing.T) *portals.Snapshot {
	t.Helper()

	return &portals.Snapshot{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Portals: []*portals.Collection{
			{ID: "portal-1", Name: "physik", Title: "Physik", Type: portals.TypeCollection, CountTotalResources: 42},
			{ID: "portal-2", Name: "chemie", Title: "Chemie", Type: portals.TypeCollection, CountTotalResources: 7},
		},
		ChildrenByPortal: map[string][]*portals.Collection{
			"portal-1": {
				{ID: "child-1", Title: "Optik", Type: portals.TypeCollection, Path: []string{"root", "portal-1"}, CountTotalResources: 3},
			},
		},
		UsageBuckets: []portals.Bucket{
			{Key: "portal-1", DocCount: 42},
		},
	}
}
