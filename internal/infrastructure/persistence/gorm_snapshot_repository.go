package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/openeduhub/metaqs/internal/domain/portals"
	"github.com/openeduhub/metaqs/internal/infrastructure/persistence/models"
	"github.com/openeduhub/metaqs/internal/pkg/logger"
)

type gormSnapshotRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormSnapshotRepository creates a GORM-based SnapshotStore
// implementation and migrates its schema
func NewGormSnapshotRepository(db *gorm.DB, log logger.Logger) (portals.SnapshotStore, error) {
	if err := db.AutoMigrate(&models.SnapshotModel{}, &models.CollectionModel{}, &models.UsageBucketModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate snapshot schema: %w", err)
	}

	return &gormSnapshotRepository{
		db:     db,
		logger: log,
	}, nil
}

func (r *gormSnapshotRepository) Save(ctx context.Context, snapshot *portals.Snapshot) error {
	if snapshot.ID == "" {
		return fmt.Errorf("snapshot id must not be empty")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearAll(tx); err != nil {
			return err
		}

		model := &models.SnapshotModel{ID: snapshot.ID, CreatedAt: snapshot.CreatedAt}
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to create snapshot row: %w", err)
		}

		for _, portal := range snapshot.Portals {
			row := &models.CollectionModel{}
			row.FromDomain(snapshot.ID, "", portal)
			if err := tx.Create(row).Error; err != nil {
				return fmt.Errorf("failed to store portal %s: %w", portal.ID, err)
			}
		}

		for parentID, children := range snapshot.ChildrenByPortal {
			for _, child := range children {
				row := &models.CollectionModel{}
				row.FromDomain(snapshot.ID, parentID, child)
				if err := tx.Create(row).Error; err != nil {
					return fmt.Errorf("failed to store child %s of %s: %w", child.ID, parentID, err)
				}
			}
		}

		for _, bucket := range snapshot.UsageBuckets {
			row := &models.UsageBucketModel{
				SnapshotID: snapshot.ID,
				BucketKey:  bucket.Key,
				DocCount:   bucket.DocCount,
			}
			if err := tx.Create(row).Error; err != nil {
				return fmt.Errorf("failed to store usage bucket %s: %w", bucket.Key, err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	r.logger.Info("Persisted cache snapshot ", snapshot.ID, " with ", len(snapshot.Portals), " portals")
	return nil
}

func (r *gormSnapshotRepository) Load(ctx context.Context) (*portals.Snapshot, error) {
	var model models.SnapshotModel
	if err := r.db.WithContext(ctx).Order("created_at desc").First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no persisted snapshot: %w", portals.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch snapshot: %w", err)
	}

	var collectionRows []*models.CollectionModel
	if err := r.db.WithContext(ctx).Where("snapshot_id = ?", model.ID).Find(&collectionRows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch snapshot collections: %w", err)
	}

	var bucketRows []*models.UsageBucketModel
	if err := r.db.WithContext(ctx).Where("snapshot_id = ?", model.ID).Find(&bucketRows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch snapshot usage buckets: %w", err)
	}

	snapshot := &portals.Snapshot{
		ID:               model.ID,
		CreatedAt:        model.CreatedAt,
		ChildrenByPortal: make(map[string][]*portals.Collection),
	}

	for _, row := range collectionRows {
		collection := row.ToDomain()
		if row.ParentID == "" {
			snapshot.Portals = append(snapshot.Portals, collection)
		} else {
			snapshot.ChildrenByPortal[row.ParentID] = append(snapshot.ChildrenByPortal[row.ParentID], collection)
		}
	}

	for _, row := range bucketRows {
		snapshot.UsageBuckets = append(snapshot.UsageBuckets, portals.Bucket{
			Key:      row.BucketKey,
			DocCount: row.DocCount,
		})
	}

	return snapshot, nil
}

func (r *gormSnapshotRepository) Clear(ctx context.Context) error {
	err := r.db.WithContext(ctx).Transaction(clearAll)
	if err != nil {
		return err
	}

	r.logger.Info("Cleared persisted cache snapshots")
	return nil
}

func clearAll(tx *gorm.DB) error {
	if err := tx.Where("1 = 1").Delete(&models.UsageBucketModel{}).Error; err != nil {
		return fmt.Errorf("failed to clear usage buckets: %w", err)
	}
	if err := tx.Where("1 = 1").Delete(&models.CollectionModel{}).Error; err != nil {
		return fmt.Errorf("failed to clear snapshot collections: %w", err)
	}
	if err := tx.Where("1 = 1").Delete(&models.SnapshotModel{}).Error; err != nil {
		return fmt.Errorf("failed to clear snapshots: %w", err)
	}
	return nil
}
