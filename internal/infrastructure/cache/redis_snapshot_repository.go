// Package cache provides the redis-backed snapshot store for the portal
// cache, as an alternative to the database store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openeduhub/metaqs/internal/domain/portals"
	"github.com/openeduhub/metaqs/internal/pkg/config"
	"github.com/openeduhub/metaqs/internal/pkg/logger"
)

const snapshotKey = "metaqs:cache:snapshot"

type redisSnapshotRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// NewRedisSnapshotRepository creates a redis-based SnapshotStore
// implementation and verifies the connection
func NewRedisSnapshotRepository(ctx context.Context, settings *config.CacheSettings, log logger.Logger) (portals.SnapshotStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     settings.Redis.Addr,
		Username: settings.Redis.Username,
		Password: settings.Redis.Password,
		DB:       settings.Redis.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", settings.Redis.Addr, err)
	}

	return &redisSnapshotRepository{
		client: client,
		ttl:    time.Duration(settings.TTLMinutes) * time.Minute,
		logger: log,
	}, nil
}

func (r *redisSnapshotRepository) Save(ctx context.Context, snapshot *portals.Snapshot) error {
	if snapshot.ID == "" {
		return fmt.Errorf("snapshot id must not be empty")
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := r.client.Set(ctx, snapshotKey, payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}

	r.logger.Info("Persisted cache snapshot ", snapshot.ID, " with ", len(snapshot.Portals), " portals")
	return nil
}

func (r *redisSnapshotRepository) Load(ctx context.Context) (*portals.Snapshot, error) {
	payload, err := r.client.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("no persisted snapshot: %w", portals.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch snapshot: %w", err)
	}

	var snapshot portals.Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	return &snapshot, nil
}

func (r *redisSnapshotRepository) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, snapshotKey).Err(); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}

	r.logger.Info("Cleared persisted cache snapshots")
	return nil
}
