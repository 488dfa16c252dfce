package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/openeduhub/metaqs/internal/app"
	"github.com/openeduhub/metaqs/internal/domain/portals"
	"github.com/openeduhub/metaqs/internal/infrastructure/cache"
	"github.com/openeduhub/metaqs/internal/infrastructure/edusharing"
	"github.com/openeduhub/metaqs/internal/infrastructure/persistence"
	"github.com/openeduhub/metaqs/internal/infrastructure/search"
	"github.com/openeduhub/metaqs/internal/pkg/config"
	"github.com/openeduhub/metaqs/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// CacheCommandHandler encapsulates logic for managing the portal snapshot cache via CLI.
type CacheCommandHandler struct {
	cacheService portals.CacheService
	logger       logger.Logger
}

// NewCacheCommandHandler initializes and returns a CacheCommandHandler instance with
// configured logger, snapshot store and cache service.
func NewCacheCommandHandler() (*CacheCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	esClient, err := search.NewClient(&cfg.Elasticsearch, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create search client: %w", err)
	}

	collectionRepo, err := search.NewCollectionSearchRepository(esClient, cfg.Elasticsearch.WorkspaceIndex, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection search repository: %w", err)
	}

	editorialClient, err := edusharing.NewClient(&cfg.EduSharing, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create edu-sharing client: %w", err)
	}

	store, err := buildSnapshotStore(cfg, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize snapshot store: %w", err)
	}

	holder := app.NewSnapshotHolder()
	cacheService, err := app.NewCacheService(editorialClient, collectionRepo, store, holder, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache service: %w", err)
	}

	return &CacheCommandHandler{
		cacheService: cacheService,
		logger:       loggerInstance,
	}, nil
}

// buildSnapshotStore selects the configured snapshot store backend
func buildSnapshotStore(cfg *config.RestConfig, log logger.Logger) (portals.SnapshotStore, error) {
	switch cfg.Cache.Store {
	case config.CacheStoreRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return cache.NewRedisSnapshotRepository(ctx, &cfg.Cache, log)
	case config.CacheStoreDatabase:
		db, err := persistence.NewDBConnection(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to create db connection: %w", err)
		}
		return persistence.NewGormSnapshotRepository(db, log)
	default:
		return nil, fmt.Errorf("unsupported snapshot store: %s", cfg.Cache.Store)
	}
}

// BuildCacheCmd rebuilds the portal snapshot from the live backends and persists it
func (commandHandler *CacheCommandHandler) BuildCacheCmd(cmd *cobra.Command, _ []string) {
	snapshot, err := commandHandler.cacheService.Refresh(cmd.Context())
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Snapshot ", snapshot.ID, " built with ", len(snapshot.Portals), " portals")
}

// CacheStatusCmd loads the persisted snapshot and prints its metadata
func (commandHandler *CacheCommandHandler) CacheStatusCmd(cmd *cobra.Command, _ []string) {
	if err := commandHandler.cacheService.Warmup(cmd.Context()); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	status, err := commandHandler.cacheService.Status(cmd.Context())
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if err := printJSON(status); err != nil {
		commandHandler.logger.Error(err)
	}
}

// ClearCacheCmd deletes the persisted snapshot
func (commandHandler *CacheCommandHandler) ClearCacheCmd(cmd *cobra.Command, _ []string) {
	if err := commandHandler.cacheService.Clear(cmd.Context()); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Snapshot cache cleared")
}

// InitCacheCommands registers cache-related commands
func InitCacheCommands(rootCmd *cobra.Command) error {
	handler, err := NewCacheCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create cache command handler %w", err)
	}

	var buildCacheCmd = &cobra.Command{
		Use:   "build-cache",
		Short: "Rebuild the portal snapshot cache",
		Run:   handler.BuildCacheCmd,
	}
	rootCmd.AddCommand(buildCacheCmd)

	var cacheStatusCmd = &cobra.Command{
		Use:   "cache-status",
		Short: "Describe the persisted portal snapshot",
		Run:   handler.CacheStatusCmd,
	}
	rootCmd.AddCommand(cacheStatusCmd)

	var clearCacheCmd = &cobra.Command{
		Use:   "clear-cache",
		Short: "Delete the persisted portal snapshot",
		Run:   handler.ClearCacheCmd,
	}
	rootCmd.AddCommand(clearCacheCmd)

	return nil
}
