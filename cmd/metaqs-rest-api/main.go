// cmd/metaqs-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	v1 "github.com/openeduhub/metaqs/internal/api/rest/v1"
	"github.com/openeduhub/metaqs/internal/app"
	"github.com/openeduhub/metaqs/internal/domain/materials"
	"github.com/openeduhub/metaqs/internal/domain/portals"
	"github.com/openeduhub/metaqs/internal/infrastructure/cache"
	"github.com/openeduhub/metaqs/internal/infrastructure/edusharing"
	"github.com/openeduhub/metaqs/internal/infrastructure/persistence"
	"github.com/openeduhub/metaqs/internal/infrastructure/search"
	"github.com/openeduhub/metaqs/internal/pkg/config"
	"github.com/openeduhub/metaqs/internal/pkg/logger"
)

const docsPage = `<!DOCTYPE html>
<html>
<head>
  <title>MetaQS API</title>
  <meta charset="utf-8"/>
  <meta name="viewport" content="width=device-width, initial-scale=1">
</head>
<body>
  <redoc spec-url="%s/openapi.yaml"></redoc>
  <script src="https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"></script>
</body>
</html>`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	deps, err := initializeDependencies(restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	// Load or build the portal cache before serving
	warmupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	if err := deps.services.cache.Warmup(warmupCtx); err != nil {
		log.Warn("Cache warmup failed, serving from live backends: ", err)
	}

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	services *appServices
}

type appServices struct {
	catalog   portals.PortalCatalogService
	tree      portals.PortalTreeService
	quality   portals.PortalQualityService
	cache     portals.CacheService
	analytics materials.AnalyticsService
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.RestConfig, log logger.Logger) (*appDependencies, error) {
	// Initialize the search backend client and repositories
	esClient, err := search.NewClient(&cfg.Elasticsearch, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create search client: %w", err)
	}

	collectionRepo, err := search.NewCollectionSearchRepository(esClient, cfg.Elasticsearch.WorkspaceIndex, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection search repository: %w", err)
	}

	materialRepo, err := search.NewMaterialSearchRepository(esClient, cfg.Elasticsearch.WorkspaceIndex, cfg.Elasticsearch.AnalyticsIndex, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create material search repository: %w", err)
	}

	// Initialize the edu-sharing client
	editorialClient, err := edusharing.NewClient(&cfg.EduSharing, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create edu-sharing client: %w", err)
	}

	// Initialize the snapshot store
	store, err := initializeSnapshotStore(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize snapshot store: %w", err)
	}

	// Initialize services
	services, err := initializeApplicationServices(editorialClient, collectionRepo, materialRepo, store, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &appDependencies{services: services}, nil
}

// initializeSnapshotStore selects the configured snapshot store backend
func initializeSnapshotStore(cfg *config.RestConfig, log logger.Logger) (portals.SnapshotStore, error) {
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

// initializeApplicationServices sets up all application services
func initializeApplicationServices(
	editorialClient portals.EditorialClient,
	collectionRepo portals.CollectionSearchRepository,
	materialRepo materials.MaterialSearchRepository,
	store portals.SnapshotStore,
	log logger.Logger,
) (*appServices, error) {
	holder := app.NewSnapshotHolder()

	catalogService, err := app.NewPortalCatalogService(editorialClient, collectionRepo, holder, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create portal catalog service: %w", err)
	}

	treeService, err := app.NewPortalTreeService(collectionRepo, holder, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create portal tree service: %w", err)
	}

	qualityService, err := app.NewPortalQualityService(collectionRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create portal quality service: %w", err)
	}

	cacheService, err := app.NewCacheService(editorialClient, collectionRepo, store, holder, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache service: %w", err)
	}

	analyticsService, err := app.NewAnalyticsService(materialRepo, catalogService, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create analytics service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &appServices{
		catalog:   catalogService,
		tree:      treeService,
		quality:   qualityService,
		cache:     cacheService,
		analytics: analyticsService,
	}, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	// Setup router
	r := gin.Default()

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup API routes
	v1.SetupRoutes(r,
		deps.services.catalog,
		deps.services.tree,
		deps.services.quality,
		deps.services.cache,
		deps.services.analytics,
	)

	// Serve the OpenAPI spec and a docs page rendering it
	r.GET(v1.BasePath+"/openapi.yaml", func(c *gin.Context) {
		c.File("./api/openapi/v1/metaqs.yaml")
	})
	r.GET("/docs", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(fmt.Sprintf(docsPage, v1.BasePath)))
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server on port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal ", sig, ", initiating graceful shutdown")
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
