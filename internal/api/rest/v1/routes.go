package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openeduhub/metaqs/internal/domain/materials"
	"github.com/openeduhub/metaqs/internal/domain/portals"
)

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine,
	catalogService portals.PortalCatalogService,
	treeService portals.PortalTreeService,
	qualityService portals.PortalQualityService,
	cacheService portals.CacheService,
	analyticsService materials.AnalyticsService) {

	v1 := r.Group(BasePath) // lookup in version file

	// Portal Routes
	portalHandler := NewPortalHandler(catalogService, treeService, qualityService)
	v1.GET("/portals", portalHandler.List)
	v1.GET("/portals/:id", portalHandler.GetByID)
	v1.GET("/portals/:id/children", portalHandler.Children)
	v1.GET("/portals/:id/license-summary", portalHandler.LicenseSummary)
	v1.GET("/portals/:id/missing/:attribute", portalHandler.MissingAttribute)

	// Analytics Routes
	analyticsHandler := NewAnalyticsHandler(analyticsService)
	v1.GET("/analytics/materials", analyticsHandler.Materials)

	// Cache Routes
	cacheHandler := NewCacheHandler(cacheService)
	v1.POST("/cache/refresh", cacheHandler.Refresh)
	v1.GET("/cache/status", cacheHandler.Status)

	// Liveness
	v1.GET("/ping", Ping)
	r.GET("/", Ping)
}

// Ping handles the liveness probe
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} InfoResponse
// @Router /ping [get]
func Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, InfoResponse{Message: "metaqs api is up"})
}
