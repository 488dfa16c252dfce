package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openeduhub/metaqs/internal/domain/portals"
)

// CacheHandler defines the interface for handling cache admin operations
type CacheHandler interface {
	Refresh(ctx *gin.Context)
	Status(ctx *gin.Context)
}

// cacheHandler struct holds the services
type cacheHandler struct {
	cacheService portals.CacheService
}

// NewCacheHandler creates a new CacheHandler
func NewCacheHandler(cacheService portals.CacheService) CacheHandler {
	return &cacheHandler{
		cacheService: cacheService,
	}
}

// Refresh handles the POST request to rebuild the portal cache
// @Summary Rebuild the portal cache
// @Description Rebuild the portal snapshot from the live backends and persist it.
// @Tags Cache
// @Accept json
// @Produce json
// @Success 200 {object} CacheStatusResponse
// @Failure 502 {object} ErrorResponse
// @Router /cache/refresh [post]
func (handler *cacheHandler) Refresh(ctx *gin.Context) {
	snapshot, err := handler.cacheService.Refresh(ctx)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("error refreshing cache: %v", err.Error())
		ctx.JSON(http.StatusBadGateway, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, CacheStatusResponse{
		Warm:         true,
		SnapshotID:   snapshot.ID,
		CreatedAt:    snapshot.CreatedAt,
		PortalCount:  len(snapshot.Portals),
		ChildrenSets: len(snapshot.ChildrenByPortal),
	})
}

// Status handles the GET request for the cache status
// @Summary Describe the loaded cache snapshot
// @Description Fetch the ID, age and size of the currently loaded portal snapshot.
// @Tags Cache
// @Accept json
// @Produce json
// @Success 200 {object} CacheStatusResponse
// @Router /cache/status [get]
func (handler *cacheHandler) Status(ctx *gin.Context) {
	status, err := handler.cacheService.Status(ctx)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("error reading cache status: %v", err.Error())
		ctx.JSON(http.StatusInternalServerError, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, CacheStatusResponse{
		Warm:         status.Warm,
		SnapshotID:   status.SnapshotID,
		CreatedAt:    status.CreatedAt,
		PortalCount:  status.PortalCount,
		ChildrenSets: status.ChildrenSets,
	})
}
