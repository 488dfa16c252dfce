package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openeduhub/metaqs/internal/domain/materials"
)

// AnalyticsHandler defines the interface for handling search analytics operations
type AnalyticsHandler interface {
	Materials(ctx *gin.Context)
}

// analyticsHandler struct holds the services
type analyticsHandler struct {
	analyticsService materials.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService materials.AnalyticsService) AnalyticsHandler {
	return &analyticsHandler{
		analyticsService: analyticsService,
	}
}

// Materials handles the GET request for clicked search results grouped by portal
// @Summary List clicked search results grouped by portal
// @Description Refresh the search analytics state and fetch the clicked materials of one portal, or of all portals when portal_id is absent.
// @Tags Analytics
// @Accept json
// @Produce json
// @Param portal_id query string false "Portal ID"
// @Success 200 {object} MaterialsByPortalResponse
// @Failure 502 {object} ErrorResponse
// @Router /analytics/materials [get]
func (handler *analyticsHandler) Materials(ctx *gin.Context) {
	if err := handler.analyticsService.Refresh(ctx); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("error refreshing search analytics: %v", err.Error())
		ctx.JSON(http.StatusBadGateway, errorResponse)
		return
	}

	grouped := handler.analyticsService.MaterialsByPortal(ctx.Query("portal_id"))

	response := MaterialsByPortalResponse{
		MaterialsByPortal: make(map[string][]MaterialResponse, len(grouped)),
	}
	for portalID, group := range grouped {
		groupResponse := []MaterialResponse{}
		for _, material := range group {
			groupResponse = append(groupResponse, newMaterialResponse(material))
		}
		response.MaterialsByPortal[portalID] = groupResponse
	}

	ctx.JSON(http.StatusOK, response)
}
