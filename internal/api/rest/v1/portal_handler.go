package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openeduhub/metaqs/internal/domain/portals"
)

// PortalHandler defines the interface for handling portal-related operations
type PortalHandler interface {
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Children(ctx *gin.Context)
	LicenseSummary(ctx *gin.Context)
	MissingAttribute(ctx *gin.Context)
}

// portalHandler struct holds the services
type portalHandler struct {
	catalogService portals.PortalCatalogService
	treeService    portals.PortalTreeService
	qualityService portals.PortalQualityService
}

// NewPortalHandler creates a new PortalHandler
func NewPortalHandler(catalogService portals.PortalCatalogService, treeService portals.PortalTreeService, qualityService portals.PortalQualityService) PortalHandler {
	return &portalHandler{
		catalogService: catalogService,
		treeService:    treeService,
		qualityService: qualityService,
	}
}

// List handles the GET request to list all editorial portals
// @Summary List editorial portals
// @Description Fetch all editorial subject portals with their resource counts.
// @Tags Portal
// @Accept json
// @Produce json
// @Success 200 {array} CollectionResponse
// @Failure 502 {object} ErrorResponse
// @Router /portals [get]
func (handler *portalHandler) List(ctx *gin.Context) {
	portalList, err := handler.catalogService.List(ctx)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("error listing portals: %v", err.Error())
		ctx.JSON(http.StatusBadGateway, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, newCollectionListResponse(portalList))
}

// GetByID handles the GET request to retrieve a portal by ID
// @Summary Retrieve a portal by ID
// @Description Fetch a single portal or collection node, including its resource count.
// @Tags Portal
// @Accept json
// @Produce json
// @Param id path string true "Portal ID"
// @Success 200 {object} CollectionResponse
// @Failure 404 {object} ErrorResponse
// @Router /portals/{id} [get]
func (handler *portalHandler) GetByID(ctx *gin.Context) {
	portalID := ctx.Param("id")

	portal, err := handler.catalogService.GetByID(ctx, portalID)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("portal with id %s not found", portalID)
		status := http.StatusNotFound
		if !errors.Is(err, portals.ErrNotFound) {
			errorResponse.Message = fmt.Sprintf("error fetching portal %s: %v", portalID, err.Error())
			status = http.StatusBadGateway
		}
		ctx.JSON(status, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, newCollectionResponse(portal))
}

// Children handles the GET request to list the child collections of a portal
// @Summary List the child collections of a portal
// @Description Fetch the collections below a portal, optionally keeping only those with at most max_resources resources, with sorting and pagination options.
// @Tags Portal
// @Accept json
// @Produce json
// @Param id path string true "Portal ID"
// @Param max_resources query int false "Keep only children with at most this many resources"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortBy query string false "Sort by a specific field"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Success 200 {object} ChildrenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /portals/{id}/children [get]
func (handler *portalHandler) Children(ctx *gin.Context) {
	portalID := ctx.Param("id")

	query := portals.NewCollectionQuery()

	if maxResources := ctx.Query("max_resources"); len(maxResources) > 0 {
		parsed, err := strconv.ParseInt(maxResources, 10, 64)
		if err != nil {
			var errorResponse ErrorResponse
			errorResponse.Message = fmt.Sprintf("invalid max_resources value: %v", err.Error())
			ctx.JSON(http.StatusBadRequest, errorResponse)
			return
		}
		query.MaxResources = &parsed
	}

	if limit := ctx.Query("limit"); len(limit) > 0 {
		parsed, err := strconv.Atoi(limit)
		if err != nil {
			var errorResponse ErrorResponse
			errorResponse.Message = fmt.Sprintf("invalid limit value: %v", err.Error())
			ctx.JSON(http.StatusBadRequest, errorResponse)
			return
		}
		query.Limit = parsed
	}

	if offset := ctx.Query("offset"); len(offset) > 0 {
		parsed, err := strconv.Atoi(offset)
		if err != nil {
			var errorResponse ErrorResponse
			errorResponse.Message = fmt.Sprintf("invalid offset value: %v", err.Error())
			ctx.JSON(http.StatusBadRequest, errorResponse)
			return
		}
		query.Offset = parsed
	}

	if sortBy := ctx.Query("sortBy"); len(sortBy) > 0 {
		query.SortBy = sortBy
	}

	if sortOrder := ctx.Query("sortOrder"); len(sortOrder) > 0 {
		query.SortOrder = sortOrder
	}

	if err := query.Validate(); err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("validation failed: %v", err.Error())
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	portal, err := handler.catalogService.GetByID(ctx, portalID)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("portal with id %s not found", portalID)
		status := http.StatusNotFound
		if !errors.Is(err, portals.ErrNotFound) {
			errorResponse.Message = fmt.Sprintf("error fetching portal %s: %v", portalID, err.Error())
			status = http.StatusBadGateway
		}
		ctx.JSON(status, errorResponse)
		return
	}

	children, err := handler.treeService.Children(ctx, portalID, query)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("error fetching children of %s: %v", portalID, err.Error())
		ctx.JSON(http.StatusBadGateway, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, ChildrenResponse{
		ID:       newCollectionResponse(portal),
		Children: newCollectionListResponse(children),
	})
}

// LicenseSummary handles the GET request for the license aggregation of a portal
// @Summary Aggregate licenses over the resources of a portal
// @Description Fetch the license distribution of a portal's resources and the resources without a usable license.
// @Tags Portal
// @Accept json
// @Produce json
// @Param id path string true "Portal ID"
// @Success 200 {object} LicenseSummaryResponse
// @Failure 502 {object} ErrorResponse
// @Router /portals/{id}/license-summary [get]
func (handler *portalHandler) LicenseSummary(ctx *gin.Context) {
	portalID := ctx.Param("id")

	summary, err := handler.qualityService.LicenseSummary(ctx, portalID)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("error summarizing licenses of %s: %v", portalID, err.Error())
		ctx.JSON(http.StatusBadGateway, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, LicenseSummaryResponse{
		PortalID:                summary.PortalID,
		Total:                   summary.Total,
		Licenses:                newBucketListResponse(summary.Licenses),
		ResourcesMissingLicense: newResourceListResponse(summary.ResourcesMissingLicense),
	})
}

// MissingAttribute handles the GET request for the missing-attribute report of a portal
// @Summary Report resources of a portal lacking an attribute
// @Description Fetch the collection nodes or materials of a portal that lack the given metadata attribute entirely.
// @Tags Portal
// @Accept json
// @Produce json
// @Param id path string true "Portal ID"
// @Param attribute path string true "Metadata attribute, e.g. properties.cm:description"
// @Param mode query string false "Report mode (collections/materials)"
// @Success 200 {object} MissingAttributeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /portals/{id}/missing/{attribute} [get]
func (handler *portalHandler) MissingAttribute(ctx *gin.Context) {
	portalID := ctx.Param("id")
	attribute := ctx.Param("attribute")
	mode := ctx.Query("mode")

	if mode != "" && mode != portals.ModeCollections && mode != portals.ModeMaterials {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("unsupported mode: %s", mode)
		ctx.JSON(http.StatusBadRequest, errorResponse)
		return
	}

	report, err := handler.qualityService.MissingAttribute(ctx, portalID, attribute, mode)
	if err != nil {
		var errorResponse ErrorResponse
		errorResponse.Message = fmt.Sprintf("error building missing-attribute report for %s: %v", portalID, err.Error())
		ctx.JSON(http.StatusBadGateway, errorResponse)
		return
	}

	ctx.JSON(http.StatusOK, MissingAttributeResponse{
		PortalID:  report.PortalID,
		Attribute: report.Attribute,
		Mode:      report.Mode,
		Total:     report.Total,
		Resources: newResourceListResponse(report.Resources),
	})
}
