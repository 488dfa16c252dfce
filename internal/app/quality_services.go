package app

import (
	"context"
	"fmt"

	"github.com/openeduhub/metaqs/internal/domain/portals"
	"github.com/openeduhub/metaqs/internal/pkg/logger"
)

// portalQualityService implements the PortalQualityService interface
type portalQualityService struct {
	searchRepo portals.CollectionSearchRepository
	logger     logger.Logger
}

// NewPortalQualityService creates a new portalQualityService instance
func NewPortalQualityService(
	searchRepo portals.CollectionSearchRepository,
	logger logger.Logger,
) (portals.PortalQualityService, error) {
	return &portalQualityService{
		searchRepo: searchRepo,
		logger:     logger,
	}, nil
}

// MissingAttribute reports the resources of a portal that lack the given
// attribute.
func (s *portalQualityService) MissingAttribute(ctx context.Context, id, attribute, mode string) (*portals.MissingAttributeReport, error) {
	if attribute == "" {
		return nil, fmt.Errorf("attribute must not be empty")
	}

	var resources []portals.Resource
	var total int64
	var err error
	switch mode {
	case portals.ModeCollections:
		resources, total, err = s.searchRepo.CollectionsMissingAttribute(ctx, id, attribute)
	case portals.ModeMaterials, "":
		mode = portals.ModeMaterials
		resources, total, err = s.searchRepo.MaterialsMissingAttribute(ctx, id, attribute)
	default:
		return nil, fmt.Errorf("unsupported mode: %s", mode)
	}
	if err != nil {
		return nil, err
	}

	return &portals.MissingAttributeReport{
		PortalID:  id,
		Attribute: attribute,
		Mode:      mode,
		Total:     total,
		Resources: resources,
	}, nil
}

// LicenseSummary aggregates the license attribute over the resources of a
// portal and lists the resources without a usable license.
func (s *portalQualityService) LicenseSummary(ctx context.Context, id string) (*portals.LicenseSummary, error) {
	buckets, total, err := s.searchRepo.CountsByAttribute(ctx, id, portals.LicenseAttribute)
	if err != nil {
		return nil, err
	}

	missing, err := s.searchRepo.MaterialsWithoutLicense(ctx, id)
	if err != nil {
		return nil, err
	}

	return &portals.LicenseSummary{
		PortalID:                id,
		Total:                   total,
		Licenses:                buckets,
		ResourcesMissingLicense: missing,
	}, nil
}
