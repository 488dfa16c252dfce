//go:build unit
// +build unit

package v1

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/openeduhub/metaqs/internal/domain/materials"
	"github.com/openeduhub/metaqs/internal/domain/portals"
)

// MockPortalCatalogService is a mock implementation of PortalCatalogService
type MockPortalCatalogService struct {
	mock.Mock
}

func (m *MockPortalCatalogService) List(ctx context.Context) ([]*portals.Collection, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*portals.Collection), args.Error(1)
}

func (m *MockPortalCatalogService) GetByID(ctx context.Context, id string) (*portals.Collection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portals.Collection), args.Error(1)
}

// MockPortalTreeService is a mock implementation of PortalTreeService
type MockPortalTreeService struct {
	mock.Mock
}

func (m *MockPortalTreeService) Children(ctx context.Context, id string, query *portals.CollectionQuery) ([]*portals.Collection, error) {
	args := m.Called(ctx, id, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*portals.Collection), args.Error(1)
}

// MockPortalQualityService is a mock implementation of PortalQualityService
type MockPortalQualityService struct {
	mock.Mock
}

func (m *MockPortalQualityService) MissingAttribute(ctx context.Context, id, attribute, mode string) (*portals.MissingAttributeReport, error) {
	args := m.Called(ctx, id, attribute, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portals.MissingAttributeReport), args.Error(1)
}

func (m *MockPortalQualityService) LicenseSummary(ctx context.Context, id string) (*portals.LicenseSummary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portals.LicenseSummary), args.Error(1)
}

// MockCacheService is a mock implementation of CacheService
type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) Warmup(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) Refresh(ctx context.Context) (*portals.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portals.Snapshot), args.Error(1)
}

func (m *MockCacheService) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) Status(ctx context.Context) (*portals.CacheStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portals.CacheStatus), args.Error(1)
}

// MockAnalyticsService is a mock implementation of AnalyticsService
type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) Refresh(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAnalyticsService) MaterialsByPortal(portalID string) map[string][]*materials.Material {
	args := m.Called(portalID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(map[string][]*materials.Material)
}

func (m *MockAnalyticsService) SortedMaterials() []*materials.Material {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*materials.Material)
}
