//go:build unit
// +build unit

package v1

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/openeduhub/metaqs/internal/domain/materials"
)

func TestAnalyticsHandler_Materials_Success(t *testing.T) {
	mockAnalyticsService := new(MockAnalyticsService)

	handler := NewAnalyticsHandler(mockAnalyticsService)

	material := &materials.Material{
		ID:            "res-1",
		Title:         "Optik Grundlagen",
		Clicks:        3,
		SearchStrings: map[string]int64{"optik": 2},
		Timestamp:     time.Now().UTC(),
		PortalIDs:     []string{"portal-1"},
	}

	mockAnalyticsService.
		On("Refresh", mock.Anything).
		Return(nil)
	mockAnalyticsService.
		On("MaterialsByPortal", "portal-1").
		Return(map[string][]*materials.Material{"portal-1": {material}})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/analytics/materials?portal_id=portal-1", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Materials(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "res-1")
	assert.Contains(t, w.Body.String(), "optik")
	mockAnalyticsService.AssertExpectations(t)
}

func TestAnalyticsHandler_Materials_AllPortals(t *testing.T) {
	mockAnalyticsService := new(MockAnalyticsService)

	handler := NewAnalyticsHandler(mockAnalyticsService)

	material := &materials.Material{ID: "res-1", Clicks: 1, Timestamp: time.Now().UTC()}

	mockAnalyticsService.
		On("Refresh", mock.Anything).
		Return(nil)
	mockAnalyticsService.
		On("MaterialsByPortal", "").
		Return(map[string][]*materials.Material{
			"portal-1":           {material},
			materials.PortalNone: {material},
		})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/analytics/materials", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Materials(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "portal-1")
	assert.Contains(t, w.Body.String(), materials.PortalNone)
	mockAnalyticsService.AssertExpectations(t)
}

func TestAnalyticsHandler_Materials_RefreshError(t *testing.T) {
	mockAnalyticsService := new(MockAnalyticsService)

	handler := NewAnalyticsHandler(mockAnalyticsService)

	mockAnalyticsService.
		On("Refresh", mock.Anything).
		Return(errors.New("analytics index unreachable"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/analytics/materials", nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Materials(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	mockAnalyticsService.AssertExpectations(t)
}
