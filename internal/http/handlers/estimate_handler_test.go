package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/sitecraft/agency-backend/internal/dto"
	"github.com/sitecraft/agency-backend/internal/estimator"
	"github.com/sitecraft/agency-backend/internal/http/middleware"
	"github.com/sitecraft/agency-backend/internal/service"
)

func newEstimateRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	catalog := estimator.DefaultCatalog()
	tasks := service.NewTaskService(nil, nil, catalog, nil)
	handler := NewEstimateHandler(tasks, catalog)

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.POST("/api/estimate", handler.Estimate)
	r.GET("/api/catalog", handler.Catalog)
	return r
}

func TestEstimateHandler_Estimate_OK(t *testing.T) {
	r := newEstimateRouter()

	body := `{"website_type":"landing","complexity":"standard","features":["seo"],"support_plan":"basic"}`
	req, _ := http.NewRequest("POST", "/api/estimate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.EstimateResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Greater(t, resp.TotalPrice, 0.0)
	assert.Greater(t, resp.TotalDays, 0)
	assert.NotEmpty(t, resp.DeliveryDate)
}

func TestEstimateHandler_Estimate_UnknownWebsiteType(t *testing.T) {
	r := newEstimateRouter()

	body := `{"website_type":"spaceship","complexity":"standard","features":[],"support_plan":"none"}`
	req, _ := http.NewRequest("POST", "/api/estimate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEstimateHandler_Estimate_MalformedFeatures(t *testing.T) {
	r := newEstimateRouter()

	body := `{"website_type":"landing","complexity":"basic","features":42,"support_plan":"none"}`
	req, _ := http.NewRequest("POST", "/api/estimate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEstimateHandler_Catalog(t *testing.T) {
	r := newEstimateRouter()

	req, _ := http.NewRequest("GET", "/api/catalog", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.CatalogResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.WebsiteTypes, 6)
	assert.Len(t, resp.Complexities, 4)
	assert.NotEmpty(t, resp.Features)
	assert.NotEmpty(t, resp.SupportPlans)
}
