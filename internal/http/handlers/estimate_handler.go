package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sitecraft/agency-backend/internal/dto"
	"github.com/sitecraft/agency-backend/internal/estimator"
	"github.com/sitecraft/agency-backend/internal/service"
)

// EstimateHandler обслуживает публичный калькулятор стоимости:
// расчёт сметы без сохранения и выдачу прайс-листа для формы.
type EstimateHandler struct {
	tasks   *service.TaskService
	catalog *estimator.Catalog
}

// NewEstimateHandler создаёт хэндлер.
func NewEstimateHandler(tasks *service.TaskService, catalog *estimator.Catalog) *EstimateHandler {
	return &EstimateHandler{tasks: tasks, catalog: catalog}
}

// Estimate обрабатывает POST /api/estimate.
func (h *EstimateHandler) Estimate(c *gin.Context) {
	var req dto.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	est, err := h.tasks.Quote(service.TaskInput{
		WebsiteType: req.WebsiteType,
		Complexity:  req.Complexity,
		Features:    req.Features,
		SupportPlan: req.SupportPlan,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewEstimateResponse(est))
}

// Catalog обрабатывает GET /api/catalog.
func (h *EstimateHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, dto.CatalogResponse{
		WebsiteTypes: h.catalog.WebsiteTypes(),
		Complexities: h.catalog.Complexities(),
		Features:     h.catalog.Features(),
		SupportPlans: h.catalog.SupportPlans(),
	})
}
