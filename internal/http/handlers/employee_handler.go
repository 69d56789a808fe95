package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sitecraft/agency-backend/internal/dto"
	"github.com/sitecraft/agency-backend/internal/http/handlers/common"
	"github.com/sitecraft/agency-backend/internal/service"
)

// EmployeeHandler обслуживает справочник сотрудников и расчёт выплат.
type EmployeeHandler struct {
	employees *service.EmployeeService
}

// NewEmployeeHandler создаёт хэндлер.
func NewEmployeeHandler(employees *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employees: employees}
}

// Create обрабатывает POST /api/admin/employees.
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	employee, err := h.employees.Create(c.Request.Context(), service.CreateEmployeeInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Position: req.Position,
		Phone:    req.Phone,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, employee)
}

// List обрабатывает GET /api/admin/employees.
func (h *EmployeeHandler) List(c *gin.Context) {
	employees, err := h.employees.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, employees)
}

// Get обрабатывает GET /api/admin/employees/:id.
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	employee, err := h.employees.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, employee)
}

// Update обрабатывает PATCH /api/admin/employees/:id.
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	employee, err := h.employees.Update(c.Request.Context(), id, service.UpdateEmployeeInput{
		FullName: req.FullName,
		Position: req.Position,
		Phone:    req.Phone,
		IsActive: req.IsActive,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, employee)
}

// Payout обрабатывает GET /api/admin/employees/:id/payout — профиль
// сотрудника с проектами и расчётом выплаты.
func (h *EmployeeHandler) Payout(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.employees.Payout(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewEmployeePayoutResponse(
		profile.Employee, profile.ProjectDetails, &profile.PayoutDetails,
	))
}
