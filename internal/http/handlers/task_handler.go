package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sitecraft/agency-backend/internal/dto"
	"github.com/sitecraft/agency-backend/internal/http/handlers/common"
	"github.com/sitecraft/agency-backend/internal/repository"
	"github.com/sitecraft/agency-backend/internal/service"
)

// TaskHandler обслуживает заявки: публичную подачу и работу в портале.
type TaskHandler struct {
	tasks *service.TaskService
}

// NewTaskHandler создаёт хэндлер.
func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// Create обрабатывает POST /api/tasks — публичную форму заявки.
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), service.TaskInput{
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ClientPhone: req.ClientPhone,
		Description: req.Description,
		WebsiteType: req.WebsiteType,
		Complexity:  req.Complexity,
		Features:    req.Features,
		SupportPlan: req.SupportPlan,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewTaskResponse(task))
}

// List обрабатывает GET /api/admin/tasks.
func (h *TaskHandler) List(c *gin.Context) {
	filter := repository.TaskFilter{
		Status: c.Query("status"),
		Limit:  queryInt(c, "limit", 50),
		Offset: queryInt(c, "offset", 0),
	}

	if raw := c.Query("assigned_to"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "assigned_to должен быть валидным UUID"})
			return
		}
		filter.AssignedTo = &id
	}

	tasks, err := h.tasks.List(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.PaginatedTasksResponse{
		Tasks:  tasks,
		Total:  len(tasks),
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

// Get обрабатывает GET /api/admin/tasks/:id.
func (h *TaskHandler) Get(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTaskResponse(task))
}

// Update обрабатывает PUT /api/admin/tasks/:id.
func (h *TaskHandler) Update(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), id, service.TaskInput{
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ClientPhone: req.ClientPhone,
		Description: req.Description,
		WebsiteType: req.WebsiteType,
		Complexity:  req.Complexity,
		Features:    req.Features,
		SupportPlan: req.SupportPlan,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTaskResponse(task))
}

// UpdateStatus обрабатывает PATCH /api/admin/tasks/:id/status.
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req dto.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.tasks.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTaskResponse(task))
}

// Assign обрабатывает PATCH /api/admin/tasks/:id/assignee.
func (h *TaskHandler) Assign(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req dto.AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.tasks.Assign(c.Request.Context(), id, req.EmployeeID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTaskResponse(task))
}

// Delete обрабатывает DELETE /api/admin/tasks/:id.
func (h *TaskHandler) Delete(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// queryInt читает целочисленный query-параметр со значением по умолчанию.
func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}
