package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sitecraft/agency-backend/internal/dto"
	"github.com/sitecraft/agency-backend/internal/http/handlers/common"
	"github.com/sitecraft/agency-backend/internal/service"
)

// ScheduleHandler обслуживает записи на консультационные звонки.
type ScheduleHandler struct {
	schedules *service.ScheduleService
}

// NewScheduleHandler создаёт хэндлер.
func NewScheduleHandler(schedules *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules}
}

// Create обрабатывает POST /api/schedules — публичную запись на звонок.
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req dto.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scheduled_at должен быть в формате RFC3339"})
		return
	}

	sched, err := h.schedules.Create(c.Request.Context(), service.ScheduleInput{
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		TaskID:      req.TaskID,
		ScheduledAt: scheduledAt,
		Notes:       req.Notes,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, sched)
}

// List обрабатывает GET /api/admin/schedules?from=...&to=...
func (h *ScheduleHandler) List(c *gin.Context) {
	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from должен быть в формате RFC3339"})
			return
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to должен быть в формате RFC3339"})
			return
		}
		to = &t
	}

	schedules, err := h.schedules.List(c.Request.Context(), from, to)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, schedules)
}

// Get обрабатывает GET /api/admin/schedules/:id.
func (h *ScheduleHandler) Get(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sched, err := h.schedules.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, sched)
}

// Update обрабатывает PATCH /api/admin/schedules/:id.
func (h *ScheduleHandler) Update(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req dto.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var in service.ScheduleUpdateInput
	if req.ScheduledAt != nil {
		t, err := time.Parse(time.RFC3339, *req.ScheduledAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "scheduled_at должен быть в формате RFC3339"})
			return
		}
		in.ScheduledAt = &t
	}
	in.Status = req.Status
	in.Notes = req.Notes

	sched, err := h.schedules.Update(c.Request.Context(), id, in)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, sched)
}

// Delete обрабатывает DELETE /api/admin/schedules/:id.
func (h *ScheduleHandler) Delete(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.schedules.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
