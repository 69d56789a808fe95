package ws

import (
	"github.com/sitecraft/agency-backend/internal/logger"
	"github.com/sitecraft/agency-backend/internal/models"
)

// TaskNotifier адаптирует хаб к событиям сервиса заявок.
type TaskNotifier struct {
	hub *Hub
}

// NewTaskNotifier создаёт адаптер событий заявок.
func NewTaskNotifier(hub *Hub) *TaskNotifier {
	return &TaskNotifier{hub: hub}
}

// TaskCreated рассылает событие о новой заявке.
func (n *TaskNotifier) TaskCreated(task *models.Task) {
	if err := n.hub.Broadcast("task.created", task); err != nil {
		logger.WithComponent("ws").WithField("task_id", task.ID).
			Errorf("не удалось разослать task.created: %v", err)
	}
}

// TaskStatusChanged рассылает событие о смене статуса заявки.
func (n *TaskNotifier) TaskStatusChanged(task *models.Task, oldStatus string) {
	payload := map[string]any{
		"task":       task,
		"old_status": oldStatus,
		"new_status": task.Status,
	}
	if err := n.hub.Broadcast("task.status_changed", payload); err != nil {
		logger.WithComponent("ws").WithField("task_id", task.ID).
			Errorf("не удалось разослать task.status_changed: %v", err)
	}
}
