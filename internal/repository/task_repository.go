package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sitecraft/agency-backend/internal/models"
)

// ErrTaskNotFound возвращается, когда заявка не найдена.
var ErrTaskNotFound = errors.New("task not found")

// TaskFilter описывает условия выборки заявок.
type TaskFilter struct {
	Status     string
	AssignedTo *uuid.UUID
	Limit      int
	Offset     int
}

// TaskRepository отвечает за работу с таблицами tasks и task_attachments.
type TaskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository создаёт экземпляр репозитория.
func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `
	id, client_name, client_email, client_phone, description,
	website_type, complexity, features, support_plan,
	budget, estimated_timeline, estimated_delivery,
	status, assigned_to, created_at, updated_at
`

// Create сохраняет новую заявку.
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (client_name, client_email, client_phone, description,
			website_type, complexity, features, support_plan,
			budget, estimated_timeline, estimated_delivery, status, assigned_to)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		task.ClientName, task.ClientEmail, task.ClientPhone, task.Description,
		task.WebsiteType, task.Complexity, task.Features, task.SupportPlan,
		task.Budget, task.EstimatedTimeline, task.EstimatedDelivery,
		task.Status, task.AssignedTo,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt); err != nil {
		return fmt.Errorf("task repository: create %w", err)
	}

	return nil
}

// GetByID возвращает заявку по идентификатору.
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	if err := r.db.GetContext(ctx, &task, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("task repository: get by id %w", err)
	}

	return &task, nil
}

// List возвращает заявки по фильтру, от новых к старым.
func (r *TaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE 1=1`
	args := []interface{}{}
	argNum := 1

	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, filter.Status)
		argNum++
	}
	if filter.AssignedTo != nil {
		query += fmt.Sprintf(" AND assigned_to = $%d", argNum)
		args = append(args, *filter.AssignedTo)
		argNum++
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argNum)
		args = append(args, filter.Limit)
		argNum++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argNum)
		args = append(args, filter.Offset)
	}

	var tasks []models.Task
	if err := r.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("task repository: list %w", err)
	}

	return tasks, nil
}

// ListByAssignee возвращает все заявки сотрудника, любой статус.
func (r *TaskRepository) ListByAssignee(ctx context.Context, employeeID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE assigned_to = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &tasks, query, employeeID); err != nil {
		return nil, fmt.Errorf("task repository: list by assignee %w", err)
	}

	return tasks, nil
}

// Update обновляет заявку целиком.
func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks
		SET client_name = $2, client_email = $3, client_phone = $4, description = $5,
			website_type = $6, complexity = $7, features = $8, support_plan = $9,
			budget = $10, estimated_timeline = $11, estimated_delivery = $12,
			status = $13, assigned_to = $14, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	if err := r.db.QueryRowxContext(
		ctx, query,
		task.ID,
		task.ClientName, task.ClientEmail, task.ClientPhone, task.Description,
		task.WebsiteType, task.Complexity, task.Features, task.SupportPlan,
		task.Budget, task.EstimatedTimeline, task.EstimatedDelivery,
		task.Status, task.AssignedTo,
	).Scan(&task.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("task repository: update %w", err)
	}

	return nil
}

// UpdateStatus меняет статус заявки.
func (r *TaskRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE tasks SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("task repository: update status %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrTaskNotFound
	}

	return nil
}

// Assign назначает заявку сотруднику (nil снимает назначение).
func (r *TaskRepository) Assign(ctx context.Context, id uuid.UUID, employeeID *uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `UPDATE tasks SET assigned_to = $2, updated_at = NOW() WHERE id = $1`, id, employeeID)
	if err != nil {
		return fmt.Errorf("task repository: assign %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrTaskNotFound
	}

	return nil
}

// Delete удаляет заявку.
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("task repository: delete %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrTaskNotFound
	}

	return nil
}

// AddAttachment привязывает файл к заявке.
func (r *TaskRepository) AddAttachment(ctx context.Context, taskID, mediaID uuid.UUID) (*models.TaskAttachment, error) {
	var att models.TaskAttachment
	query := `
		INSERT INTO task_attachments (task_id, media_id)
		VALUES ($1, $2)
		ON CONFLICT (task_id, media_id) DO NOTHING
		RETURNING id, task_id, media_id, created_at
	`
	if err := r.db.GetContext(ctx, &att, query, taskID, mediaID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task repository: attachment already exists")
		}
		return nil, fmt.Errorf("task repository: add attachment %w", err)
	}

	return &att, nil
}

// ListAttachments возвращает файлы заявки вместе с метаданными.
func (r *TaskRepository) ListAttachments(ctx context.Context, taskID uuid.UUID) ([]models.TaskAttachment, error) {
	type row struct {
		models.TaskAttachment
		models.MediaFile `db:"media"`
	}

	query := `
		SELECT a.id, a.task_id, a.media_id, a.created_at,
			m.id AS "media.id", m.uploaded_by AS "media.uploaded_by",
			m.file_path AS "media.file_path", m.file_type AS "media.file_type",
			m.file_size AS "media.file_size", m.created_at AS "media.created_at"
		FROM task_attachments a
		JOIN media_files m ON m.id = a.media_id
		WHERE a.task_id = $1
		ORDER BY a.created_at
	`

	var rows []row
	if err := r.db.SelectContext(ctx, &rows, query, taskID); err != nil {
		return nil, fmt.Errorf("task repository: list attachments %w", err)
	}

	attachments := make([]models.TaskAttachment, 0, len(rows))
	for _, rw := range rows {
		att := rw.TaskAttachment
		media := rw.MediaFile
		att.Media = &media
		attachments = append(attachments, att)
	}

	return attachments, nil
}
