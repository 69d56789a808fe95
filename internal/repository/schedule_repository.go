package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sitecraft/agency-backend/internal/models"
)

// ErrScheduleNotFound возвращается, когда запись на звонок не найдена.
var ErrScheduleNotFound = errors.New("call schedule not found")

// ScheduleRepository отвечает за работу с таблицей call_schedules.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository создаёт экземпляр репозитория.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

const scheduleColumns = `
	id, client_name, client_phone, client_email, task_id,
	scheduled_at, status, notes, created_at, updated_at
`

// Create сохраняет новую запись на звонок.
func (r *ScheduleRepository) Create(ctx context.Context, s *models.CallSchedule) error {
	query := `
		INSERT INTO call_schedules (client_name, client_phone, client_email, task_id, scheduled_at, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	if err := r.db.QueryRowxContext(
		ctx, query,
		s.ClientName, s.ClientPhone, s.ClientEmail, s.TaskID, s.ScheduledAt, s.Status, s.Notes,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return fmt.Errorf("schedule repository: create %w", err)
	}

	return nil
}

// GetByID возвращает запись по идентификатору.
func (r *ScheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.CallSchedule, error) {
	var s models.CallSchedule
	query := `SELECT ` + scheduleColumns + ` FROM call_schedules WHERE id = $1`
	if err := r.db.GetContext(ctx, &s, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScheduleNotFound
		}
		return nil, fmt.Errorf("schedule repository: get by id %w", err)
	}

	return &s, nil
}

// List возвращает записи в интервале дат, ближайшие первыми.
func (r *ScheduleRepository) List(ctx context.Context, from, to *time.Time) ([]models.CallSchedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM call_schedules WHERE 1=1`
	args := []interface{}{}
	argNum := 1

	if from != nil {
		query += fmt.Sprintf(" AND scheduled_at >= $%d", argNum)
		args = append(args, *from)
		argNum++
	}
	if to != nil {
		query += fmt.Sprintf(" AND scheduled_at < $%d", argNum)
		args = append(args, *to)
	}

	query += " ORDER BY scheduled_at"

	var schedules []models.CallSchedule
	if err := r.db.SelectContext(ctx, &schedules, query, args...); err != nil {
		return nil, fmt.Errorf("schedule repository: list %w", err)
	}

	return schedules, nil
}

// Update обновляет запись целиком.
func (r *ScheduleRepository) Update(ctx context.Context, s *models.CallSchedule) error {
	query := `
		UPDATE call_schedules
		SET client_name = $2, client_phone = $3, client_email = $4, task_id = $5,
			scheduled_at = $6, status = $7, notes = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	if err := r.db.QueryRowxContext(
		ctx, query,
		s.ID, s.ClientName, s.ClientPhone, s.ClientEmail, s.TaskID, s.ScheduledAt, s.Status, s.Notes,
	).Scan(&s.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrScheduleNotFound
		}
		return fmt.Errorf("schedule repository: update %w", err)
	}

	return nil
}

// Delete удаляет запись.
func (r *ScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM call_schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("schedule repository: delete %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}
