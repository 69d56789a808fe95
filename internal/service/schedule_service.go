package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sitecraft/agency-backend/internal/models"
	"github.com/sitecraft/agency-backend/internal/pkg/apperror"
	"github.com/sitecraft/agency-backend/internal/repository"
	"github.com/sitecraft/agency-backend/internal/validation"
)

// ScheduleStore описывает зависимости ScheduleService от хранилища.
type ScheduleStore interface {
	Create(ctx context.Context, s *models.CallSchedule) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.CallSchedule, error)
	List(ctx context.Context, from, to *time.Time) ([]models.CallSchedule, error)
	Update(ctx context.Context, s *models.CallSchedule) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ScheduleService управляет записями на консультационные звонки.
type ScheduleService struct {
	store ScheduleStore
	now   func() time.Time
}

// ScheduleInput содержит данные записи на звонок.
type ScheduleInput struct {
	ClientName  string
	ClientPhone string
	ClientEmail string
	TaskID      *uuid.UUID
	ScheduledAt time.Time
	Notes       string
}

// ScheduleUpdateInput содержит изменяемые поля записи; nil — без изменений.
type ScheduleUpdateInput struct {
	ScheduledAt *time.Time
	Status      *string
	Notes       *string
}

// NewScheduleService создаёт сервис записей на звонки.
func NewScheduleService(store ScheduleStore) *ScheduleService {
	return &ScheduleService{store: store, now: time.Now}
}

// Create проверяет данные и сохраняет запись со статусом pending.
func (s *ScheduleService) Create(ctx context.Context, in ScheduleInput) (*models.CallSchedule, error) {
	if err := validation.ValidateClientName(in.ClientName); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidatePhone(in.ClientPhone); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if in.ClientEmail != "" {
		if err := validation.ValidateEmail(in.ClientEmail); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
	}
	if in.ScheduledAt.Before(s.now()) {
		return nil, apperror.New(apperror.ErrCodeValidation, "нельзя записаться на прошедшее время")
	}

	sched := &models.CallSchedule{
		ClientName:  in.ClientName,
		ClientPhone: in.ClientPhone,
		ClientEmail: optional(in.ClientEmail),
		TaskID:      in.TaskID,
		ScheduledAt: in.ScheduledAt,
		Status:      models.CallStatusPending,
		Notes:       optional(in.Notes),
	}

	if err := s.store.Create(ctx, sched); err != nil {
		return nil, err
	}

	return sched, nil
}

// Get возвращает запись по идентификатору.
func (s *ScheduleService) Get(ctx context.Context, id uuid.UUID) (*models.CallSchedule, error) {
	sched, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			return nil, apperror.ErrScheduleNotFound
		}
		return nil, err
	}
	return sched, nil
}

// List возвращает записи, опционально ограниченные интервалом дат.
func (s *ScheduleService) List(ctx context.Context, from, to *time.Time) ([]models.CallSchedule, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, apperror.New(apperror.ErrCodeValidation, "конец интервала раньше начала")
	}
	return s.store.List(ctx, from, to)
}

// Update изменяет время, статус или заметки записи.
func (s *ScheduleService) Update(ctx context.Context, id uuid.UUID, in ScheduleUpdateInput) (*models.CallSchedule, error) {
	sched, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.ScheduledAt != nil {
		sched.ScheduledAt = *in.ScheduledAt
	}
	if in.Status != nil {
		if _, ok := models.ValidCallStatuses[*in.Status]; !ok {
			return nil, apperror.New(apperror.ErrCodeValidation, fmt.Sprintf("неизвестный статус звонка %q", *in.Status))
		}
		sched.Status = *in.Status
	}
	if in.Notes != nil {
		if err := validation.ValidateNotes(in.Notes); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
		sched.Notes = in.Notes
	}

	if err := s.store.Update(ctx, sched); err != nil {
		return nil, err
	}

	return sched, nil
}

// Delete удаляет запись.
func (s *ScheduleService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			return apperror.ErrScheduleNotFound
		}
		return err
	}
	return nil
}
