package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sitecraft/agency-backend/internal/estimator"
	"github.com/sitecraft/agency-backend/internal/models"
	"github.com/sitecraft/agency-backend/internal/pkg/apperror"
	"github.com/sitecraft/agency-backend/internal/repository"
	"github.com/sitecraft/agency-backend/internal/validation"
)

// TaskStore описывает зависимости TaskService от слоя хранилища.
type TaskStore interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	List(ctx context.Context, filter repository.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Assign(ctx context.Context, id uuid.UUID, employeeID *uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddAttachment(ctx context.Context, taskID, mediaID uuid.UUID) (*models.TaskAttachment, error)
	ListAttachments(ctx context.Context, taskID uuid.UUID) ([]models.TaskAttachment, error)
}

// EmployeeStore проверяет существование сотрудника при назначении.
type EmployeeStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// TaskNotifier рассылает события по заявкам подключённым администраторам.
type TaskNotifier interface {
	TaskCreated(task *models.Task)
	TaskStatusChanged(task *models.Task, oldStatus string)
}

// TaskService инкапсулирует работу с заявками: валидацию, расчёт сметы
// и жизненный цикл статусов.
type TaskService struct {
	store    TaskStore
	users    EmployeeStore
	catalog  *estimator.Catalog
	notifier TaskNotifier
	now      func() time.Time
}

// TaskInput содержит данные заявки от клиента или администратора.
type TaskInput struct {
	ClientName  string
	ClientEmail string
	ClientPhone string
	Description string
	WebsiteType string
	Complexity  string
	Features    json.RawMessage
	SupportPlan string
}

// NewTaskService создаёт сервис заявок. notifier может быть nil.
func NewTaskService(store TaskStore, users EmployeeStore, catalog *estimator.Catalog, notifier TaskNotifier) *TaskService {
	return &TaskService{
		store:    store,
		users:    users,
		catalog:  catalog,
		notifier: notifier,
		now:      time.Now,
	}
}

// allowedTransitions — разрешённые переходы статусов заявки.
var allowedTransitions = map[string][]string{
	models.TaskStatusReceived:   {models.TaskStatusInProgress, models.TaskStatusRejected},
	models.TaskStatusInProgress: {models.TaskStatusCompleted, models.TaskStatusRejected},
	models.TaskStatusCompleted:  {},
	models.TaskStatusRejected:   {},
}

// Create проверяет входные данные, считает смету и сохраняет заявку.
func (s *TaskService) Create(ctx context.Context, in TaskInput) (*models.Task, error) {
	task := &models.Task{Status: models.TaskStatusReceived}
	if err := s.applyInput(task, in); err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, task); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.TaskCreated(task)
	}

	return task, nil
}

// Get возвращает заявку вместе с вложениями.
func (s *TaskService) Get(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	task, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, apperror.ErrTaskNotFound
		}
		return nil, err
	}

	attachments, err := s.store.ListAttachments(ctx, id)
	if err != nil {
		return nil, err
	}
	task.Attachments = attachments

	return task, nil
}

// List возвращает заявки по фильтру.
func (s *TaskService) List(ctx context.Context, filter repository.TaskFilter) ([]models.Task, error) {
	if filter.Status != "" {
		if _, ok := models.ValidTaskStatuses[filter.Status]; !ok {
			return nil, apperror.New(apperror.ErrCodeValidation, fmt.Sprintf("неизвестный статус %q", filter.Status))
		}
	}
	return s.store.List(ctx, filter)
}

// Update перезаписывает данные заявки и пересчитывает смету.
func (s *TaskService) Update(ctx context.Context, id uuid.UUID, in TaskInput) (*models.Task, error) {
	task, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, apperror.ErrTaskNotFound
		}
		return nil, err
	}

	if err := s.applyInput(task, in); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// UpdateStatus переводит заявку в новый статус с проверкой перехода.
func (s *TaskService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Task, error) {
	if _, ok := models.ValidTaskStatuses[status]; !ok {
		return nil, apperror.New(apperror.ErrCodeValidation, fmt.Sprintf("неизвестный статус %q", status))
	}

	task, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, apperror.ErrTaskNotFound
		}
		return nil, err
	}

	if task.Status == status {
		return task, nil
	}

	if !transitionAllowed(task.Status, status) {
		return nil, apperror.New(apperror.ErrCodeConflict,
			fmt.Sprintf("переход из %q в %q недопустим", task.Status, status))
	}

	if err := s.store.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	oldStatus := task.Status
	task.Status = status

	if s.notifier != nil {
		s.notifier.TaskStatusChanged(task, oldStatus)
	}

	return task, nil
}

// Assign назначает заявку сотруднику; nil снимает назначение.
func (s *TaskService) Assign(ctx context.Context, id uuid.UUID, employeeID *uuid.UUID) (*models.Task, error) {
	task, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, apperror.ErrTaskNotFound
		}
		return nil, err
	}

	if employeeID != nil {
		employee, err := s.users.GetByID(ctx, *employeeID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return nil, apperror.ErrEmployeeNotFound
			}
			return nil, err
		}
		if !employee.IsActive {
			return nil, apperror.New(apperror.ErrCodeConflict, "нельзя назначить деактивированного сотрудника")
		}
	}

	if err := s.store.Assign(ctx, id, employeeID); err != nil {
		return nil, err
	}
	task.AssignedTo = employeeID

	return task, nil
}

// Delete удаляет заявку.
func (s *TaskService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return apperror.ErrTaskNotFound
		}
		return err
	}
	return nil
}

// AttachMedia прикрепляет загруженный файл к заявке.
func (s *TaskService) AttachMedia(ctx context.Context, taskID, mediaID uuid.UUID) (*models.TaskAttachment, error) {
	if _, err := s.store.GetByID(ctx, taskID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, apperror.ErrTaskNotFound
		}
		return nil, err
	}
	return s.store.AddAttachment(ctx, taskID, mediaID)
}

// Quote считает смету по сырому запросу без сохранения. Используется
// публичным калькулятором на сайте.
func (s *TaskService) Quote(in TaskInput) (estimator.Estimate, error) {
	cfg, err := s.buildConfig(in)
	if err != nil {
		return estimator.Estimate{}, err
	}
	return s.estimate(cfg)
}

// applyInput валидирует и переносит входные данные на заявку,
// пересчитывая производные поля сметы.
func (s *TaskService) applyInput(task *models.Task, in TaskInput) error {
	if err := validation.ValidateClientName(in.ClientName); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateEmail(in.ClientEmail); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if in.ClientPhone != "" {
		if err := validation.ValidatePhone(in.ClientPhone); err != nil {
			return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
	}
	if err := validation.ValidateDescription(optional(in.Description)); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	cfg, err := s.buildConfig(in)
	if err != nil {
		return err
	}

	est, err := s.estimate(cfg)
	if err != nil {
		return err
	}

	task.ClientName = in.ClientName
	task.ClientEmail = in.ClientEmail
	task.ClientPhone = optional(in.ClientPhone)
	task.Description = optional(in.Description)
	task.WebsiteType = cfg.WebsiteType
	task.Complexity = cfg.Complexity
	task.SupportPlan = cfg.SupportPlan

	// Опции сохраняются в каноничной форме: отсортированный массив.
	features, err := json.Marshal(cfg.FeatureIDs)
	if err != nil {
		return fmt.Errorf("task service: кодирование опций %w", err)
	}
	task.Features = features

	task.Budget = est.TotalPrice
	task.EstimatedTimeline = est.TotalDays
	task.EstimatedDelivery = estimator.FormatDeliveryDate(est.DeliveryDate)

	return nil
}

// buildConfig нормализует опции и собирает конфигурацию для расчёта.
func (s *TaskService) buildConfig(in TaskInput) (estimator.Config, error) {
	featureIDs, err := estimator.DecodeFeatures(in.Features)
	if err != nil {
		return estimator.Config{}, apperror.Wrap(err, apperror.ErrCodeValidation, "поле features имеет неподдерживаемый формат")
	}

	supportPlan := in.SupportPlan
	if supportPlan == "" {
		supportPlan = s.catalog.DefaultConfig().SupportPlan
	}

	return estimator.Config{
		WebsiteType: in.WebsiteType,
		Complexity:  in.Complexity,
		FeatureIDs:  featureIDs,
		SupportPlan: supportPlan,
	}, nil
}

func (s *TaskService) estimate(cfg estimator.Config) (estimator.Estimate, error) {
	est, err := s.catalog.Estimate(cfg, s.now())
	if err != nil {
		var invalid *estimator.InvalidConfigError
		if errors.As(err, &invalid) {
			return estimator.Estimate{}, apperror.Wrap(err, apperror.ErrCodeValidation, invalid.Error())
		}
		return estimator.Estimate{}, err
	}
	return est, nil
}

func transitionAllowed(from, to string) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
