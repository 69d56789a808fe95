package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"

	"github.com/sitecraft/agency-backend/internal/models"
	"github.com/sitecraft/agency-backend/internal/payout"
	"github.com/sitecraft/agency-backend/internal/pkg/apperror"
	"github.com/sitecraft/agency-backend/internal/repository"
	"github.com/sitecraft/agency-backend/internal/validation"
)

// EmployeeRepository описывает зависимости EmployeeService от хранилища
// пользователей.
type EmployeeRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListEmployees(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// AssignedTaskLister загружает заявки, назначенные сотруднику.
type AssignedTaskLister interface {
	ListByAssignee(ctx context.Context, employeeID uuid.UUID) ([]models.Task, error)
}

// EmployeeService управляет справочником сотрудников и считает выплаты.
type EmployeeService struct {
	repo  EmployeeRepository
	tasks AssignedTaskLister
}

// CreateEmployeeInput содержит данные новой учётной записи сотрудника.
type CreateEmployeeInput struct {
	Email    string
	Password string
	FullName string
	Position string
	Phone    string
}

// UpdateEmployeeInput содержит изменяемые поля профиля; nil — без изменений.
type UpdateEmployeeInput struct {
	FullName *string
	Position *string
	Phone    *string
	IsActive *bool
}

// PayoutProfile — профиль сотрудника с проектами и расчётом выплаты.
type PayoutProfile struct {
	Employee       *models.User
	ProjectDetails []models.Task
	PayoutDetails  payout.Result
}

// NewEmployeeService создаёт сервис сотрудников.
func NewEmployeeService(repo EmployeeRepository, tasks AssignedTaskLister) *EmployeeService {
	return &EmployeeService{repo: repo, tasks: tasks}
}

// Create регистрирует сотрудника. Доступно только администратору,
// проверка роли выполняется на уровне маршрутов.
func (s *EmployeeService) Create(ctx context.Context, in CreateEmployeeInput) (*models.User, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateFullName(in.FullName); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if in.Phone != "" {
		if err := validation.ValidatePhone(in.Phone); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, apperror.New(apperror.ErrCodeConflict, "email уже зарегистрирован")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("employee service: хеширование пароля %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Role:         models.RoleEmployee,
		IsActive:     true,
	}
	if in.Position != "" {
		user.Position = &in.Position
	}
	if in.Phone != "" {
		user.Phone = &in.Phone
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// List возвращает справочник сотрудников.
func (s *EmployeeService) List(ctx context.Context) ([]models.User, error) {
	return s.repo.ListEmployees(ctx)
}

// Get возвращает сотрудника по идентификатору.
func (s *EmployeeService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.getEmployee(ctx, id)
}

// Update изменяет профиль сотрудника.
func (s *EmployeeService) Update(ctx context.Context, id uuid.UUID, in UpdateEmployeeInput) (*models.User, error) {
	user, err := s.getEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.FullName != nil {
		if err := validation.ValidateFullName(*in.FullName); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
		user.FullName = *in.FullName
	}
	if in.Position != nil {
		if err := validation.ValidatePosition(in.Position); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
		user.Position = in.Position
	}
	if in.Phone != nil {
		if *in.Phone != "" {
			if err := validation.ValidatePhone(*in.Phone); err != nil {
				return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
			}
		}
		user.Phone = in.Phone
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Payout загружает назначенные сотруднику заявки и считает выплату.
// Уровень определяется общим числом проектов, сумма — только бюджетами
// завершённых.
func (s *EmployeeService) Payout(ctx context.Context, id uuid.UUID) (*PayoutProfile, error) {
	employee, err := s.getEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.ListByAssignee(ctx, id)
	if err != nil {
		return nil, err
	}

	infos := make([]payout.TaskInfo, len(tasks))
	for i, task := range tasks {
		infos[i] = payout.TaskInfo{Status: task.Status, Budget: task.Budget}
	}

	return &PayoutProfile{
		Employee:       employee,
		ProjectDetails: tasks,
		PayoutDetails:  payout.Compute(infos),
	}, nil
}

func (s *EmployeeService) getEmployee(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrEmployeeNotFound
		}
		return nil, err
	}
	if user.Role != models.RoleEmployee {
		return nil, apperror.ErrEmployeeNotFound
	}
	return user, nil
}
