package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/sitecraft/agency-backend/internal/models"
	"github.com/sitecraft/agency-backend/internal/pkg/apperror"
	"github.com/sitecraft/agency-backend/internal/repository"
)

// mockEmployeeRepository реализует EmployeeRepository в памяти.
type mockEmployeeRepository struct {
	users map[uuid.UUID]*models.User
}

func newMockEmployeeRepository() *mockEmployeeRepository {
	return &mockEmployeeRepository{users: make(map[uuid.UUID]*models.User)}
}

func (m *mockEmployeeRepository) add(role string, active bool) *models.User {
	user := &models.User{
		ID:       uuid.New(),
		Email:    uuid.NewString() + "@example.com",
		FullName: "Анна Смирнова",
		Role:     role,
		IsActive: active,
	}
	m.users[user.ID] = user
	return user
}

func (m *mockEmployeeRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = uuid.New()
	m.users[user.ID] = user
	return nil
}

func (m *mockEmployeeRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockEmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockEmployeeRepository) ListEmployees(ctx context.Context) ([]models.User, error) {
	var out []models.User
	for _, user := range m.users {
		if user.Role == models.RoleEmployee {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (m *mockEmployeeRepository) Update(ctx context.Context, user *models.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	m.users[user.ID] = user
	return nil
}

// mockAssignedTasks отдаёт фиксированный список заявок сотрудника.
type mockAssignedTasks struct {
	tasks []models.Task
}

func (m *mockAssignedTasks) ListByAssignee(ctx context.Context, employeeID uuid.UUID) ([]models.Task, error) {
	return m.tasks, nil
}

func TestEmployeeService_Create(t *testing.T) {
	repo := newMockEmployeeRepository()
	svc := NewEmployeeService(repo, &mockAssignedTasks{})

	user, err := svc.Create(context.Background(), CreateEmployeeInput{
		Email:    "Dev@Example.com",
		Password: "Str0ngPass!",
		FullName: "Пётр Сидоров",
		Position: "Backend-разработчик",
	})
	if err != nil {
		t.Fatalf("create вернул ошибку: %v", err)
	}

	if user.Email != "dev@example.com" {
		t.Fatalf("email должен приводиться к нижнему регистру, получили %q", user.Email)
	}
	if user.Role != models.RoleEmployee {
		t.Fatalf("роль должна быть employee, получили %q", user.Role)
	}
	if !user.IsActive {
		t.Fatalf("новый сотрудник должен быть активен")
	}
	if user.PasswordHash == "Str0ngPass!" || user.PasswordHash == "" {
		t.Fatalf("пароль должен храниться хешем")
	}

	// Повторная регистрация того же email отклоняется
	_, err = svc.Create(context.Background(), CreateEmployeeInput{
		Email:    "dev@example.com",
		Password: "Str0ngPass!",
		FullName: "Пётр Сидоров",
	})
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperror.ErrCodeConflict {
		t.Fatalf("ожидался конфликт по email, получили %v", err)
	}
}

func TestEmployeeService_GetRejectsAdmin(t *testing.T) {
	repo := newMockEmployeeRepository()
	admin := repo.add(models.RoleAdmin, true)
	svc := NewEmployeeService(repo, &mockAssignedTasks{})

	if _, err := svc.Get(context.Background(), admin.ID); !errors.Is(err, apperror.ErrEmployeeNotFound) {
		t.Fatalf("администратор не должен находиться в справочнике сотрудников, получили %v", err)
	}
}

func TestEmployeeService_Update(t *testing.T) {
	repo := newMockEmployeeRepository()
	employee := repo.add(models.RoleEmployee, true)
	svc := NewEmployeeService(repo, &mockAssignedTasks{})

	name := "Анна Кузнецова"
	inactive := false
	updated, err := svc.Update(context.Background(), employee.ID, UpdateEmployeeInput{
		FullName: &name,
		IsActive: &inactive,
	})
	if err != nil {
		t.Fatalf("update вернул ошибку: %v", err)
	}
	if updated.FullName != name {
		t.Fatalf("ФИО не обновилось")
	}
	if updated.IsActive {
		t.Fatalf("сотрудник должен быть деактивирован")
	}
}

func TestEmployeeService_Payout(t *testing.T) {
	repo := newMockEmployeeRepository()
	employee := repo.add(models.RoleEmployee, true)

	// Пять проектов всего (уровень 3-6 → 30%), завершено два
	tasks := &mockAssignedTasks{tasks: []models.Task{
		{Status: models.TaskStatusCompleted, Budget: 10000},
		{Status: models.TaskStatusCompleted, Budget: 5000},
		{Status: models.TaskStatusInProgress, Budget: 7000},
		{Status: models.TaskStatusReceived, Budget: 3000},
		{Status: models.TaskStatusRejected, Budget: 9000},
	}}
	svc := NewEmployeeService(repo, tasks)

	profile, err := svc.Payout(context.Background(), employee.ID)
	if err != nil {
		t.Fatalf("payout вернул ошибку: %v", err)
	}

	details := profile.PayoutDetails
	if details.TotalProjects != 5 {
		t.Fatalf("все назначенные проекты входят в уровень: %d", details.TotalProjects)
	}
	if details.CompletedProjects != 2 {
		t.Fatalf("завершённых проектов должно быть 2, получили %d", details.CompletedProjects)
	}
	if details.PayoutPercentage != 30 {
		t.Fatalf("для пяти проектов ожидалось 30%%, получили %v", details.PayoutPercentage)
	}
	if details.TotalPayout != 4500 {
		t.Fatalf("выплата считается только с завершённых бюджетов: ожидалось 4500, получили %v", details.TotalPayout)
	}
	if len(profile.ProjectDetails) != 5 {
		t.Fatalf("профиль должен содержать все назначенные заявки")
	}
}

func TestEmployeeService_PayoutUnknownEmployee(t *testing.T) {
	svc := NewEmployeeService(newMockEmployeeRepository(), &mockAssignedTasks{})

	if _, err := svc.Payout(context.Background(), uuid.New()); !errors.Is(err, apperror.ErrEmployeeNotFound) {
		t.Fatalf("ожидалась ошибка о неизвестном сотруднике, получили %v", err)
	}
}
