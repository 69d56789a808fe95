package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sitecraft/agency-backend/internal/models"
	"github.com/sitecraft/agency-backend/internal/pkg/apperror"
	"github.com/sitecraft/agency-backend/internal/repository"
)

// mockScheduleStore реализует ScheduleStore в памяти.
type mockScheduleStore struct {
	schedules map[uuid.UUID]*models.CallSchedule
}

func newMockScheduleStore() *mockScheduleStore {
	return &mockScheduleStore{schedules: make(map[uuid.UUID]*models.CallSchedule)}
}

func (m *mockScheduleStore) Create(ctx context.Context, s *models.CallSchedule) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	copied := *s
	m.schedules[s.ID] = &copied
	return nil
}

func (m *mockScheduleStore) GetByID(ctx context.Context, id uuid.UUID) (*models.CallSchedule, error) {
	if s, ok := m.schedules[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, repository.ErrScheduleNotFound
}

func (m *mockScheduleStore) List(ctx context.Context, from, to *time.Time) ([]models.CallSchedule, error) {
	var out []models.CallSchedule
	for _, s := range m.schedules {
		if from != nil && s.ScheduledAt.Before(*from) {
			continue
		}
		if to != nil && s.ScheduledAt.After(*to) {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (m *mockScheduleStore) Update(ctx context.Context, s *models.CallSchedule) error {
	if _, ok := m.schedules[s.ID]; !ok {
		return repository.ErrScheduleNotFound
	}
	copied := *s
	m.schedules[s.ID] = &copied
	return nil
}

func (m *mockScheduleStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.schedules[id]; !ok {
		return repository.ErrScheduleNotFound
	}
	delete(m.schedules, id)
	return nil
}

func newScheduleService(store *mockScheduleStore) *ScheduleService {
	svc := NewScheduleService(store)
	svc.now = func() time.Time {
		return time.Date(2025, time.August, 12, 10, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestScheduleService_Create(t *testing.T) {
	store := newMockScheduleStore()
	svc := newScheduleService(store)

	sched, err := svc.Create(context.Background(), ScheduleInput{
		ClientName:  "Мария Иванова",
		ClientPhone: "+7 900 123-45-67",
		ScheduledAt: time.Date(2025, time.August, 15, 14, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create вернул ошибку: %v", err)
	}

	if sched.Status != models.CallStatusPending {
		t.Fatalf("новая запись должна быть pending, получили %q", sched.Status)
	}
	if sched.ID == uuid.Nil {
		t.Fatalf("идентификатор должен быть установлен")
	}
}

func TestScheduleService_CreateInPast(t *testing.T) {
	svc := newScheduleService(newMockScheduleStore())

	_, err := svc.Create(context.Background(), ScheduleInput{
		ClientName:  "Мария Иванова",
		ClientPhone: "+7 900 123-45-67",
		ScheduledAt: time.Date(2025, time.August, 1, 14, 0, 0, 0, time.UTC),
	})
	if !apperror.IsValidation(err) {
		t.Fatalf("запись в прошлое должна отклоняться, получили %v", err)
	}
}

func TestScheduleService_UpdateStatus(t *testing.T) {
	store := newMockScheduleStore()
	svc := newScheduleService(store)

	sched, err := svc.Create(context.Background(), ScheduleInput{
		ClientName:  "Мария Иванова",
		ClientPhone: "+7 900 123-45-67",
		ScheduledAt: time.Date(2025, time.August, 15, 14, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create вернул ошибку: %v", err)
	}

	confirmed := models.CallStatusConfirmed
	updated, err := svc.Update(context.Background(), sched.ID, ScheduleUpdateInput{Status: &confirmed})
	if err != nil {
		t.Fatalf("update вернул ошибку: %v", err)
	}
	if updated.Status != models.CallStatusConfirmed {
		t.Fatalf("статус не обновился")
	}

	bogus := "maybe"
	if _, err := svc.Update(context.Background(), sched.ID, ScheduleUpdateInput{Status: &bogus}); !apperror.IsValidation(err) {
		t.Fatalf("неизвестный статус должен отклоняться, получили %v", err)
	}
}

func TestScheduleService_ListInterval(t *testing.T) {
	store := newMockScheduleStore()
	svc := newScheduleService(store)

	for day := 13; day <= 17; day++ {
		_, err := svc.Create(context.Background(), ScheduleInput{
			ClientName:  "Мария Иванова",
			ClientPhone: "+7 900 123-45-67",
			ScheduledAt: time.Date(2025, time.August, day, 14, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("create вернул ошибку: %v", err)
		}
	}

	from := time.Date(2025, time.August, 14, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.August, 16, 0, 0, 0, 0, time.UTC)
	list, err := svc.List(context.Background(), &from, &to)
	if err != nil {
		t.Fatalf("list вернул ошибку: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("ожидалось 2 записи в интервале, получили %d", len(list))
	}

	if _, err := svc.List(context.Background(), &to, &from); !apperror.IsValidation(err) {
		t.Fatalf("перевёрнутый интервал должен отклоняться, получили %v", err)
	}
}

func TestScheduleService_Delete(t *testing.T) {
	store := newMockScheduleStore()
	svc := newScheduleService(store)

	sched, err := svc.Create(context.Background(), ScheduleInput{
		ClientName:  "Мария Иванова",
		ClientPhone: "+7 900 123-45-67",
		ScheduledAt: time.Date(2025, time.August, 15, 14, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create вернул ошибку: %v", err)
	}

	if err := svc.Delete(context.Background(), sched.ID); err != nil {
		t.Fatalf("delete вернул ошибку: %v", err)
	}
	if err := svc.Delete(context.Background(), sched.ID); !errors.Is(err, apperror.ErrScheduleNotFound) {
		t.Fatalf("повторное удаление должно давать not found, получили %v", err)
	}
}
