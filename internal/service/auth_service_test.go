package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sitecraft/agency-backend/internal/models"
	"github.com/sitecraft/agency-backend/internal/pkg/apperror"
	"github.com/sitecraft/agency-backend/internal/repository"
)

// mockAuthRepository реализует AuthRepository для тестов.
type mockAuthRepository struct {
	usersByEmail map[string]*models.User
	usersByID    map[uuid.UUID]*models.User
	sessions     map[string]*models.Session
}

func newMockAuthRepository() *mockAuthRepository {
	return &mockAuthRepository{
		usersByEmail: make(map[string]*models.User),
		usersByID:    make(map[uuid.UUID]*models.User),
		sessions:     make(map[string]*models.Session),
	}
}

func (m *mockAuthRepository) addUser(email, password, role string, active bool) *models.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "Test User",
		Role:         role,
		IsActive:     active,
	}
	m.usersByEmail[email] = user
	m.usersByID[user.ID] = user
	return user
}

func (m *mockAuthRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = uuid.New()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	m.usersByEmail[user.Email] = user
	m.usersByID[user.ID] = user
	return nil
}

func (m *mockAuthRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := m.usersByEmail[email]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockAuthRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := m.usersByID[id]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockAuthRepository) UpdateLastLoginAt(ctx context.Context, userID uuid.UUID) error {
	if user, ok := m.usersByID[userID]; ok {
		now := time.Now()
		user.LastLoginAt = &now
	}
	return nil
}

func (m *mockAuthRepository) CreateSession(ctx context.Context, session *models.Session) error {
	session.ID = uuid.New()
	session.CreatedAt = time.Now()
	m.sessions[session.RefreshToken] = session
	return nil
}

func (m *mockAuthRepository) GetSessionByToken(ctx context.Context, refreshToken string) (*models.Session, error) {
	if s, ok := m.sessions[refreshToken]; ok {
		return s, nil
	}
	return nil, repository.ErrSessionNotFound
}

func (m *mockAuthRepository) DeleteSession(ctx context.Context, refreshToken string) error {
	delete(m.sessions, refreshToken)
	return nil
}

func TestAuthService_Login(t *testing.T) {
	repo := newMockAuthRepository()
	repo.addUser("admin@example.com", "password123", models.RoleAdmin, true)

	tokenManager := NewTokenManager("access", "refresh", time.Minute, time.Hour)
	service := NewAuthService(repo, tokenManager)

	ctx := context.Background()
	res, err := service.Login(ctx, LoginInput{
		Email:    "admin@example.com",
		Password: "password123",
	}, map[string]string{"ip": "127.0.0.1", "user_agent": "go-test"})
	if err != nil {
		t.Fatalf("login вернул ошибку: %v", err)
	}

	if res.TokenPair.AccessToken == "" || res.TokenPair.RefreshToken == "" {
		t.Fatalf("ожидалась пара токенов")
	}

	if len(repo.sessions) != 1 {
		t.Fatalf("ожидалась одна сессия, получили %d", len(repo.sessions))
	}

	if res.User.LastLoginAt == nil {
		t.Fatalf("last_login_at должен быть обновлён")
	}

	claims, err := tokenManager.ParseAccess(res.TokenPair.AccessToken)
	if err != nil {
		t.Fatalf("access токен не распарсился: %v", err)
	}
	if claims.UserID != res.User.ID || claims.Role != models.RoleAdmin {
		t.Fatalf("клеймы не совпадают: %+v", claims)
	}
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	repo := newMockAuthRepository()
	repo.addUser("admin@example.com", "password123", models.RoleAdmin, true)

	service := NewAuthService(repo, NewTokenManager("a", "r", time.Minute, time.Hour))

	_, err := service.Login(context.Background(), LoginInput{
		Email:    "admin@example.com",
		Password: "wrong-password",
	}, nil)
	if !errors.Is(err, apperror.ErrInvalidCredentials) {
		t.Fatalf("ожидалась ошибка неверных учётных данных, получили %v", err)
	}

	// Неизвестный email даёт тот же ответ, чтобы не раскрывать наличие аккаунта
	_, err = service.Login(context.Background(), LoginInput{
		Email:    "nobody@example.com",
		Password: "password123",
	}, nil)
	if !errors.Is(err, apperror.ErrInvalidCredentials) {
		t.Fatalf("ожидалась ошибка неверных учётных данных, получили %v", err)
	}
}

func TestAuthService_LoginInactive(t *testing.T) {
	repo := newMockAuthRepository()
	repo.addUser("gone@example.com", "password123", models.RoleEmployee, false)

	service := NewAuthService(repo, NewTokenManager("a", "r", time.Minute, time.Hour))

	_, err := service.Login(context.Background(), LoginInput{
		Email:    "gone@example.com",
		Password: "password123",
	}, nil)
	if err == nil {
		t.Fatalf("ожидалась ошибка для деактивированного аккаунта")
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperror.ErrCodeForbidden {
		t.Fatalf("ожидался код FORBIDDEN, получили %v", err)
	}
}

func TestAuthService_Refresh(t *testing.T) {
	repo := newMockAuthRepository()
	user := repo.addUser("emp@example.com", "password123", models.RoleEmployee, true)

	tokenManager := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	service := NewAuthService(repo, tokenManager)

	ctx := context.Background()
	tokenPair, refreshExp, err := tokenManager.GeneratePair(user)
	if err != nil {
		t.Fatalf("не удалось сгенерировать токены: %v", err)
	}
	repo.sessions[tokenPair.RefreshToken] = &models.Session{
		ID:           uuid.New(),
		UserID:       user.ID,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresAt:    refreshExp,
	}

	newPair, err := service.Refresh(ctx, tokenPair.RefreshToken, nil)
	if err != nil {
		t.Fatalf("refresh вернул ошибку: %v", err)
	}
	if newPair.RefreshToken == tokenPair.RefreshToken {
		t.Fatalf("ожидался новый refresh токен")
	}
	if _, ok := repo.sessions[tokenPair.RefreshToken]; ok {
		t.Fatalf("старая сессия должна быть удалена")
	}

	// Повторное использование отозванного токена отклоняется
	if _, err := service.Refresh(ctx, tokenPair.RefreshToken, nil); err == nil {
		t.Fatalf("ожидалась ошибка для отозванного токена")
	}
}

func TestAuthService_Logout(t *testing.T) {
	repo := newMockAuthRepository()
	repo.addUser("emp@example.com", "password123", models.RoleEmployee, true)

	tokenManager := NewTokenManager("a", "r", time.Minute, time.Hour)
	service := NewAuthService(repo, tokenManager)

	res, err := service.Login(context.Background(), LoginInput{
		Email:    "emp@example.com",
		Password: "password123",
	}, nil)
	if err != nil {
		t.Fatalf("login вернул ошибку: %v", err)
	}

	if err := service.Logout(context.Background(), res.TokenPair.RefreshToken); err != nil {
		t.Fatalf("logout вернул ошибку: %v", err)
	}
	if len(repo.sessions) != 0 {
		t.Fatalf("сессия должна быть удалена")
	}
}
