// Package services содержит логику регистрации, входа и проверки сессии.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/survey-insights/internal/lib/jwt"
	"github.com/magabrotheeeer/survey-insights/internal/lib/password"
	"github.com/magabrotheeeer/survey-insights/internal/models"
	"github.com/magabrotheeeer/survey-insights/internal/storage"
)

var (
	// ErrUserExists пользователь с таким email уже зарегистрирован.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials неизвестный email или неверный пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrPasswordTooLong пароль длиннее, чем допускает bcrypt.
	ErrPasswordTooLong = errors.New("password is too long")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail возвращает пользователя по email или storage.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService отвечает за регистрацию, вход и проверку сессионного токена.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// SignUp регистрирует пользователя и возвращает сессионный токен.
// Для занятого email возвращает ErrUserExists, запись не создаётся.
func (s *AuthService) SignUp(ctx context.Context, email, rawPassword string) (string, error) {
	const op = "services.auth.SignUp"

	_, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return "", fmt.Errorf("%s: %w", op, ErrUserExists)
	case !errors.Is(err, storage.ErrNotFound):
		return "", fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.Hash(rawPassword)
	if err != nil {
		if errors.Is(err, password.ErrTooLong) {
			return "", fmt.Errorf("%s: %w", op, ErrPasswordTooLong)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hashed,
		CreatedAt:    time.Now().UTC(),
	}
	if err = s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			// параллельная регистрация с тем же email
			return "", fmt.Errorf("%s: %w", op, ErrUserExists)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user registered", slog.String("user_id", user.ID))

	token, err := s.jwtMaker.GenerateToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// SignIn проверяет пароль и возвращает сессионный токен.
// Неизвестный email и неверный пароль неразличимы: оба дают ErrInvalidCredentials.
func (s *AuthService) SignIn(ctx context.Context, email, rawPassword string) (string, error) {
	const op = "services.auth.SignIn"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	ok, err := password.Verify(rawPassword, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := s.jwtMaker.GenerateToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// CurrentUser проверяет токен. false означает, что сессии нет.
func (s *AuthService) CurrentUser(token string) (*jwt.Claims, bool) {
	if token == "" {
		return nil, false
	}
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, false
	}
	return claims, true
}
