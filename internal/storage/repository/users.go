package repository

import (
	"context"

	"github.com/magabrotheeeer/survey-insights/internal/models"
)

// CreateUser сохраняет нового пользователя.
// Повторный email возвращает storage.ErrConflict.
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	const op = "storage.CreateUser"
	db, err := s.db(ctx, op)
	if err != nil {
		return err
	}

	query := `INSERT INTO users (id, email, password_hash, created_at)
			  VALUES ($1, $2, $3, $4)`
	if _, err = db.ExecContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.CreatedAt); err != nil {
		return mapError(op, err)
	}
	return nil
}

// GetUserByEmail возвращает пользователя по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	db, err := s.db(ctx, op)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, email, password_hash, created_at
			  FROM users
			  WHERE email = $1`
	u := &models.User{}
	if err = db.QueryRowContext(ctx, query, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, mapError(op, err)
	}
	return u, nil
}

// GetUserByID возвращает пользователя по идентификатору.
func (s *Storage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.GetUserByID"
	db, err := s.db(ctx, op)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, email, password_hash, created_at
			  FROM users
			  WHERE id = $1`
	u := &models.User{}
	if err = db.QueryRowContext(ctx, query, id).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, mapError(op, err)
	}
	return u, nil
}
