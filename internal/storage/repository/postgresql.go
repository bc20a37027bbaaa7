// Package repository реализует хранилище пользователей, опросов и ответов
// на основе PostgreSQL. Соединение берётся у storage.Gateway при каждом вызове.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/survey-insights/internal/storage"
)

// Connector выдаёт соединение с базой.
type Connector interface {
	Connect(ctx context.Context) (*sql.DB, error)
}

// Storage реализует методы работы с пользователями, опросами и ответами.
type Storage struct {
	conn Connector
}

// New создаёт Storage поверх conn.
func New(conn Connector) *Storage {
	return &Storage{conn: conn}
}

func (s *Storage) db(ctx context.Context, op string) (*sql.DB, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}
	db, err := s.conn.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return db, nil
}

// mapError приводит ошибки драйвера к ошибкам пакета storage.
func mapError(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return fmt.Errorf("%s: %w", op, storage.ErrConflict)
		case pgerrcode.InvalidTextRepresentation, pgerrcode.ForeignKeyViolation:
			// некорректный uuid или ссылка на несуществующий опрос
			return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
