package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/survey-insights/internal/models"
	"github.com/magabrotheeeer/survey-insights/internal/storage"
)

const (
	insertUserQuery = `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*email,\s*password_hash,\s*created_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*$`
	userByEmail     = `(?s)^SELECT\s+id,\s*email,\s*password_hash,\s*created_at\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`
	userByID        = `(?s)^SELECT\s+id,\s*email,\s*password_hash,\s*created_at\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s*$`
)

var testTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestStorage_CreateUser(t *testing.T) {
	user := &models.User{
		ID:           "11111111-1111-1111-1111-111111111111",
		Email:        "a@x.com",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    testTime,
	}

	tests := []struct {
		name    string
		dbErr   error
		wantErr error
	}{
		{name: "success"},
		{
			name:    "duplicate email",
			dbErr:   &pgconn.PgError{Code: pgerrcode.UniqueViolation},
			wantErr: storage.ErrConflict,
		},
		{
			name:    "db failure",
			dbErr:   errors.New("db down"),
			wantErr: errors.New("db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepoWithMock(t)
			exp := mock.ExpectExec(insertUserQuery).
				WithArgs(user.ID, user.Email, user.PasswordHash, user.CreatedAt)
			if tt.dbErr != nil {
				exp.WillReturnError(tt.dbErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err := repo.CreateUser(context.Background(), user)
			switch {
			case tt.wantErr == nil:
				require.NoError(t, err)
			case errors.Is(tt.wantErr, storage.ErrConflict):
				assert.ErrorIs(t, err, storage.ErrConflict)
			default:
				require.Error(t, err)
				assert.Contains(t, err.Error(), "storage.CreateUser: db down")
			}
		})
	}
}

func TestStorage_GetUserByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(userByEmail).
			WithArgs("a@x.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
				AddRow("u-1", "a@x.com", "hash", testTime))

		got, err := repo.GetUserByEmail(context.Background(), "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, &models.User{ID: "u-1", Email: "a@x.com", PasswordHash: "hash", CreatedAt: testTime}, got)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(userByEmail).
			WithArgs("nobody@x.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}))

		_, err := repo.GetUserByEmail(context.Background(), "nobody@x.com")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestStorage_GetUserByID(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(userByID).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
			AddRow("u-1", "a@x.com", "hash", testTime))

	got, err := repo.GetUserByID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got.Email)
}

func TestStorage_Unavailable(t *testing.T) {
	repo := New(staticConnector{err: storage.ErrStorageUnavailable})

	_, err := repo.GetUserByEmail(context.Background(), "a@x.com")
	assert.ErrorIs(t, err, storage.ErrStorageUnavailable)
}

func TestStorage_CanceledContext(t *testing.T) {
	repo, _ := newRepoWithMock(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.GetUserByID(ctx, "u-1")
	assert.ErrorIs(t, err, context.Canceled)
}
