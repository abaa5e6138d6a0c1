package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/offiswap/internal/database"
)

var userColumns = []string{"id", "name", "email", "password_hash", "location", "created_at"}

func newRepoWithMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return NewRepository(database.NewBunDB(sqlDB)), mock
}

func TestCreate_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	id := uuid.New()
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`(?s)^INSERT INTO "users".*'ann@example\.com'.*RETURNING \*`).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(id.String(), "Ann", "ann@example.com", "hash", "Riga", created))

	loc := "Riga"
	got, err := repo.Create(context.Background(), "Ann", "ann@example.com", "hash", &loc)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Ann", got.Name)
	require.NotNil(t, got.Location)
	assert.Equal(t, "Riga", *got.Location)
	assert.True(t, created.Equal(got.CreatedAt))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`^INSERT INTO "users"`).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint \"users_email_key\""})

	_, err := repo.Create(context.Background(), "Ann", "ann@example.com", "hash", nil)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`^INSERT INTO "users"`).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), "Ann", "ann@example.com", "hash", nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateEmail)
	assert.Contains(t, err.Error(), "db down")
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	id := uuid.New()
	mock.ExpectQuery(`(?s)^SELECT .* FROM "users" AS "u" WHERE \(email = 'ann@example\.com'\)`).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(id.String(), "Ann", "ann@example.com", "hash", nil, time.Now()))

	got, err := repo.GetByEmail(context.Background(), "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.Nil(t, got.Location)
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM "users"`).WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}
