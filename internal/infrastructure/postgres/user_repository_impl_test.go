package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-session-profile/internal/domain/apperr"
	"github.com/oksasatya/go-session-profile/internal/domain/entity"
	"github.com/oksasatya/go-session-profile/internal/domain/repository"
)

func newMock(t *testing.T) (pgxmock.PgxPoolIface, *UserRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewUserRepository(mock)
}

func TestCreate_AssignsIDAndTimestamps(t *testing.T) {
	mock, repo := newMock(t)
	now := time.Now()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("alice", "hash", "", "").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("2b1f6c1e-0000-4000-8000-000000000001", now, now))

	u := &entity.User{Username: "alice", PasswordHash: "hash"}
	require.NoError(t, repo.Create(context.Background(), u))

	assert.Equal(t, "2b1f6c1e-0000-4000-8000-000000000001", u.ID)
	assert.Equal(t, now, u.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UniqueViolationIsConflict(t *testing.T) {
	mock, repo := newMock(t)
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("alice", "hash", "", "").
		WillReturnError(&pgconn.PgError{Code: uniqueViolation})

	err := repo.Create(context.Background(), &entity.User{Username: "alice", PasswordHash: "hash"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrConflict))
	assert.Equal(t, "Username alice is already taken!", apperr.Message(err))
}

func TestGetByUsername(t *testing.T) {
	mock, repo := newMock(t)
	now := time.Now()
	cols := []string{"id", "username", "password_hash", "status", "avatar", "created_at", "updated_at"}
	mock.ExpectQuery(`SELECT .+ FROM users`).
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows(cols).AddRow("id-1", "alice", "hash", "hi", "", now, now))

	u, err := repo.GetByUsername(context.Background(), "alice")

	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "hi", u.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByUsername_NotFound(t *testing.T) {
	mock, repo := newMock(t)
	cols := []string{"id", "username", "password_hash", "status", "avatar", "created_at", "updated_at"}
	mock.ExpectQuery(`SELECT .+ FROM users`).
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows(cols))

	_, err := repo.GetByUsername(context.Background(), "ghost")

	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUpdateStatus_ZeroMatchedRows(t *testing.T) {
	mock, repo := newMock(t)
	mock.ExpectExec(`UPDATE users SET status`).
		WithArgs("hi", "ghost").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdateStatus(context.Background(), "ghost", "hi")

	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUpdateAvatarAndDelete(t *testing.T) {
	mock, repo := newMock(t)
	mock.ExpectExec(`UPDATE users SET avatar`).
		WithArgs("data:image/png;base64,AA==", "alice").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`DELETE FROM users`).
		WithArgs("alice").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.UpdateAvatar(context.Background(), "alice", "data:image/png;base64,AA=="))
	require.NoError(t, repo.Delete(context.Background(), "alice"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
