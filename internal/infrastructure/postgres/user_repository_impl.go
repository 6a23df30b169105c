package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/go-session-profile/internal/domain/apperr"
	"github.com/oksasatya/go-session-profile/internal/domain/entity"
	"github.com/oksasatya/go-session-profile/internal/domain/repository"
)

const uniqueViolation = "23505"

// DBTX is the subset of *pgxpool.Pool the repository needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (username, password_hash, status, avatar)
		VALUES ($1, $2, $3, NULLIF($4, ''))
		RETURNING id::text, created_at, updated_at
	`, u.Username, u.PasswordHash, u.Status, u.Avatar)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperr.New(apperr.ErrConflict, "Username %s is already taken!", u.Username)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	u := &entity.User{}

	row := r.db.QueryRow(ctx, `
		SELECT id::text, username, password_hash, status, COALESCE(avatar, ''), created_at, updated_at
		FROM users
		WHERE username = $1
	`, username)

	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Status, &u.Avatar,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}

	return u, nil
}

// UpdateStatus relies on Postgres reporting matched rows, so writing the
// current value again still counts as one.
func (r *UserRepository) UpdateStatus(ctx context.Context, username, status string) error {
	return r.exec(ctx, `
		UPDATE users SET status = $1, updated_at = now() WHERE username = $2
	`, status, username)
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, username, avatar string) error {
	return r.exec(ctx, `
		UPDATE users SET avatar = NULLIF($1, ''), updated_at = now() WHERE username = $2
	`, avatar, username)
}

func (r *UserRepository) Delete(ctx context.Context, username string) error {
	return r.exec(ctx, `DELETE FROM users WHERE username = $1`, username)
}

func (r *UserRepository) exec(ctx context.Context, sql string, args ...any) error {
	res, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrUserNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
