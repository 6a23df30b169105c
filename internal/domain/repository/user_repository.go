package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-session-profile/internal/domain/entity"
)

// ErrUserNotFound is returned when no user matches the lookup key or an
// update matched zero records.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the interface for credential store operations.
// Create must report a duplicate username as apperr.ErrConflict.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	UpdateStatus(ctx context.Context, username, status string) error
	UpdateAvatar(ctx context.Context, username, avatar string) error
	Delete(ctx context.Context, username string) error
}
