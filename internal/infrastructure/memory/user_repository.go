// Package memory holds an in-process credential store for local runs and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-session-profile/internal/domain/apperr"
	"github.com/oksasatya/go-session-profile/internal/domain/entity"
	"github.com/oksasatya/go-session-profile/internal/domain/repository"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]entity.User)}
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Username]; ok {
		return apperr.New(apperr.ErrConflict, "Username %s is already taken!", u.Username)
	}
	now := time.Now()
	u.ID = uuid.NewString()
	u.CreatedAt, u.UpdatedAt = now, now
	r.users[u.Username] = *u
	return nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) UpdateStatus(_ context.Context, username, status string) error {
	return r.update(username, func(u *entity.User) { u.Status = status })
}

func (r *UserRepository) UpdateAvatar(_ context.Context, username, avatar string) error {
	return r.update(username, func(u *entity.User) { u.Avatar = avatar })
}

func (r *UserRepository) Delete(_ context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[username]; !ok {
		return repository.ErrUserNotFound
	}
	delete(r.users, username)
	return nil
}

// update matches on presence, not on change, like a SQL UPDATE's matched count.
func (r *UserRepository) update(username string, fn func(*entity.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return repository.ErrUserNotFound
	}
	fn(&u)
	u.UpdatedAt = time.Now()
	r.users[username] = u
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
