// Package redis stores sessions as JSON values with an inactivity TTL.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-session-profile/internal/domain/entity"
	"github.com/oksasatya/go-session-profile/internal/domain/repository"
	"github.com/oksasatya/go-session-profile/pkg/helpers"
)

const (
	keyPrefix = "sess:"
	idBytes   = 32
)

type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, ttl: ttl}
}

func key(id string) string { return keyPrefix + id }

// Load fetches the session and slides its expiry in one GETEX.
func (s *SessionStore) Load(ctx context.Context, id string) (*entity.Session, error) {
	if id == "" {
		return nil, nil
	}
	var sess entity.Session
	ok, err := helpers.RedisGetJSON(ctx, s.rdb, key(id), &sess, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return nil, nil
	}
	sess.ID = id
	return &sess, nil
}

func (s *SessionStore) Save(ctx context.Context, sess *entity.Session) error {
	if sess.ID == "" {
		id, err := helpers.RandomToken(idBytes)
		if err != nil {
			return err
		}
		sess.ID = id
	}
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now().UTC()
	}
	if err := helpers.RedisSetJSON(ctx, s.rdb, key(sess.ID), sess, s.ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Destroy(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return helpers.RedisDel(ctx, s.rdb, key(id))
}

var _ repository.SessionStore = (*SessionStore)(nil)
