package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-session-profile/internal/domain/apperr"
	"github.com/oksasatya/go-session-profile/internal/domain/entity"
	"github.com/oksasatya/go-session-profile/internal/domain/repository"
	"github.com/oksasatya/go-session-profile/pkg/helpers"
)

// Gate admits requests that carry an authenticated session whose user
// still exists.
type Gate struct {
	Users    repository.UserRepository
	Sessions repository.SessionStore
	Logger   *logrus.Logger
}

func NewGate(users repository.UserRepository, sessions repository.SessionStore, logger *logrus.Logger) *Gate {
	if logger == nil {
		logger = helpers.NewDiscardLogger()
	}
	return &Gate{Users: users, Sessions: sessions, Logger: logger}
}

// Authorize resolves the session's user. A session pointing at a deleted
// user is destroyed and reset before ErrStaleSession is returned.
func (g *Gate) Authorize(ctx context.Context, sess *entity.Session) (*Identity, error) {
	if sess == nil || !sess.Authenticated {
		return nil, apperr.New(apperr.ErrUnauthorized, "Unauthorized. Please log in to fix this problem")
	}

	u, err := g.Users.GetByUsername(ctx, sess.Username)
	if errors.Is(err, repository.ErrUserNotFound) {
		metricStaleSessions.Add(1)
		g.Logger.WithField("username", sess.Username).Warn("session refers to missing user; destroying")
		if dErr := g.Sessions.Destroy(ctx, sess.ID); dErr != nil {
			helpers.LogError(g.Logger, "destroy stale session failed", dErr, nil)
		}
		sess.Reset()
		return nil, apperr.New(apperr.ErrStaleSession, "404 Error User cannot be found")
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	return &Identity{SessionID: sess.ID, User: u}, nil
}
