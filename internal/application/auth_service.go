package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-session-profile/internal/domain/apperr"
	"github.com/oksasatya/go-session-profile/internal/domain/entity"
	"github.com/oksasatya/go-session-profile/internal/domain/repository"
	"github.com/oksasatya/go-session-profile/pkg/helpers"
)

type AuthService struct {
	Users      repository.UserRepository
	Sessions   repository.SessionStore
	Index      ProfileIndex
	Activity   ActivityPublisher
	Logger     *logrus.Logger
	SaltRounds int
}

func NewAuthService(users repository.UserRepository, sessions repository.SessionStore, idx ProfileIndex, pub ActivityPublisher, logger *logrus.Logger, saltRounds int) *AuthService {
	if idx == nil {
		idx = noopIndex{}
	}
	if pub == nil {
		pub = noopPublisher{}
	}
	if logger == nil {
		logger = helpers.NewDiscardLogger()
	}
	return &AuthService{
		Users:      users,
		Sessions:   sessions,
		Index:      idx,
		Activity:   pub,
		Logger:     logger,
		SaltRounds: saltRounds,
	}
}

// Register creates a new account. It never touches the caller's session.
func (s *AuthService) Register(ctx context.Context, username, password, confirmPassword string) error {
	if username == "" || password == "" || confirmPassword == "" {
		return apperr.New(apperr.ErrValidation, "Request body incomplete.")
	}
	if password != confirmPassword {
		return apperr.New(apperr.ErrValidation, "Password and Confirm Password Does not Match!")
	}
	if len(password) > helpers.MaxPasswordBytes {
		return apperr.New(apperr.ErrValidation, "Password too long. Do not exceed %d bytes", helpers.MaxPasswordBytes)
	}

	// fast path only; the unique index decides races
	_, err := s.Users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return apperr.New(apperr.ErrConflict, "Username %s is already taken!", username)
	case !errors.Is(err, repository.ErrUserNotFound):
		return fmt.Errorf("lookup user: %w", err)
	}

	hash, err := helpers.HashPassword(password, s.SaltRounds)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{Username: username, PasswordHash: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return err
		}
		return fmt.Errorf("create user: %w", err)
	}

	metricRegistrations.Add(1)
	s.Logger.WithField("username", username).Info("user registered")
	reindex(ctx, s.Index, s.Logger, u)
	emit(ctx, s.Activity, s.Logger, entity.ActivityRegistered, username)
	return nil
}

// Login checks the credentials and, on success, moves sess to a freshly
// issued ID marked as authenticated.
func (s *AuthService) Login(ctx context.Context, sess *entity.Session, username, password string) (*entity.User, error) {
	if username == "" || password == "" {
		return nil, apperr.New(apperr.ErrValidation, "Request body incomplete. Please try again")
	}

	u, err := s.Users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		metricLoginFailures.Add(1)
		return nil, apperr.New(apperr.ErrNotFound, "No user with username %q exists!", username)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		metricLoginFailures.Add(1)
		return nil, apperr.New(apperr.ErrInvalidCredentials, "Incorrect password")
	}

	if sess.Persisted() {
		if err := s.Sessions.Destroy(ctx, sess.ID); err != nil {
			helpers.LogError(s.Logger, "destroy previous session failed", err, nil)
		}
	}
	*sess = entity.Session{Authenticated: true, Username: u.Username, CreatedAt: time.Now().UTC()}
	if err := s.Sessions.Save(ctx, sess); err != nil {
		sess.Reset()
		return nil, fmt.Errorf("save session: %w", err)
	}

	metricLogins.Add(1)
	emit(ctx, s.Activity, s.Logger, entity.ActivityLoggedIn, u.Username)
	return u, nil
}

// Logout destroys the session. Calling it without a stored session is a no-op.
func (s *AuthService) Logout(ctx context.Context, sess *entity.Session) error {
	if !sess.Persisted() {
		return nil
	}
	username, wasAuth := sess.Username, sess.Authenticated
	if err := s.Sessions.Destroy(ctx, sess.ID); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	sess.Reset()
	if wasAuth {
		metricLogouts.Add(1)
		emit(ctx, s.Activity, s.Logger, entity.ActivityLoggedOut, username)
	}
	return nil
}
