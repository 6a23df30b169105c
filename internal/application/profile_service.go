package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-session-profile/internal/domain/apperr"
	"github.com/oksasatya/go-session-profile/internal/domain/entity"
	"github.com/oksasatya/go-session-profile/internal/domain/repository"
	"github.com/oksasatya/go-session-profile/pkg/helpers"
)

const (
	DefaultAvatarURL = "/public/image/user.svg"
	MaxStatusChars   = 500
	MaxAvatarBytes   = 5242880
	maxSearchResults = 50
)

// Profile is the public view of a user.
type Profile struct {
	Username  string `json:"username"`
	Status    string `json:"status"`
	AvatarURL string `json:"avatarUrl"`
}

func ViewOf(u *entity.User) Profile {
	avatar := u.Avatar
	if avatar == "" {
		avatar = DefaultAvatarURL
	}
	return Profile{Username: u.Username, Status: u.Status, AvatarURL: avatar}
}

type ProfileService struct {
	Users    repository.UserRepository
	Avatars  AvatarStore
	Index    ProfileIndex
	Activity ActivityPublisher
	Logger   *logrus.Logger
}

func NewProfileService(users repository.UserRepository, avatars AvatarStore, idx ProfileIndex, pub ActivityPublisher, logger *logrus.Logger) *ProfileService {
	if avatars == nil {
		avatars = InlineAvatarStore{}
	}
	if idx == nil {
		idx = noopIndex{}
	}
	if pub == nil {
		pub = noopPublisher{}
	}
	if logger == nil {
		logger = helpers.NewDiscardLogger()
	}
	return &ProfileService{Users: users, Avatars: avatars, Index: idx, Activity: pub, Logger: logger}
}

func (s *ProfileService) View(id *Identity) Profile {
	return ViewOf(id.User)
}

// ChangeStatus stores a new status line. Writing the current value again succeeds.
func (s *ProfileService) ChangeStatus(ctx context.Context, id *Identity, status string) (string, error) {
	if utf8.RuneCountInString(status) > MaxStatusChars {
		return "", apperr.New(apperr.ErrValidation, "New status too long. Do not exceed %d characters", MaxStatusChars)
	}
	username := id.User.Username
	if err := s.Users.UpdateStatus(ctx, username, status); err != nil {
		return "", s.updateErr(err, "Unable to update status for user %s", username)
	}
	id.User.Status = status

	metricProfileUpdates.Add(1)
	reindex(ctx, s.Index, s.Logger, id.User)
	emit(ctx, s.Activity, s.Logger, entity.ActivityStatusChanged, username)
	return status, nil
}

// ChangeAvatar validates an image data-URI and stores it through the avatar store.
func (s *ProfileService) ChangeAvatar(ctx context.Context, id *Identity, data string) error {
	if !strings.HasPrefix(data, "data:image/") || !strings.Contains(data, ",") {
		return apperr.New(apperr.ErrValidation, "New profile picture is not a valid image!")
	}
	if len(data) > MaxAvatarBytes {
		return apperr.New(apperr.ErrValidation, "Image too large! Make sure it is less than ~5MB")
	}
	username := id.User.Username

	stored, err := s.Avatars.Store(ctx, username, data)
	if err != nil {
		return fmt.Errorf("store avatar: %w", err)
	}
	if err := s.Users.UpdateAvatar(ctx, username, stored); err != nil {
		return s.updateErr(err, "Unable to change profile picture for user %s", username)
	}
	id.User.Avatar = stored

	metricProfileUpdates.Add(1)
	reindex(ctx, s.Index, s.Logger, id.User)
	emit(ctx, s.Activity, s.Logger, entity.ActivityAvatarChanged, username)
	return nil
}

// Search looks up profiles by username or status text.
func (s *ProfileService) Search(ctx context.Context, q string, size int) ([]Profile, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, apperr.New(apperr.ErrValidation, "Search query is required")
	}
	if size <= 0 || size > maxSearchResults {
		size = 10
	}
	res, err := s.Index.Search(ctx, q, size)
	if err != nil {
		return nil, fmt.Errorf("search profiles: %w", err)
	}
	return res, nil
}

func (s *ProfileService) updateErr(err error, format, username string) error {
	if errors.Is(err, repository.ErrUserNotFound) {
		helpers.LogError(s.Logger, "profile update matched no user", err, logrus.Fields{"username": username})
		return apperr.New(apperr.ErrPersistence, format, username)
	}
	return fmt.Errorf("update profile: %w", err)
}
