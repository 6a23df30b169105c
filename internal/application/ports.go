package application

import (
	"context"

	"github.com/oksasatya/go-session-profile/internal/domain/entity"
)

// AvatarStore turns a validated image data-URI into the value kept on the
// user record.
type AvatarStore interface {
	Store(ctx context.Context, username, dataURI string) (string, error)
}

// ProfileIndex keeps a searchable copy of public profile fields.
type ProfileIndex interface {
	Index(ctx context.Context, p Profile) error
	Search(ctx context.Context, q string, size int) ([]Profile, error)
}

// ActivityPublisher ships audit events off the request path.
type ActivityPublisher interface {
	Publish(ctx context.Context, a entity.Activity) error
}

// InlineAvatarStore keeps the data-URI itself on the user record.
type InlineAvatarStore struct{}

func (InlineAvatarStore) Store(_ context.Context, _ string, dataURI string) (string, error) {
	return dataURI, nil
}

type noopIndex struct{}

func (noopIndex) Index(context.Context, Profile) error { return nil }
func (noopIndex) Search(context.Context, string, int) ([]Profile, error) {
	return []Profile{}, nil
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, entity.Activity) error { return nil }
