package repository

import (
	"context"

	"github.com/oksasatya/go-session-profile/internal/domain/entity"
)

// SessionStore keeps sessions server side with an inactivity TTL.
type SessionStore interface {
	// Load returns the session and renews its TTL. A missing or expired
	// session yields (nil, nil).
	Load(ctx context.Context, id string) (*entity.Session, error)
	// Save writes the session, assigning a fresh ID when it has none.
	Save(ctx context.Context, s *entity.Session) error
	// Destroy removes the session. Unknown IDs are not an error.
	Destroy(ctx context.Context, id string) error
}
