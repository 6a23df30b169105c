package application

import (
	"context"

	"github.com/oksasatya/go-session-profile/internal/domain/entity"
)

// Identity is what the gate hands to protected handlers.
type Identity struct {
	SessionID string
	User      *entity.User
}

// Client describes the caller for activity events.
type Client struct {
	IP        string
	UserAgent string
}

type clientKey struct{}

func WithClient(ctx context.Context, c Client) context.Context {
	return context.WithValue(ctx, clientKey{}, c)
}

func clientFrom(ctx context.Context) Client {
	c, _ := ctx.Value(clientKey{}).(Client)
	return c
}
