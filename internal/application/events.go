package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-session-profile/internal/domain/entity"
	"github.com/oksasatya/go-session-profile/pkg/helpers"
)

// emit publishes an activity event. Failures are logged and never reach the caller.
func emit(ctx context.Context, pub ActivityPublisher, logger *logrus.Logger, typ, username string) {
	if pub == nil {
		return
	}
	c := clientFrom(ctx)
	a := entity.Activity{Type: typ, Username: username, IP: c.IP, UserAgent: c.UserAgent, At: time.Now().UTC()}
	if err := pub.Publish(context.WithoutCancel(ctx), a); err != nil {
		helpers.LogError(logger, "publish activity failed", err, logrus.Fields{"type": typ, "username": username})
	}
}

func reindex(ctx context.Context, idx ProfileIndex, logger *logrus.Logger, u *entity.User) {
	if idx == nil {
		return
	}
	if err := idx.Index(context.WithoutCancel(ctx), ViewOf(u)); err != nil {
		helpers.LogError(logger, "profile reindex failed", err, logrus.Fields{"username": u.Username})
	}
}
