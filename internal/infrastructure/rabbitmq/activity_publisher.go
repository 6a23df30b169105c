// Package rabbitmq publishes activity events to a durable queue.
package rabbitmq

import (
	"context"

	"github.com/oksasatya/go-session-profile/internal/application"
	"github.com/oksasatya/go-session-profile/internal/domain/entity"
	"github.com/oksasatya/go-session-profile/pkg/helpers"
)

type ActivityPublisher struct {
	pub *helpers.RabbitPublisher
}

func NewActivityPublisher(pub *helpers.RabbitPublisher) *ActivityPublisher {
	return &ActivityPublisher{pub: pub}
}

func (p *ActivityPublisher) Publish(ctx context.Context, a entity.Activity) error {
	return p.pub.PublishJSON(ctx, a.Type, a)
}

var _ application.ActivityPublisher = (*ActivityPublisher)(nil)
