// Package worker consumes activity events published by the web app.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-session-profile/internal/domain/entity"
	"github.com/oksasatya/go-session-profile/pkg/mailer"
)

// ErrBadMessage marks a delivery that can never succeed and must not be requeued.
var ErrBadMessage = errors.New("bad activity message")

type ActivityHandler struct {
	Mailer      mailer.Sender
	NotifyTo    string
	SendEnabled bool
	Logger      *logrus.Logger
}

// Handle logs the event and, for new registrations, mails the operator.
func (h *ActivityHandler) Handle(ctx context.Context, body []byte) error {
	var a entity.Activity
	if err := json.Unmarshal(body, &a); err != nil {
		return fmt.Errorf("%w: %v", ErrBadMessage, err)
	}
	if a.Type == "" || a.Username == "" {
		return fmt.Errorf("%w: missing type or username", ErrBadMessage)
	}

	h.Logger.WithFields(logrus.Fields{
		"type":     a.Type,
		"username": a.Username,
		"ip":       a.IP,
		"at":       a.At,
	}).Info("activity")

	if a.Type != entity.ActivityRegistered || !h.SendEnabled || h.NotifyTo == "" {
		return nil
	}
	n := mailer.NewRegistrationNotice(h.NotifyTo, a.Username, a.IP, a.UserAgent, a.At)
	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := h.Mailer.Send(c, n); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}
