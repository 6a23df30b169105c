package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

const sendTimeout = 10 * time.Second

// Sender delivers a notification.
type Sender interface {
	Send(ctx context.Context, n Notification) error
}

// Mailgun sends plain-text notifications from a fixed sender address.
type Mailgun struct {
	client mg.Mailgun
	from   string
}

func NewMailgun(domain, apiKey, from string) *Mailgun {
	return &Mailgun{client: mg.NewMailgun(domain, apiKey), from: from}
}

func (m *Mailgun) Send(ctx context.Context, n Notification) error {
	msg := m.client.NewMessage(m.from, n.Subject, n.Text, n.To)
	c, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	_, _, err := m.client.Send(c, msg)
	return err
}

var _ Sender = (*Mailgun)(nil)
