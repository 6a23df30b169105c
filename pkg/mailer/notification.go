package mailer

import (
	"fmt"
	"strings"
	"time"
)

// Notification is an operator email about something a user did.
type Notification struct {
	To      string
	Subject string
	Text    string
}

// NewRegistrationNotice tells the operator about a new account.
func NewRegistrationNotice(to, username, ip, userAgent string, at time.Time) Notification {
	var b strings.Builder
	fmt.Fprintf(&b, "A new account was registered.\n\n")
	fmt.Fprintf(&b, "Username:   %s\n", username)
	fmt.Fprintf(&b, "Time:       %s\n", at.UTC().Format(time.RFC1123))
	if ip != "" {
		fmt.Fprintf(&b, "IP address: %s\n", ip)
	}
	if userAgent != "" {
		fmt.Fprintf(&b, "User agent: %s\n", userAgent)
	}
	return Notification{
		To:      to,
		Subject: fmt.Sprintf("New registration: %s", username),
		Text:    b.String(),
	}
}
