package entity

import "time"

const (
	ActivityRegistered    = "user.registered"
	ActivityLoggedIn      = "user.logged_in"
	ActivityLoggedOut     = "user.logged_out"
	ActivityStatusChanged = "profile.status_changed"
	ActivityAvatarChanged = "profile.avatar_changed"
)

// Activity is an audit event published after a successful user action.
type Activity struct {
	Type      string    `json:"type"`
	Username  string    `json:"username"`
	IP        string    `json:"ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	At        time.Time `json:"at"`
}
