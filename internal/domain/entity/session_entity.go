package entity

import "time"

// Session is the server-side state behind the session cookie.
// ID is the store key and is never part of the stored value.
type Session struct {
	ID            string    `json:"-"`
	Authenticated bool      `json:"authenticated"`
	Username      string    `json:"username,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Persisted reports whether the session already exists in the store.
func (s *Session) Persisted() bool { return s != nil && s.ID != "" }

// Reset turns the value back into an anonymous, unsaved session.
func (s *Session) Reset() {
	*s = Session{}
}
