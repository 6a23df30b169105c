package entity

import (
	"time"
)

// User is the aggregate root for the credential store.
// PasswordHash holds a bcrypt hash; the plaintext is never kept.
//
// Avatar is either an inline image data-URI or a public object URL,
// depending on which avatar store wrote it.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Status       string
	Avatar       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
