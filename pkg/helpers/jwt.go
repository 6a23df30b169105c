package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionSigner signs the session ID carried in the session cookie so a
// client cannot present a forged or truncated ID.
type SessionSigner struct {
	Secret []byte
}

func NewSessionSigner(secret string) *SessionSigner {
	return &SessionSigner{Secret: []byte(secret)}
}

type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Sign returns a token for sessionID that stops validating at exp.
func (s *SessionSigner) Sign(sessionID string, exp time.Time) (string, error) {
	if sessionID == "" {
		return "", errors.New("empty session id")
	}
	claims := &SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.Secret)
}

// Parse validates the token and returns the session ID inside it.
func (s *SessionSigner) Parse(tokenStr string) (string, error) {
	claims := &SessionClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.Secret, nil
	})
	if err != nil {
		return "", err
	}
	if !tkn.Valid || claims.SessionID == "" {
		return "", errors.New("invalid session token")
	}
	return claims.SessionID, nil
}
