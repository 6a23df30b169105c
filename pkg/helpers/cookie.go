package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCookies issues, reads and clears the signed session cookie.
type SessionCookies struct {
	Name   string
	Domain string
	Secure bool
	TTL    time.Duration
	Signer *SessionSigner
}

func NewSessionCookies(name, domain string, secure bool, ttl time.Duration, signer *SessionSigner) *SessionCookies {
	return &SessionCookies{Name: name, Domain: domain, Secure: secure, TTL: ttl, Signer: signer}
}

// Issue (re)sets the cookie for sessionID with a full TTL window.
func (m *SessionCookies) Issue(c *gin.Context, sessionID string) error {
	exp := time.Now().Add(m.TTL)
	token, err := m.Signer.Sign(sessionID, exp)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.Name, token, maxAgeFrom(exp), "/", m.Domain, m.Secure, true)
	return nil
}

// Read returns the session ID from a valid cookie. present reports whether
// any cookie was sent at all, so callers can clear a bad one.
func (m *SessionCookies) Read(c *gin.Context) (sessionID string, present bool) {
	token, err := c.Cookie(m.Name)
	if err != nil || token == "" {
		return "", false
	}
	sid, err := m.Signer.Parse(token)
	if err != nil {
		return "", true
	}
	return sid, true
}

func (m *SessionCookies) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.Name, "", -1, "/", m.Domain, m.Secure, true)
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
