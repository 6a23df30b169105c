package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-session-profile/internal/application"
	"github.com/oksasatya/go-session-profile/internal/domain/apperr"
	"github.com/oksasatya/go-session-profile/internal/domain/entity"
	"github.com/oksasatya/go-session-profile/internal/domain/repository"
	"github.com/oksasatya/go-session-profile/pkg/helpers"
	"github.com/oksasatya/go-session-profile/pkg/response"
)

const (
	sessionKey  = "session"
	identityKey = "identity"
)

// Session loads the session named by the cookie, renewing both the stored
// TTL and the cookie. Requests without a live session get an anonymous,
// unsaved session and no cookie.
func Session(store repository.SessionStore, cookies *helpers.SessionCookies, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := &entity.Session{}
		sid, present := cookies.Read(c)

		if sid != "" {
			loaded, err := store.Load(c.Request.Context(), sid)
			if err != nil {
				helpers.LogError(logger, "session load failed", err, logrus.Fields{"request_id": c.GetString("request_id")})
				response.Error(c, http.StatusInternalServerError, apperr.InternalMessage, nil)
				return
			}
			if loaded != nil {
				sess = loaded
				if err := cookies.Issue(c, sess.ID); err != nil {
					helpers.LogError(logger, "session cookie reissue failed", err, nil)
				}
			}
		}
		if present && !sess.Persisted() {
			cookies.Clear(c)
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// SessionFrom returns the request's session; never nil once Session ran.
func SessionFrom(c *gin.Context) *entity.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*entity.Session); ok {
			return s
		}
	}
	return &entity.Session{}
}

// IdentityFrom returns the identity set by a gate middleware.
func IdentityFrom(c *gin.Context) *application.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(*application.Identity); ok {
			return id
		}
	}
	return nil
}
