package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-session-profile/internal/application"
	"github.com/oksasatya/go-session-profile/internal/domain/apperr"
	"github.com/oksasatya/go-session-profile/pkg/helpers"
	"github.com/oksasatya/go-session-profile/pkg/response"
)

const (
	LoginRedirectUnauthorized = "/login?messageDanger=Please+login+into+your+profile+first!"
	LoginRedirectStale        = "/login?messageDanger=404+Error+User+cannot+be+found"
)

// RequirePage guards HTML routes: failures redirect to the login page.
func RequirePage(gate *application.Gate, cookies *helpers.SessionCookies, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := authorize(c, gate, cookies)
		switch {
		case err == nil:
			c.Set(identityKey, id)
			c.Next()
		case errors.Is(err, apperr.ErrUnauthorized):
			c.Redirect(http.StatusSeeOther, LoginRedirectUnauthorized)
			c.Abort()
		case errors.Is(err, apperr.ErrStaleSession):
			c.Redirect(http.StatusSeeOther, LoginRedirectStale)
			c.Abort()
		default:
			helpers.LogError(logger, "authorize failed", err, logrus.Fields{"request_id": c.GetString("request_id")})
			response.FromError(c, err)
		}
	}
}

// RequireAPI guards JSON routes: failures are written as JSON errors.
func RequireAPI(gate *application.Gate, cookies *helpers.SessionCookies, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := authorize(c, gate, cookies)
		if err != nil {
			if !apperr.Public(err) {
				helpers.LogError(logger, "authorize failed", err, logrus.Fields{"request_id": c.GetString("request_id")})
			}
			response.FromError(c, err)
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

func authorize(c *gin.Context, gate *application.Gate, cookies *helpers.SessionCookies) (*application.Identity, error) {
	id, err := gate.Authorize(c.Request.Context(), SessionFrom(c))
	if errors.Is(err, apperr.ErrStaleSession) {
		cookies.Clear(c)
	}
	return id, err
}
