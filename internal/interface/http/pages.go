package handlers

import (
	"html/template"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-session-profile/internal/domain/apperr"
	"github.com/oksasatya/go-session-profile/pkg/helpers"
	"github.com/oksasatya/go-session-profile/pkg/response"
)

// page is the data every template renders from.
type page struct {
	Title          string
	MessageDanger  string
	MessageSuccess string
	Username       string
	Status         string
	// avatars are either our own path, a bucket URL or a validated image data-URI
	AvatarURL template.URL
}

func flash(c *gin.Context, title string) page {
	return page{
		Title:          title,
		MessageDanger:  c.Query("messageDanger"),
		MessageSuccess: c.Query("messageSuccess"),
	}
}

// fail writes err as JSON, logging it first when it is not a user-facing error.
func fail(c *gin.Context, logger *logrus.Logger, err error) {
	if !apperr.Public(err) {
		helpers.LogError(logger, "request failed", err, logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		})
	}
	response.FromError(c, err)
}
