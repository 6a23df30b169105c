package handlers

import (
	"errors"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-session-profile/internal/application"
	"github.com/oksasatya/go-session-profile/internal/domain/apperr"
	"github.com/oksasatya/go-session-profile/internal/interface/middleware"
	"github.com/oksasatya/go-session-profile/pkg/response"
	"github.com/oksasatya/go-session-profile/pkg/validation"
)

// MaxAvatarBody caps how much of an avatar upload is read.
const MaxAvatarBody = 7864320

type ProfileHandler struct {
	Profiles *application.ProfileService
	Logger   *logrus.Logger
}

func NewProfileHandler(profiles *application.ProfileService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Profiles: profiles, Logger: logger}
}

type statusRequest struct {
	Status       *string `form:"status" json:"status"`
	LegacyStatus *string `form:"profile__chgStatus" json:"profile__chgStatus"`
}

// Show GET /profile renders the page, or JSON when the client asks for it.
func (h *ProfileHandler) Show(c *gin.Context) {
	p := h.Profiles.View(middleware.IdentityFrom(c))

	switch c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) {
	case gin.MIMEJSON:
		response.Success(c, http.StatusOK, gin.H{
			"username":  p.Username,
			"status":    p.Status,
			"avatarUrl": p.AvatarURL,
		})
	default:
		c.HTML(http.StatusOK, "profile.html", page{
			Title:          p.Username,
			MessageDanger:  c.Query("messageDanger"),
			MessageSuccess: c.Query("messageSuccess"),
			Username:       p.Username,
			Status:         p.Status,
			AvatarURL:      template.URL(p.AvatarURL),
		})
	}
}

// ChangeStatus POST /profile/status
func (h *ProfileHandler) ChangeStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	status := req.Status
	if status == nil {
		status = req.LegacyStatus
	}
	if status == nil {
		fail(c, h.Logger, apperr.New(apperr.ErrValidation, "Request body incomplete."))
		return
	}

	newStatus, err := h.Profiles.ChangeStatus(c.Request.Context(), middleware.IdentityFrom(c), *status)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"newStatus": newStatus})
}

// ChangeAvatar POST /profile/avatar; the body is the raw image data-URI.
func (h *ProfileHandler) ChangeAvatar(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxAvatarBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			fail(c, h.Logger, apperr.New(apperr.ErrValidation, "Image too large! Make sure it is less than ~5MB"))
			return
		}
		fail(c, h.Logger, apperr.New(apperr.ErrValidation, "Could not read request body"))
		return
	}

	data := strings.TrimSpace(string(body))
	if err := h.Profiles.ChangeAvatar(c.Request.Context(), middleware.IdentityFrom(c), data); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, nil)
}

// Search GET /api/users/search?q=&size=
func (h *ProfileHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	res, err := h.Profiles.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": res})
}
