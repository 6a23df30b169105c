package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-session-profile/internal/application"
	"github.com/oksasatya/go-session-profile/internal/domain/apperr"
	"github.com/oksasatya/go-session-profile/internal/interface/middleware"
	"github.com/oksasatya/go-session-profile/pkg/helpers"
	"github.com/oksasatya/go-session-profile/pkg/response"
	"github.com/oksasatya/go-session-profile/pkg/validation"
)

const logoutRedirect = "/login?messageSuccess=Successfully+Logged+Out!"

type AuthHandler struct {
	Auth    *application.AuthService
	Cookies *helpers.SessionCookies
	Logger  *logrus.Logger
}

func NewAuthHandler(auth *application.AuthService, cookies *helpers.SessionCookies, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Auth: auth, Cookies: cookies, Logger: logger}
}

// the login_* and register_* names are what older page versions posted
type loginRequest struct {
	Username       string `form:"username" json:"username" binding:"omitempty,max=64"`
	Password       string `form:"password" json:"password"`
	LegacyUsername string `form:"login_username" json:"-" binding:"omitempty,max=64"`
	LegacyPassword string `form:"login_password" json:"-"`
}

type registerRequest struct {
	Username              string `form:"username" json:"username" binding:"omitempty,max=64"`
	Password              string `form:"password" json:"password"`
	ConfirmPassword       string `form:"confirmPassword" json:"confirmPassword"`
	LegacyUsername        string `form:"register_username" json:"-" binding:"omitempty,max=64"`
	LegacyPassword        string `form:"register_password" json:"-"`
	LegacyConfirmPassword string `form:"register_confirm_password" json:"-"`
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// Landing GET /
func (h *AuthHandler) Landing(c *gin.Context) {
	if middleware.SessionFrom(c).Authenticated {
		c.Redirect(http.StatusSeeOther, "/profile")
		return
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

// LoginPage GET /login
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if middleware.SessionFrom(c).Authenticated {
		c.Redirect(http.StatusSeeOther, "/profile")
		return
	}
	c.HTML(http.StatusOK, "login.html", flash(c, "Log in"))
}

// Login POST /login; on failure the login page is rendered again with the reason.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.Logger.WithField("details", validation.ToDetails(err)).Debug("login form rejected")
		msg := validation.Summary(err)
		if msg == "" {
			msg = "Request body incomplete. Please try again"
		}
		h.renderLoginError(c, http.StatusBadRequest, "", apperr.New(apperr.ErrValidation, "%s", msg))
		return
	}
	username := firstNonEmpty(req.Username, req.LegacyUsername)
	password := firstNonEmpty(req.Password, req.LegacyPassword)

	sess := middleware.SessionFrom(c)
	if _, err := h.Auth.Login(c.Request.Context(), sess, username, password); err != nil {
		h.renderLoginError(c, response.StatusFor(err), username, err)
		return
	}
	if err := h.Cookies.Issue(c, sess.ID); err != nil {
		h.renderLoginError(c, http.StatusInternalServerError, username, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/profile")
}

func (h *AuthHandler) renderLoginError(c *gin.Context, status int, username string, err error) {
	if !apperr.Public(err) {
		helpers.LogError(h.Logger, "login failed", err, logrus.Fields{"request_id": c.GetString("request_id")})
	}
	p := page{Title: "Log in", MessageDanger: apperr.Message(err), Username: username}
	c.HTML(status, "login.html", p)
}

// RegisterPage GET /register
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	if middleware.SessionFrom(c).Authenticated {
		c.Redirect(http.StatusSeeOther, "/profile")
		return
	}
	c.HTML(http.StatusOK, "register.html", flash(c, "Register"))
}

// Register POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	err := h.Auth.Register(c.Request.Context(),
		firstNonEmpty(req.Username, req.LegacyUsername),
		firstNonEmpty(req.Password, req.LegacyPassword),
		firstNonEmpty(req.ConfirmPassword, req.LegacyConfirmPassword),
	)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, nil)
}

// Logout GET|POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Auth.Logout(c.Request.Context(), middleware.SessionFrom(c)); err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.Cookies.Clear(c)
	c.Redirect(http.StatusSeeOther, logoutRedirect)
}
