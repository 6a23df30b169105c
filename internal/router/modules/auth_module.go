package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-session-profile/internal/interface/http"
)

// AuthModule serves the landing redirect, login, register and logout.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", m.Handler.Landing)
	rg.GET("/login", m.Handler.LoginPage)
	rg.POST("/login", m.Handler.Login)
	rg.GET("/register", m.Handler.RegisterPage)
	rg.POST("/register", m.Handler.Register)
	rg.GET("/logout", m.Handler.Logout)
	rg.POST("/logout", m.Handler.Logout)
}
