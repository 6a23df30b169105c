package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-session-profile/internal/interface/http"
)

// ProfileModule wires profile pages and mutations behind the gate.
// Page routes redirect to /login on failure; the rest answer with JSON.
type ProfileModule struct {
	Handler  *handlers.ProfileHandler
	PageGate gin.HandlerFunc
	APIGate  gin.HandlerFunc
}

func NewProfileModule(h *handlers.ProfileHandler, pageGate, apiGate gin.HandlerFunc) *ProfileModule {
	return &ProfileModule{Handler: h, PageGate: pageGate, APIGate: apiGate}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	rg.GET("/profile", m.PageGate, m.Handler.Show)

	api := rg.Group("/")
	api.Use(m.APIGate)
	{
		api.POST("/profile/status", m.Handler.ChangeStatus)
		api.POST("/profile/changeStatus", m.Handler.ChangeStatus)
		api.POST("/profile/avatar", m.Handler.ChangeAvatar)
		api.POST("/profile/changeProfilePic", m.Handler.ChangeAvatar)
		api.GET("/api/users/search", m.Handler.Search)
	}
}
