package modules

import (
	"expvar"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-session-profile/internal/interface/http"
)

type DebugModule struct {
	Health         *handlers.HealthHandler
	MetricsEnabled bool
}

func NewDebugModule(h *handlers.HealthHandler, metricsEnabled bool) *DebugModule {
	return &DebugModule{Health: h, MetricsEnabled: metricsEnabled}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", m.Health.Health)
	if m.MetricsEnabled {
		// expvar counters: auth_*, gate_*, profile_*
		rg.GET("/debug/vars", gin.WrapH(expvar.Handler()))
	}
}
