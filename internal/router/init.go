package router

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-session-profile/internal/container"
	handlers "github.com/oksasatya/go-session-profile/internal/interface/http"
	"github.com/oksasatya/go-session-profile/internal/interface/http/views"
	"github.com/oksasatya/go-session-profile/internal/interface/middleware"
	"github.com/oksasatya/go-session-profile/internal/router/modules"
	"github.com/oksasatya/go-session-profile/pkg/validation"
)

// NewEngine builds the gin engine with global middleware, views and every module.
func NewEngine(c *container.Container) *gin.Engine {
	cfg := c.Cfg
	validation.Init()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}

	r.SetHTMLTemplate(views.Templates())
	r.StaticFS("/public", views.Static())

	reg := NewRegistry(r)
	reg.Use(middleware.Session(c.Sessions, c.Cookies, c.Logger))
	InitModules(reg, c)
	reg.RegisterAll()
	return r
}

// InitModules wires handlers from the container into feature modules.
func InitModules(r *Registry, c *container.Container) {
	pageGate := middleware.RequirePage(c.Gate, c.Cookies, c.Logger)
	apiGate := middleware.RequireAPI(c.Gate, c.Cookies, c.Logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(c.Auth, c.Cookies, c.Logger)))
	r.Add(modules.NewProfileModule(handlers.NewProfileHandler(c.Profiles, c.Logger), pageGate, apiGate))
	r.Add(modules.NewDebugModule(handlers.NewHealthHandler(healthChecks(c), c.Logger), c.Cfg.DebugMetricsEnabled))
}

func healthChecks(c *container.Container) map[string]handlers.Check {
	checks := map[string]handlers.Check{}
	if c.Redis != nil {
		checks["redis"] = func(ctx context.Context) error { return c.Redis.Ping(ctx).Err() }
	}
	if c.PG != nil {
		checks["postgres"] = c.PG.Ping
	}
	if c.ES != nil {
		checks["elasticsearch"] = func(ctx context.Context) error {
			res, err := c.ES.Ping(c.ES.Ping.WithContext(ctx))
			if err != nil {
				return err
			}
			defer res.Body.Close()
			if res.IsError() {
				return fmt.Errorf("ping: %s", res.Status())
			}
			return nil
		}
	}
	return checks
}
