// Package router assembles the Gin engine from the application modules.
package router

import (
	"net/http"

	apphttp "filmoteka_backend/internal/http"
	"filmoteka_backend/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// New builds the HTTP engine: platform middleware, health endpoint, and one
// public plus one token-gated route group that the domain modules mount
// their endpoints on.
func New(app *apphttp.App) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())

	if origins := app.Config.GetCORSOrigins(); len(origins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = origins
		corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
		engine.Use(cors.New(corsConfig))
	}

	engine.GET("/health", func(c *gin.Context) {
		if err := app.Health.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := engine.Group("")
	protected := engine.Group("")
	protected.Use(httpkit.AuthRequired(app.Config, app.Users))

	ctx := &apphttp.RouterContext{
		Engine:          engine,
		Public:          public,
		Protected:       protected,
		AuthRateLimiter: httpkit.NewAuthRateLimiter(app.Logger),
	}

	for _, module := range app.Modules {
		module.RegisterRoutes(ctx)
		app.Logger.Info("module routes registered", "module", module.Name())
	}

	return engine
}
