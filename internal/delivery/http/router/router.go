// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"creatorkit/internal/delivery/http/middleware"
	"creatorkit/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	SocialHandler  *handler.SocialHandler
	CronHandler    *handler.CronHandler
	AuthMiddleware *middleware.AuthMiddleware
	CronMiddleware *middleware.CronMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	socialHandler  *handler.SocialHandler
	cronHandler    *handler.CronHandler
	authMiddleware *middleware.AuthMiddleware
	cronMiddleware *middleware.CronMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		socialHandler:  params.SocialHandler,
		cronHandler:    params.CronHandler,
		authMiddleware: params.AuthMiddleware,
		cronMiddleware: params.CronMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Account linking and analytics routes
	socialGroup := e.Group("/socials")
	{
		// The provider calls the callback; there is no session to check.
		socialGroup.GET("/:platform/callback", r.socialHandler.Callback)

		authed := socialGroup.Group("")
		authed.Use(r.authMiddleware.Authenticate)
		{
			authed.GET("", r.socialHandler.List)
			authed.GET("/:platform/connect", r.socialHandler.Connect)
			authed.DELETE("/:platform", r.socialHandler.Disconnect)
			authed.POST("/:platform/sync", r.socialHandler.Sync)
		}
	}

	// Batch trigger routes for the external scheduler
	cronGroup := e.Group("/cron")
	cronGroup.Use(r.cronMiddleware.RequireSecret)
	{
		cronGroup.POST("/refresh-tokens", r.cronHandler.RefreshTokens)
		cronGroup.POST("/sync-analytics", r.cronHandler.SyncAnalytics)
		cronGroup.POST("/daily-digest", r.cronHandler.DailyDigest)
	}
}
