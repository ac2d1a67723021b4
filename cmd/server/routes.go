package main

import (
	"github.com/fynd/reviewboard/internal/middleware"
	"github.com/fynd/reviewboard/pkg/logger"
	"github.com/gin-gonic/gin"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	r.Use(middleware.TraceID(), logger.GinLogger(), logger.GinRecovery())
	r.Use(middleware.CORS())

	// Every submission fans out into two hosted-model calls, so the
	// public submit route gets its own limiter.
	submitLimiter := middleware.NewRateLimiter(2, 5)

	r.GET("/health", svc.healthHandler.CheckHealth)

	api := r.Group("/api")
	{
		api.POST("/reviews", submitLimiter.Middleware(), svc.reviewHandler.Submit)
		api.GET("/reviews", svc.reviewHandler.Feed)

		// Admin routes are not access-controlled; deploy behind a
		// trusted network boundary.
		admin := api.Group("/admin")
		{
			admin.GET("/dashboard", svc.dashboardHandler.GetStats)
			admin.GET("/reviews", svc.dashboardHandler.ListRaw)
			admin.POST("/purge", svc.dashboardHandler.Purge)
		}
	}
}
