package api

import (
	"net/http"

	authDelivery "qisqa-backend/internal/auth/delivery"
	reportDelivery "qisqa-backend/internal/report/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, resolver authDelivery.IdentityResolver, authHandler *authDelivery.AuthHandler, reportHandler *reportDelivery.ReportHandler, settingsHandler *SettingsHandler) {
	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.GET("/me", authDelivery.AuthMiddleware(resolver), authHandler.Me)
		}

		// Report routes (protected)
		reports := api.Group("")
		reports.Use(authDelivery.AuthMiddleware(resolver))
		{
			reports.POST("/generateReport", reportHandler.GenerateReport)
			reports.GET("/summaries", reportHandler.ListSummaries)
		}

		// Settings routes (public, read-only)
		settings := api.Group("/settings")
		{
			settings.GET("/ai", settingsHandler.GetAISettings)
		}
	}
}
