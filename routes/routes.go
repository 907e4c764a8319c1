package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"scoutai/handlers"
	"scoutai/middleware"
)

// RegisterChatRoutes registers the conversational endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/chat")
	{
		api.POST("", hb.ChatHandler)
		api.POST("/select", hb.SelectHandler)
		api.POST("/select-date", hb.SelectDateHandler)
		api.POST("/upload", hb.UploadHandler)
		api.GET("/availability", hb.AvailabilityHandler)
		api.GET("/bookings", hb.BookingsByEmailHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for the dashboard.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.GET("/bookings", hb.AdminListBookingsHandler)
		adminGroup.GET("/bookings/export", hb.AdminExportHandler)
		adminGroup.PUT("/bookings/:id/status", hb.AdminUpdateStatusHandler)
		adminGroup.GET("/customers", hb.AdminListCustomersHandler)
		adminGroup.GET("/metrics", hb.AdminMetricsHandler)
		adminGroup.GET("/analytics", hb.AdminAnalyticsHandler)
		adminGroup.POST("/knowledge/reindex", hb.AdminReindexHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Scout AI"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterChatRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
