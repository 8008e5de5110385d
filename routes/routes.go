package routes

import (
	"net/http"
	"time"

	"palco/handlers"
	"palco/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterVenueRoutes registers venue browsing endpoints.
func RegisterVenueRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/venues")
	{
		api.Use(middleware.ManagerAuthMiddleware())
		api.GET("", hb.ListVenuesHandler)
		api.GET("/:id/slots", hb.DaySlotsHandler)
	}
}

// RegisterScheduleRoutes registers the blocked-slot ledger endpoints.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/schedule")
	{
		api.Use(middleware.ManagerAuthMiddleware())
		api.POST("/select", hb.SelectVenueHandler)
		api.POST("/foreground", hb.ForegroundHandler)
		api.GET("/blocked", hb.BlockedSlotsHandler)
		api.GET("/blocked/detailed", hb.BlockedSlotsDetailedHandler)
		api.POST("/toggle", hb.ToggleSlotHandler)
		api.POST("/unblock/:blockId", hb.UnblockByIDHandler)
		api.POST("/reset", hb.ResetConfigurationHandler)
	}
}

// RegisterSelectionRoutes registers the contiguous-range selection endpoints.
func RegisterSelectionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/selection")
	{
		api.Use(middleware.ManagerAuthMiddleware())
		api.POST("", hb.BeginSelectionHandler)
		api.GET("/:sessionID", hb.GetSelectionHandler)
		api.POST("/:sessionID/pick", hb.PickSlotHandler)
		api.POST("/:sessionID/submit", hb.SubmitSelectionHandler)
		api.DELETE("/:sessionID", hb.CancelSelectionHandler)
	}
}

// RegisterApprovalRoutes registers the event-request approval endpoints.
func RegisterApprovalRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/event-requests")
	{
		api.Use(middleware.ManagerAuthMiddleware())
		api.POST("/:id/approve", hb.ApproveRequestHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Palco"})
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

	RegisterHealthRoute(r)
	RegisterVenueRoutes(r, hb)
	RegisterScheduleRoutes(r, hb)
	RegisterSelectionRoutes(r, hb)
	RegisterApprovalRoutes(r, hb)
}
