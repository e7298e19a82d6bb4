package routes

import (
	"time"

	"clinicblocks/handlers"
	"clinicblocks/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterCatalogRoutes registers the read-only resource and exam catalogs.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/resources", hb.ResourcesHandler)
		api.GET("/exams", hb.ExamsHandler)
	}
}

// RegisterAvailabilityRoutes registers the slot checks used by the booking flow.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/availability")
	{
		api.GET("/resource", hb.ResourceAvailabilityHandler)
		api.GET("/exam", hb.ExamAvailabilityHandler)
		api.GET("/exam/slots", hb.ExamSlotsHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthAdminMiddleware())

		adminGroup.GET("/blocks", hb.ListBlocksHandler)
		adminGroup.GET("/blocks/range", hb.BlocksInRangeHandler)
		adminGroup.GET("/blocks/day", hb.BlocksForDayHandler)
		adminGroup.GET("/blocks/id/:id", hb.GetBlockHandler)
		adminGroup.POST("/blocks", hb.CreateBlockHandler)
		adminGroup.PATCH("/blocks/:id", hb.UpdateBlockHandler)
		adminGroup.DELETE("/blocks/:id", hb.DeleteBlockHandler)
		adminGroup.DELETE("/blocks", hb.ClearBlocksHandler)

		adminGroup.GET("/notifications", hb.ListNotificationsHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterCatalogRoutes(r, hb)
	RegisterAvailabilityRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
