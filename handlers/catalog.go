package handlers

import (
	"net/http"

	"clinicblocks/models"
	"clinicblocks/services/availability"

	"github.com/gin-gonic/gin"
)

// ResourcesHandler handles GET /api/resources.
func ResourcesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.ResourceCatalog)
}

// ExamsHandler returns the exam catalog with the resources each exam needs.
func ExamsHandler(resolver availability.AvailabilityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, resolver.ExamCatalog())
	}
}
