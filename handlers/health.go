package handlers

import (
	"net/http"

	"clinicblocks/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last backend health snapshot. Any failing backend answers 503.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	healthy := status.Mongo == nil || *status.Mongo
	for _, ok := range status.Redis {
		healthy = healthy && ok
	}

	code := http.StatusOK
	state := "ok"
	if !healthy {
		code = http.StatusServiceUnavailable
		state = "degraded"
	}
	c.JSON(code, gin.H{"status": state, "message": "Hi, I'm the clinic block service", "backends": status})
}
