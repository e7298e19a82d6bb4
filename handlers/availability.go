package handlers

import (
	"net/http"

	"clinicblocks/config"
	"clinicblocks/models"
	"clinicblocks/services/availability"
	"clinicblocks/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler answers the booking flow's slot checks.
type AvailabilityHandler struct {
	Resolver  availability.AvailabilityService
	SlotTimes []string
}

// NewAvailabilityHandler uses the configured slot grid, falling back to the default one.
func NewAvailabilityHandler(resolver availability.AvailabilityService) *AvailabilityHandler {
	slots := config.AppConfig.SlotTimes
	if len(slots) == 0 {
		slots = config.DefaultSlotTimes
	}
	return &AvailabilityHandler{Resolver: resolver, SlotTimes: slots}
}

func requireQuery(c *gin.Context, keys ...string) (map[string]string, bool) {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		v := c.Query(k)
		if v == "" {
			utils.JSONError(c, http.StatusBadRequest, "Missing query parameters", k+" is required")
			return nil, false
		}
		out[k] = v
	}
	return out, true
}

// ResourceAvailabilityHandler handles GET /api/availability/resource?resource=&date=&time=.
func (h *AvailabilityHandler) ResourceAvailabilityHandler(c *gin.Context) {
	q, ok := requireQuery(c, "resource", "date", "time")
	if !ok {
		return
	}
	resource := models.ResourceID(q["resource"])
	if !models.IsKnownResource(resource) {
		utils.JSONError(c, http.StatusBadRequest, "Unknown exam or resource", q["resource"])
		return
	}

	block, err := h.Resolver.BlockingBlock(c.Request.Context(), resource, q["date"], q["time"])
	if err != nil {
		respondError(c, err, "Failed to check availability")
		return
	}
	resp := models.AvailabilityResponse{Date: q["date"], Time: q["time"], Resource: string(resource)}
	if block != nil {
		resp.Blocked = true
		resp.Message = models.BlockedSlotMessage
		resp.Reason = block.Reason
	}
	c.JSON(http.StatusOK, resp)
}

// ExamAvailabilityHandler handles GET /api/availability/exam?exam=&date=&time=.
func (h *AvailabilityHandler) ExamAvailabilityHandler(c *gin.Context) {
	q, ok := requireQuery(c, "exam", "date", "time")
	if !ok {
		return
	}
	status, err := h.Resolver.ExamSlotStatus(c.Request.Context(), models.ExamName(q["exam"]), q["date"], q["time"])
	if err != nil {
		respondError(c, err, "Failed to check availability")
		return
	}
	c.JSON(http.StatusOK, status)
}

// ExamSlotsHandler handles GET /api/availability/exam/slots?exam=&date=.
func (h *AvailabilityHandler) ExamSlotsHandler(c *gin.Context) {
	q, ok := requireQuery(c, "exam", "date")
	if !ok {
		return
	}
	slots, err := h.Resolver.ExamDaySlots(c.Request.Context(), models.ExamName(q["exam"]), q["date"], h.SlotTimes)
	if err != nil {
		respondError(c, err, "Failed to build slot grid")
		return
	}
	c.JSON(http.StatusOK, gin.H{"exam": q["exam"], "date": q["date"], "slots": slots})
}
