package handlers

import (
	"errors"
	"net/http"

	blocksRepo "clinicblocks/database/repository/blocks"
	"clinicblocks/models"
	"clinicblocks/services/availability"
	"clinicblocks/services/blocks"
	"clinicblocks/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BlockHandler exposes block administration to staff with the admin role.
type BlockHandler struct {
	Service  blocks.BlockService
	Resolver availability.AvailabilityService
}

func NewBlockHandler(svc blocks.BlockService, resolver availability.AvailabilityService) *BlockHandler {
	return &BlockHandler{Service: svc, Resolver: resolver}
}

// staffName is the display name set by the admin auth middleware.
func staffName(c *gin.Context) string {
	if v, ok := c.Get("staffName"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// respondError maps service errors onto HTTP responses.
func respondError(c *gin.Context, err error, logMsg string) {
	var ve *blocks.ValidationError
	switch {
	case errors.As(err, &ve):
		utils.JSONFieldError(c, ve.Field, ve.Message)
	case errors.Is(err, utils.ErrInvalidDate), errors.Is(err, utils.ErrInvalidClock):
		utils.JSONError(c, http.StatusBadRequest, "Invalid date or time", err.Error())
	case errors.Is(err, availability.ErrUnknownExam), errors.Is(err, availability.ErrUnknownResource):
		utils.JSONError(c, http.StatusBadRequest, "Unknown exam or resource", err.Error())
	case errors.Is(err, blocksRepo.ErrBlockNotFound):
		utils.JSONError(c, http.StatusNotFound, "Block not found", err.Error())
	case errors.Is(err, blocksRepo.ErrConcurrentUpdate):
		utils.JSONError(c, http.StatusConflict, "Block changed while updating, try again", err.Error())
	default:
		getLogger(c).Error(logMsg, zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, logMsg, "")
	}
}

// blockList renders a nil slice as [] rather than null.
func blockList(list []models.ResourceBlock) []models.ResourceBlock {
	if list == nil {
		return []models.ResourceBlock{}
	}
	return list
}

// CreateBlockHandler handles POST /api/admin/blocks.
func (h *BlockHandler) CreateBlockHandler(c *gin.Context) {
	var input models.ResourceBlockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	block, err := h.Service.CreateBlock(c.Request.Context(), input, staffName(c))
	if err != nil {
		respondError(c, err, "Failed to create block")
		return
	}
	c.JSON(http.StatusCreated, block)
}

// UpdateBlockHandler handles PATCH /api/admin/blocks/:id. Unknown ids answer 204.
func (h *BlockHandler) UpdateBlockHandler(c *gin.Context) {
	var patch models.BlockPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	block, err := h.Service.UpdateBlock(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err, "Failed to update block")
		return
	}
	if block == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, block)
}

// DeleteBlockHandler handles DELETE /api/admin/blocks/:id.
func (h *BlockHandler) DeleteBlockHandler(c *gin.Context) {
	if err := h.Service.DeleteBlock(c.Request.Context(), c.Param("id"), staffName(c)); err != nil {
		respondError(c, err, "Failed to delete block")
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearBlocksHandler handles DELETE /api/admin/blocks.
func (h *BlockHandler) ClearBlocksHandler(c *gin.Context) {
	if err := h.Service.ClearBlocks(c.Request.Context()); err != nil {
		respondError(c, err, "Failed to clear blocks")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BlockHandler) GetBlockHandler(c *gin.Context) {
	block, err := h.Service.GetBlock(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch block")
		return
	}
	c.JSON(http.StatusOK, block)
}

// ListBlocksHandler handles GET /api/admin/blocks?resource=.
func (h *BlockHandler) ListBlocksHandler(c *gin.Context) {
	list, err := h.Service.ListBlocks(c.Request.Context(), models.ResourceID(c.Query("resource")))
	if err != nil {
		respondError(c, err, "Failed to list blocks")
		return
	}
	c.JSON(http.StatusOK, blockList(list))
}

// BlocksInRangeHandler handles GET /api/admin/blocks/range?start=&end=.
func (h *BlockHandler) BlocksInRangeHandler(c *gin.Context) {
	start, end := c.Query("start"), c.Query("end")
	if start == "" || end == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing query parameters", "start and end are required")
		return
	}
	list, err := h.Service.BlocksInRange(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err, "Failed to query blocks")
		return
	}
	c.JSON(http.StatusOK, blockList(list))
}

// BlocksForDayHandler handles GET /api/admin/blocks/day?date=&resource=, the calendar overlay.
func (h *BlockHandler) BlocksForDayHandler(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing query parameters", "date is required")
		return
	}
	resource := models.ResourceID(c.Query("resource"))
	if resource != "" && !models.IsKnownResource(resource) {
		utils.JSONError(c, http.StatusBadRequest, "Unknown exam or resource", string(resource))
		return
	}
	list, err := h.Resolver.BlocksForDay(c.Request.Context(), date, resource)
	if err != nil {
		respondError(c, err, "Failed to query blocks")
		return
	}
	c.JSON(http.StatusOK, blockList(list))
}
