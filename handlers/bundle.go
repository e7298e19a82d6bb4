package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Public catalog and availability endpoints
	HealthHandler               gin.HandlerFunc
	ResourcesHandler            gin.HandlerFunc
	ExamsHandler                gin.HandlerFunc
	ResourceAvailabilityHandler gin.HandlerFunc
	ExamAvailabilityHandler     gin.HandlerFunc
	ExamSlotsHandler            gin.HandlerFunc

	// Admin block endpoints
	ListBlocksHandler    gin.HandlerFunc
	GetBlockHandler      gin.HandlerFunc
	BlocksInRangeHandler gin.HandlerFunc
	BlocksForDayHandler  gin.HandlerFunc
	CreateBlockHandler   gin.HandlerFunc
	UpdateBlockHandler   gin.HandlerFunc
	DeleteBlockHandler   gin.HandlerFunc
	ClearBlocksHandler   gin.HandlerFunc

	// Admin notifications
	ListNotificationsHandler gin.HandlerFunc
}

// NewHandlerBundle assembles the bundle from the wired handlers.
func NewHandlerBundle(bh *BlockHandler, ah *AvailabilityHandler, nh *NotificationHandler) *HandlerBundle {
	return &HandlerBundle{
		HealthHandler:               HealthHandler,
		ResourcesHandler:            ResourcesHandler,
		ExamsHandler:                ExamsHandler(ah.Resolver),
		ResourceAvailabilityHandler: ah.ResourceAvailabilityHandler,
		ExamAvailabilityHandler:     ah.ExamAvailabilityHandler,
		ExamSlotsHandler:            ah.ExamSlotsHandler,

		ListBlocksHandler:    bh.ListBlocksHandler,
		GetBlockHandler:      bh.GetBlockHandler,
		BlocksInRangeHandler: bh.BlocksInRangeHandler,
		BlocksForDayHandler:  bh.BlocksForDayHandler,
		CreateBlockHandler:   bh.CreateBlockHandler,
		UpdateBlockHandler:   bh.UpdateBlockHandler,
		DeleteBlockHandler:   bh.DeleteBlockHandler,
		ClearBlocksHandler:   bh.ClearBlocksHandler,

		ListNotificationsHandler: nh.ListNotificationsHandler,
	}
}
