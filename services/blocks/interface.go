package blocks

import (
	"context"

	blocksRepo "clinicblocks/database/repository/blocks"
	"clinicblocks/models"
	"clinicblocks/services/notification"
)

// BlockService is the administrative surface over resource blocks.
type BlockService interface {
	CreateBlock(ctx context.Context, input models.ResourceBlockInput, createdBy string) (*models.ResourceBlock, error)
	UpdateBlock(ctx context.Context, id string, patch models.BlockPatch) (*models.ResourceBlock, error)
	DeleteBlock(ctx context.Context, id, actor string) error
	GetBlock(ctx context.Context, id string) (*models.ResourceBlock, error)
	ListBlocks(ctx context.Context, resource models.ResourceID) ([]models.ResourceBlock, error)
	BlocksInRange(ctx context.Context, startDate, endDate string) ([]models.ResourceBlock, error)
	ClearBlocks(ctx context.Context) error
}

// DefaultBlockService is the production implementation.
type DefaultBlockService struct {
	Repo      blocksRepo.BlockRepository
	Publisher notification.BlockEventPublisher
}

// NewBlockService wires a service; a nil publisher drops events.
func NewBlockService(repo blocksRepo.BlockRepository, publisher notification.BlockEventPublisher) *DefaultBlockService {
	if publisher == nil {
		publisher = notification.NoopPublisher{}
	}
	return &DefaultBlockService{Repo: repo, Publisher: publisher}
}
