package blocks

import (
	"context"
	"errors"
	"fmt"

	blocksRepo "clinicblocks/database/repository/blocks"
	"clinicblocks/models"
	"clinicblocks/utils"

	"go.uber.org/zap"
)

func (s *DefaultBlockService) CreateBlock(ctx context.Context, input models.ResourceBlockInput, createdBy string) (*models.ResourceBlock, error) {
	input.Reason = NormalizeReason(input.Reason)
	if input.Recurrence == "" {
		input.Recurrence = models.RecurrenceNone
	}
	input.CreatedBy = createdBy

	if err := validateBlock(input.ToBlock("", "")); err != nil {
		return nil, err
	}

	block, err := s.Repo.Add(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("CreateBlock: %w", err)
	}

	utils.GetLogger().Info("Resource block created",
		zap.String("blockID", block.ID),
		zap.Any("resources", block.Resources),
		zap.String("startDate", block.StartDate),
		zap.String("endDate", block.EndDate),
		zap.String("createdBy", block.CreatedBy))

	s.publish(ctx, models.BlockEventPayload{
		Event:     "created",
		BlockID:   block.ID,
		Resources: block.Resources,
		StartDate: block.StartDate,
		EndDate:   block.EndDate,
		Reason:    block.Reason,
		Actor:     createdBy,
	})
	return block, nil
}

// UpdateBlock merges patch into the stored block. Validation runs against the block the store
// commits, so two concurrent patches cannot combine into an invalid block. An unknown id
// returns (nil, nil).
func (s *DefaultBlockService) UpdateBlock(ctx context.Context, id string, patch models.BlockPatch) (*models.ResourceBlock, error) {
	if patch.IsEmpty() {
		current, err := s.Repo.GetByID(ctx, id)
		if errors.Is(err, blocksRepo.ErrBlockNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("UpdateBlock: %w", err)
		}
		return current, nil
	}

	if patch.Reason != nil {
		normalized := NormalizeReason(*patch.Reason)
		patch.Reason = &normalized
	}
	updated, err := s.Repo.UpdateChecked(ctx, id, patch, validateBlock)
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			return nil, err
		}
		return nil, fmt.Errorf("UpdateBlock: %w", err)
	}
	if updated != nil {
		utils.GetLogger().Info("Resource block updated", zap.String("blockID", id))
	}
	return updated, nil
}

// DeleteBlock is idempotent; only an existing block produces an event.
func (s *DefaultBlockService) DeleteBlock(ctx context.Context, id, actor string) error {
	existing, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, blocksRepo.ErrBlockNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("DeleteBlock: %w", err)
	}
	if err := s.Repo.Remove(ctx, id); err != nil {
		return fmt.Errorf("DeleteBlock: %w", err)
	}

	utils.GetLogger().Info("Resource block deleted", zap.String("blockID", id), zap.String("actor", actor))
	s.publish(ctx, models.BlockEventPayload{
		Event:     "deleted",
		BlockID:   id,
		Resources: existing.Resources,
		StartDate: existing.StartDate,
		EndDate:   existing.EndDate,
		Actor:     actor,
	})
	return nil
}

func (s *DefaultBlockService) GetBlock(ctx context.Context, id string) (*models.ResourceBlock, error) {
	return s.Repo.GetByID(ctx, id)
}

// ListBlocks returns every block, or only those for resource when it is non-empty.
func (s *DefaultBlockService) ListBlocks(ctx context.Context, resource models.ResourceID) ([]models.ResourceBlock, error) {
	if resource == "" {
		return s.Repo.ListAll(ctx)
	}
	if !models.IsKnownResource(resource) {
		return nil, invalid("resource", fmt.Sprintf("Recurso desconocido: %s.", resource))
	}
	return s.Repo.ListByResource(ctx, resource)
}

func (s *DefaultBlockService) BlocksInRange(ctx context.Context, startDate, endDate string) ([]models.ResourceBlock, error) {
	if _, err := utils.ParseLocalDate(startDate); err != nil {
		return nil, invalid("start", "Fecha de inicio inválida.")
	}
	if _, err := utils.ParseLocalDate(endDate); err != nil {
		return nil, invalid("end", "Fecha de fin inválida.")
	}
	return s.Repo.ListInRange(ctx, startDate, endDate)
}

func (s *DefaultBlockService) ClearBlocks(ctx context.Context) error {
	if err := s.Repo.ClearAll(ctx); err != nil {
		return fmt.Errorf("ClearBlocks: %w", err)
	}
	utils.GetLogger().Warn("All resource blocks cleared")
	return nil
}

// publish never fails the calling operation; the block is already stored.
func (s *DefaultBlockService) publish(ctx context.Context, payload models.BlockEventPayload) {
	if err := s.Publisher.PublishBlockEvent(ctx, payload); err != nil {
		utils.GetLogger().Error("Failed to publish block event",
			zap.String("event", payload.Event), zap.String("blockID", payload.BlockID), zap.Error(err))
	}
}
