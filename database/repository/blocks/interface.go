// File: database/repository/blocks/interface.go
package blocksRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinicblocks/models"
	"clinicblocks/utils"

	"github.com/google/uuid"
)

// StorageKey is the fixed key under which the whole collection is serialized.
const StorageKey = "medical-app-resource-blocks"

var (
	ErrBlockNotFound = errors.New("resource block not found")
	// ErrConcurrentUpdate is returned when a block kept changing under a checked update.
	ErrConcurrentUpdate = errors.New("resource block changed concurrently")
)

// BlockCheck vets a merged block before a checked update commits it.
type BlockCheck func(models.ResourceBlock) error

// BlockRepository is the system of record for resource blocks.
// Remove and Update on an unknown id are no-ops, not errors.
type BlockRepository interface {
	Add(ctx context.Context, in models.ResourceBlockInput) (*models.ResourceBlock, error)
	Remove(ctx context.Context, id string) error
	Update(ctx context.Context, id string, patch models.BlockPatch) error
	// UpdateChecked merges patch into the current block and commits only when check accepts
	// the result, with no other write in between. Unknown ids return (nil, nil).
	UpdateChecked(ctx context.Context, id string, patch models.BlockPatch, check BlockCheck) (*models.ResourceBlock, error)
	GetByID(ctx context.Context, id string) (*models.ResourceBlock, error)
	ListAll(ctx context.Context) ([]models.ResourceBlock, error)
	ListByResource(ctx context.Context, resource models.ResourceID) ([]models.ResourceBlock, error)
	ListInRange(ctx context.Context, startDate, endDate string) ([]models.ResourceBlock, error)
	ClearAll(ctx context.Context) error
}

// nowFunc is swapped in tests.
var nowFunc = time.Now

func newBlockMeta() (id, createdAt string) {
	return "block-" + uuid.New().String(), nowFunc().UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// dateRange is a parsed inclusive query range.
type dateRange struct {
	start, end time.Time
}

func parseRange(startDate, endDate string) (dateRange, error) {
	s, err := utils.ParseLocalDate(startDate)
	if err != nil {
		return dateRange{}, fmt.Errorf("range start: %w", err)
	}
	e, err := utils.ParseLocalDate(endDate)
	if err != nil {
		return dateRange{}, fmt.Errorf("range end: %w", err)
	}
	return dateRange{start: s, end: e}, nil
}

// overlaps applies the three overlap conditions to a block's base window: its start lies in
// the range, its end lies in the range, or it spans the whole range.
func (r dateRange) overlaps(b models.ResourceBlock) bool {
	bs, err := utils.ParseLocalDate(b.StartDate)
	if err != nil {
		return false
	}
	be, err := utils.ParseLocalDate(b.EndDate)
	if err != nil {
		return false
	}
	startInside := !bs.Before(r.start) && !bs.After(r.end)
	endInside := !be.Before(r.start) && !be.After(r.end)
	spans := !bs.After(r.start) && !be.Before(r.end)
	return startInside || endInside || spans
}
