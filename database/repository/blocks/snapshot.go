// File: database/repository/blocks/snapshot.go
package blocksRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"clinicblocks/models"
	"clinicblocks/utils"

	"go.uber.org/zap"
)

// persister reads and writes the serialized collection as one JSON array.
type persister interface {
	load(ctx context.Context) ([]byte, error)
	save(ctx context.Context, data []byte) error
}

// snapshotBlockRepo keeps the collection in memory and writes the whole array through its
// persister on every mutation. Writers hold the lock across persist and swap, so a reader sees
// either the previous or the next collection, never a half-applied one.
type snapshotBlockRepo struct {
	mu      sync.RWMutex
	blocks  []models.ResourceBlock
	store   persister
	backend string
}

func newSnapshotBlockRepo(ctx context.Context, backend string, store persister) *snapshotBlockRepo {
	r := &snapshotBlockRepo{store: store, backend: backend}
	if store == nil {
		return r
	}

	logger := utils.GetLogger()
	data, err := store.load(ctx)
	if err != nil {
		logger.Error("failed to load resource blocks, starting empty",
			zap.String("backend", backend), zap.Error(err))
		return r
	}
	if len(data) == 0 {
		return r
	}
	var blocks []models.ResourceBlock
	if err := json.Unmarshal(data, &blocks); err != nil {
		logger.Warn("corrupt resource blocks payload, resetting to empty",
			zap.String("backend", backend), zap.Error(err))
		return r
	}
	r.blocks = blocks
	logger.Info("resource blocks loaded", zap.String("backend", backend), zap.Int("count", len(blocks)))
	return r
}

// mutate applies fn to a copy of the collection and commits it only after it was persisted.
// An error from fn aborts the mutation with nothing written.
func (r *snapshotBlockRepo) mutate(ctx context.Context, fn func([]models.ResourceBlock) ([]models.ResourceBlock, bool, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next, changed, err := fn(cloneBlocks(r.blocks))
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	if r.store != nil {
		if next == nil {
			next = []models.ResourceBlock{}
		}
		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("encode resource blocks: %w", err)
		}
		if err := r.store.save(ctx, data); err != nil {
			return fmt.Errorf("persist resource blocks (%s): %w", r.backend, err)
		}
	}
	r.blocks = next
	return nil
}

func (r *snapshotBlockRepo) Add(ctx context.Context, in models.ResourceBlockInput) (*models.ResourceBlock, error) {
	id, createdAt := newBlockMeta()
	block := in.ToBlock(id, createdAt)
	err := r.mutate(ctx, func(cur []models.ResourceBlock) ([]models.ResourceBlock, bool, error) {
		return append(cur, block), true, nil
	})
	if err != nil {
		return nil, err
	}
	out := block.Clone()
	return &out, nil
}

func (r *snapshotBlockRepo) Remove(ctx context.Context, id string) error {
	return r.mutate(ctx, func(cur []models.ResourceBlock) ([]models.ResourceBlock, bool, error) {
		kept := cur[:0]
		for _, b := range cur {
			if b.ID != id {
				kept = append(kept, b)
			}
		}
		return kept, len(kept) != len(cur), nil
	})
}

func (r *snapshotBlockRepo) Update(ctx context.Context, id string, patch models.BlockPatch) error {
	return r.mutate(ctx, func(cur []models.ResourceBlock) ([]models.ResourceBlock, bool, error) {
		for i := range cur {
			if cur[i].ID == id {
				cur[i] = patch.Apply(cur[i])
				return cur, true, nil
			}
		}
		return cur, false, nil
	})
}

func (r *snapshotBlockRepo) UpdateChecked(ctx context.Context, id string, patch models.BlockPatch, check BlockCheck) (*models.ResourceBlock, error) {
	var updated *models.ResourceBlock
	err := r.mutate(ctx, func(cur []models.ResourceBlock) ([]models.ResourceBlock, bool, error) {
		for i := range cur {
			if cur[i].ID != id {
				continue
			}
			merged := patch.Apply(cur[i])
			if err := check(merged); err != nil {
				return nil, false, err
			}
			cur[i] = merged
			out := merged.Clone()
			updated = &out
			return cur, !patch.IsEmpty(), nil
		}
		return cur, false, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *snapshotBlockRepo) GetByID(_ context.Context, id string) (*models.ResourceBlock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.blocks {
		if b.ID == id {
			out := b.Clone()
			return &out, nil
		}
	}
	return nil, ErrBlockNotFound
}

func (r *snapshotBlockRepo) ListAll(_ context.Context) ([]models.ResourceBlock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneBlocks(r.blocks), nil
}

func (r *snapshotBlockRepo) ListByResource(_ context.Context, resource models.ResourceID) ([]models.ResourceBlock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.ResourceBlock
	for _, b := range r.blocks {
		if b.HasResource(resource) {
			out = append(out, b.Clone())
		}
	}
	return out, nil
}

func (r *snapshotBlockRepo) ListInRange(_ context.Context, startDate, endDate string) ([]models.ResourceBlock, error) {
	rng, err := parseRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.ResourceBlock
	for _, b := range r.blocks {
		if rng.overlaps(b) {
			out = append(out, b.Clone())
		}
	}
	return out, nil
}

func (r *snapshotBlockRepo) ClearAll(ctx context.Context) error {
	return r.mutate(ctx, func(cur []models.ResourceBlock) ([]models.ResourceBlock, bool, error) {
		return []models.ResourceBlock{}, true, nil
	})
}

func cloneBlocks(in []models.ResourceBlock) []models.ResourceBlock {
	if in == nil {
		return nil
	}
	out := make([]models.ResourceBlock, len(in))
	for i, b := range in {
		out[i] = b.Clone()
	}
	return out
}
