// File: database/repository/blocks/mongo.go
package blocksRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinicblocks/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const blocksCollection = "resource_blocks"

// maxUpdateAttempts bounds the compare-and-swap loop of UpdateChecked.
const maxUpdateAttempts = 3

type mongoBlockRepo struct {
	coll *mongo.Collection
}

// NewMongoBlockRepo constructs a MongoDB BlockRepository, one document per block.
func NewMongoBlockRepo(db *mongo.Database) BlockRepository {
	return &mongoBlockRepo{coll: db.Collection(blocksCollection)}
}

func (r *mongoBlockRepo) Add(ctx context.Context, in models.ResourceBlockInput) (*models.ResourceBlock, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	id, createdAt := newBlockMeta()
	block := in.ToBlock(id, createdAt)
	if _, err := r.coll.InsertOne(ctx, block); err != nil {
		return nil, fmt.Errorf("failed to insert resource block: %w", err)
	}
	return &block, nil
}

func (r *mongoBlockRepo) Remove(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// DeletedCount == 0 is fine: removing an unknown block is idempotent.
	if _, err := r.coll.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("failed to delete resource block: %w", err)
	}
	return nil
}

func (r *mongoBlockRepo) Update(ctx context.Context, id string, patch models.BlockPatch) error {
	set := patchToSet(patch)
	if len(set) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set}); err != nil {
		return fmt.Errorf("failed to update resource block: %w", err)
	}
	return nil
}

// UpdateChecked validates against the document it read and writes with a filter that only
// matches while that document is unchanged. A lost race rereads and checks again.
func (r *mongoBlockRepo) UpdateChecked(ctx context.Context, id string, patch models.BlockPatch, check BlockCheck) (*models.ResourceBlock, error) {
	set := patchToSet(patch)
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		current, err := r.GetByID(ctx, id)
		if errors.Is(err, ErrBlockNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		merged := patch.Apply(*current)
		if err := check(merged); err != nil {
			return nil, err
		}
		if len(set) == 0 {
			return &merged, nil
		}
		swapped, err := r.swap(ctx, *current, set)
		if err != nil {
			return nil, err
		}
		if swapped {
			return &merged, nil
		}
	}
	return nil, fmt.Errorf("update resource block %s: %w", id, ErrConcurrentUpdate)
}

func (r *mongoBlockRepo) swap(ctx context.Context, prev models.ResourceBlock, set bson.M) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, unchangedFilter(prev), bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("failed to update resource block: %w", err)
	}
	return res.MatchedCount == 1, nil
}

// unchangedFilter matches prev's document only while every patchable field still holds the
// value prev was read with.
func unchangedFilter(prev models.ResourceBlock) bson.M {
	filter := bson.M{
		"id":         prev.ID,
		"resources":  prev.Resources,
		"startDate":  prev.StartDate,
		"endDate":    prev.EndDate,
		"startTime":  prev.StartTime,
		"endTime":    prev.EndTime,
		"reason":     prev.Reason,
		"recurrence": prev.Recurrence,
	}
	// null matches the field being absent, which is how an empty value is stored.
	if prev.RecurrenceEndDate == "" {
		filter["recurrenceEndDate"] = nil
	} else {
		filter["recurrenceEndDate"] = prev.RecurrenceEndDate
	}
	return filter
}

func (r *mongoBlockRepo) GetByID(ctx context.Context, id string) (*models.ResourceBlock, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var block models.ResourceBlock
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&block)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find resource block: %w", err)
	}
	return &block, nil
}

func (r *mongoBlockRepo) ListAll(ctx context.Context) ([]models.ResourceBlock, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoBlockRepo) ListByResource(ctx context.Context, resource models.ResourceID) ([]models.ResourceBlock, error) {
	return r.find(ctx, bson.M{"resources": resource})
}

// ListInRange relies on YYYY-MM-DD strings sorting in calendar order.
func (r *mongoBlockRepo) ListInRange(ctx context.Context, startDate, endDate string) ([]models.ResourceBlock, error) {
	if _, err := parseRange(startDate, endDate); err != nil {
		return nil, err
	}
	filter := bson.M{"$or": bson.A{
		bson.M{"startDate": bson.M{"$gte": startDate, "$lte": endDate}},
		bson.M{"endDate": bson.M{"$gte": startDate, "$lte": endDate}},
		bson.M{"startDate": bson.M{"$lte": startDate}, "endDate": bson.M{"$gte": endDate}},
	}}
	return r.find(ctx, filter)
}

func (r *mongoBlockRepo) ClearAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear resource blocks: %w", err)
	}
	return nil
}

func (r *mongoBlockRepo) find(ctx context.Context, filter bson.M) ([]models.ResourceBlock, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch resource blocks: %w", err)
	}
	defer cursor.Close(ctx)

	var blocks []models.ResourceBlock
	if err := cursor.All(ctx, &blocks); err != nil {
		return nil, fmt.Errorf("error decoding resource blocks: %w", err)
	}
	return blocks, nil
}

func patchToSet(p models.BlockPatch) bson.M {
	set := bson.M{}
	if p.Resources != nil {
		set["resources"] = p.Resources
	}
	if p.StartDate != nil {
		set["startDate"] = *p.StartDate
	}
	if p.EndDate != nil {
		set["endDate"] = *p.EndDate
	}
	if p.StartTime != nil {
		set["startTime"] = *p.StartTime
	}
	if p.EndTime != nil {
		set["endTime"] = *p.EndTime
	}
	if p.Reason != nil {
		set["reason"] = *p.Reason
	}
	if p.Recurrence != nil {
		set["recurrence"] = *p.Recurrence
	}
	if p.RecurrenceEndDate != nil {
		set["recurrenceEndDate"] = *p.RecurrenceEndDate
	}
	return set
}
