// FILE: database/repository/blocks/indexes.go
package blocksRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes used by the block queries. No-op for non-mongo backends.
func EnsureIndexes(ctx context.Context, repo BlockRepository) error {
	m, ok := repo.(*mongoBlockRepo)
	if !ok {
		return nil
	}
	return m.EnsureIndexes(ctx)
}

func (r *mongoBlockRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Resolver lookups are per resource.
		{
			Keys:    bson.D{{Key: "resources", Value: 1}},
			Options: options.Index().SetName("resources_idx"),
		},
		{
			Keys:    bson.D{{Key: "startDate", Value: 1}, {Key: "endDate", Value: 1}},
			Options: options.Index().SetName("start_end_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create resource block indexes: %w", err)
	}
	return nil
}
