// FILE: database/repository/audit/indexes.go
package auditRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes on the runway_events collection.
func (r *mongoAuditRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "at", Value: -1}},
			Options: options.Index().SetName("at_desc_idx"),
		},
		{
			Keys:    bson.D{{Key: "type", Value: 1}, {Key: "minute", Value: 1}},
			Options: options.Index().SetName("type_minute_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create runway event indexes: %w", err)
	}
	return nil
}
