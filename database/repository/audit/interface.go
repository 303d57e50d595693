// File: database/repository/audit/interface.go
package auditRepo

import (
	"context"

	"runway/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AuditRepository is the append-only journal of runway decisions.
type AuditRepository interface {
	Record(ctx context.Context, event models.RunwayEvent) error
	Recent(ctx context.Context, limit int64) ([]models.RunwayEvent, error)
	EnsureIndexes() error
}

type mongoAuditRepo struct {
	coll *mongo.Collection
}

// NewMongoAuditRepo constructs a MongoDB AuditRepository on db's "runway_events" collection.
func NewMongoAuditRepo(db *mongo.Database) AuditRepository {
	return &mongoAuditRepo{
		coll: db.Collection("runway_events"),
	}
}
