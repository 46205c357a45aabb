package bootstrap

import (
	"context"
	"fmt"

	"clinic-core/internal/infrastructure/database/mongodb"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IndexManager ensures the MongoDB indexes exist before the server accepts
// traffic. Index creation is idempotent, re-running on every start is safe.
type IndexManager struct {
	db *mongodb.Client
}

// NewIndexManager creates a new index manager.
func NewIndexManager(db *mongodb.Client) *IndexManager {
	return &IndexManager{db: db}
}

// EnsureIndexes creates the patients and users indexes.
func (im *IndexManager) EnsureIndexes(ctx context.Context) error {
	if err := im.ensurePatientIndexes(ctx); err != nil {
		return fmt.Errorf("patients indexes: %w", err)
	}
	if err := im.ensureUserIndexes(ctx); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	fmt.Printf("[BOOTSTRAP] MongoDB indexes ensured\n")
	return nil
}

func (im *IndexManager) ensurePatientIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "firstName", Value: 1}, {Key: "lastName", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "visitDate", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "gender", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "birthDate", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
		{
			// Weighted text index behind the free-text search filter
			Keys: bson.D{
				{Key: "firstName", Value: "text"},
				{Key: "lastName", Value: "text"},
				{Key: "phone", Value: "text"},
				{Key: "address", Value: "text"},
			},
			Options: options.Index().
				SetName("patient_text_search").
				SetWeights(bson.M{
					"firstName": 10,
					"lastName":  10,
					"phone":     5,
					"address":   1,
				}),
		},
	}

	return im.db.CreateIndexes(ctx, "patients", models)
}

func (im *IndexManager) ensureUserIndexes(ctx context.Context) error {
	return im.db.CreateIndex(ctx, "users",
		bson.D{{Key: "email", Value: 1}},
		options.Index().SetUnique(true),
	)
}
