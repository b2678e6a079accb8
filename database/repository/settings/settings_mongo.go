package settingsRepo

import (
	"context"
	"fmt"
	"time"

	"servicehub/database"
	"servicehub/database/repository"
	"servicehub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const settingsDocID = "platform"

type MongoSettingsRepo struct {
	coll *mongo.Collection
}

func NewMongoSettingsRepo(db *mongo.Database) *MongoSettingsRepo {
	return &MongoSettingsRepo{coll: db.Collection("settings")}
}

func (r *MongoSettingsRepo) Get(ctx context.Context) (*models.Settings, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var s models.Settings
	if err := r.coll.FindOne(ctx, bson.M{"_id": settingsDocID}).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to fetch settings: %w", repository.MapMongoError(err))
	}
	return &s, nil
}

func (r *MongoSettingsRepo) Save(ctx context.Context, s *models.Settings) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": settingsDocID}, s, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
