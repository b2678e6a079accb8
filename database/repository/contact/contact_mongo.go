package contactRepo

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

type MongoContactRepo struct {
	coll *mongo.Collection
}

func NewMongoContactRepo(db *mongo.Database) *MongoContactRepo {
	return &MongoContactRepo{coll: db.Collection("contacts")}
}

func (r *MongoContactRepo) EnsureIndexes(ctx context.Context) error {
	return database.EnsureIndexes(ctx, r.coll, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
}

func (r *MongoContactRepo) Create(ctx context.Context, contact *models.Contact) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, contact); err != nil {
		return fmt.Errorf("failed to create contact: %w", repository.MapMongoError(err))
	}
	return nil
}

func (r *MongoContactRepo) GetByID(ctx context.Context, id string) (*models.Contact, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var contact models.Contact
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&contact); err != nil {
		return nil, fmt.Errorf("failed to fetch contact with id %s: %w", id, repository.MapMongoError(err))
	}
	return &contact, nil
}

func (r *MongoContactRepo) List(ctx context.Context, status string) ([]models.Contact, error) {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve contacts: %w", err)
	}
	contacts := []models.Contact{}
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, fmt.Errorf("failed to decode contacts: %w", err)
	}
	return contacts, nil
}

func (r *MongoContactRepo) Update(ctx context.Context, contact *models.Contact) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	result, err := r.coll.ReplaceOne(ctx, bson.M{"id": contact.ID}, contact)
	if err != nil {
		return fmt.Errorf("failed to update contact with id %s: %w", contact.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("contact with id %s: %w", contact.ID, repository.ErrNotFound)
	}
	return nil
}

func (r *MongoContactRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete contact with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("contact with id %s: %w", id, repository.ErrNotFound)
	}
	return nil
}
