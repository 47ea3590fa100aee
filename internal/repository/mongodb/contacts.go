package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront-api/internal/models"
	"storefront-api/internal/repository"
)

type ContactRepository struct {
	collection *mongo.Collection
}

func (r *ContactRepository) Create(ctx context.Context, m *models.ContactMessage) error {
	if m.ID == "" {
		m.ID = newID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now()
	}
	if _, err := r.collection.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("failed to insert contact message: %w", translate(err))
	}
	return nil
}

func (r *ContactRepository) GetByID(ctx context.Context, id string) (*models.ContactMessage, error) {
	var m models.ContactMessage
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (r *ContactRepository) find(ctx context.Context, opts *options.FindOptions) ([]models.ContactMessage, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	defer cursor.Close(ctx)

	messages := []models.ContactMessage{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode contact messages: %w", err)
	}
	return messages, nil
}

func (r *ContactRepository) List(ctx context.Context) ([]models.ContactMessage, error) {
	return r.find(ctx, newestFirst())
}

func (r *ContactRepository) ListRecent(ctx context.Context, n int) ([]models.ContactMessage, error) {
	return r.find(ctx, newestFirst().SetLimit(int64(n)))
}

func (r *ContactRepository) UpdateStatus(ctx context.Context, id string, status models.ContactStatus) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("failed to update contact status: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ContactRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
