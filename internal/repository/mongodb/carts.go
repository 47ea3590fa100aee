package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront-api/internal/models"
)

type CartRepository struct {
	collection *mongo.Collection
}

func (r *CartRepository) GetByUser(ctx context.Context, userID string) (*models.Cart, error) {
	var c models.Cart
	if err := r.collection.FindOne(ctx, bson.M{"user": userID}).Decode(&c); err != nil {
		return nil, translate(err)
	}
	if c.Items == nil {
		c.Items = []models.CartItem{}
	}
	return &c, nil
}

func (r *CartRepository) Save(ctx context.Context, cart *models.Cart) error {
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	cart.UpdatedAt = now()

	var saved models.Cart
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"user": cart.User},
		bson.M{
			"$set":         bson.M{"items": cart.Items, "updatedAt": cart.UpdatedAt},
			"$setOnInsert": bson.M{"_id": newID()},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&saved)
	if err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	cart.ID = saved.ID
	return nil
}

func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"user": userID},
		bson.M{"$set": bson.M{"items": bson.A{}, "updatedAt": now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
