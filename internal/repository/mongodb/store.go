// Package mongodb implements the repositories on MongoDB collections.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront-api/internal/repository"
)

const (
	productCollectionName = "products"
	cartCollectionName    = "carts"
	orderCollectionName   = "orders"
	userCollectionName    = "users"
	contactCollectionName = "contactmessages"
	counterCollectionName = "counters"
)

// New builds a Store on db. Closing the Store disconnects client.
func New(client *mongo.Client, db *mongo.Database) *repository.Store {
	s := repository.NewStore("mongo", client.Disconnect)
	counters := db.Collection(counterCollectionName)
	s.Products = &ProductRepository{collection: db.Collection(productCollectionName), counters: counters}
	s.Carts = &CartRepository{collection: db.Collection(cartCollectionName)}
	s.Orders = &OrderRepository{collection: db.Collection(orderCollectionName)}
	s.Users = &UserRepository{collection: db.Collection(userCollectionName)}
	s.Contacts = &ContactRepository{collection: db.Collection(contactCollectionName)}
	return s
}

// EnsureIndexes creates the unique and lookup indexes the repositories rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		userCollectionName: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		cartCollectionName: {
			{Keys: bson.D{{Key: "user", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		orderCollectionName: {
			{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		productCollectionName: {
			{Keys: bson.D{{Key: "category", Value: 1}}},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
	}
	for name, indexes := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("create %s indexes: %w", name, err)
		}
	}
	return nil
}

func newID() string {
	return uuid.NewString()
}

func now() time.Time {
	return time.Now().UTC()
}

func translate(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicate
	}
	return err
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
}

var (
	_ repository.ProductRepository = (*ProductRepository)(nil)
	_ repository.CartRepository    = (*CartRepository)(nil)
	_ repository.OrderRepository   = (*OrderRepository)(nil)
	_ repository.UserRepository    = (*UserRepository)(nil)
	_ repository.ContactRepository = (*ContactRepository)(nil)
)
