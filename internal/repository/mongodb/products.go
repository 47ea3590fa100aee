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

type ProductRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

// nextSeq reserves n consecutive insertion sequence numbers and returns the first.
func (r *ProductRepository) nextSeq(ctx context.Context, n int) (int64, error) {
	var counter struct {
		Value int64 `bson:"value"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": productCollectionName},
		bson.M{"$inc": bson.M{"value": int64(n)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("reserve product sequence: %w", err)
	}
	return counter.Value - int64(n) + 1, nil
}

func prepare(p *models.Product, seq int64) {
	if p.ID == "" {
		p.ID = newID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now()
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	p.Seq = seq
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	seq, err := r.nextSeq(ctx, 1)
	if err != nil {
		return err
	}
	prepare(p, seq)
	if _, err := r.collection.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to insert product: %w", translate(err))
	}
	return nil
}

func (r *ProductRepository) InsertMany(ctx context.Context, products []models.Product) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}
	first, err := r.nextSeq(ctx, len(products))
	if err != nil {
		return 0, err
	}
	docs := make([]any, len(products))
	for i := range products {
		prepare(&products[i], first+int64(i))
		docs[i] = products[i]
	}
	result, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("failed to insert products: %w", translate(err))
	}
	return len(result.InsertedIDs), nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	update := bson.M{"$set": bson.M{
		"name":           p.Name,
		"description":    p.Description,
		"price":          p.Price,
		"originalPrice":  p.OriginalPrice,
		"category":       p.Category,
		"subcategory":    p.Subcategory,
		"images":         p.Images,
		"features":       p.Features,
		"ratings":        p.Ratings,
		"featured":       p.Featured,
		"newArrival":     p.NewArrival,
		"newArrivalDate": p.NewArrivalDate,
	}}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"stock": 1})

	var current struct {
		Stock int `bson:"stock"`
	}
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": p.ID}, update, opts).Decode(&current)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", translate(err))
	}
	p.Stock = current.Stock
	return nil
}

func (r *ProductRepository) SetStock(ctx context.Context, id string, stock int) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"stock": stock}})
	if err != nil {
		return fmt.Errorf("failed to set stock: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete products: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *ProductRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to delete products: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *ProductRepository) List(ctx context.Context, q models.ProductQuery) ([]models.Product, int64, error) {
	filter := productFilter(q)

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	findOptions := options.Find().SetSort(productSort(q.Sort))
	if q.Limit > 0 {
		findOptions.SetLimit(int64(q.Limit))
		findOptions.SetSkip(int64(q.Offset()))
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, total, nil
}

func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			categories = append(categories, s)
		}
	}
	return categories, nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *ProductRepository) DecrementStock(ctx context.Context, id string, qty int) (bool, error) {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"stock": -qty}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to decrement stock: %w", err)
	}
	return result.MatchedCount == 1, nil
}

func (r *ProductRepository) IncrementStock(ctx context.Context, id string, qty int) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"stock": qty}})
	if err != nil {
		return fmt.Errorf("failed to increment stock: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) RenameCategory(ctx context.Context, from, to models.Category) (int64, error) {
	result, err := r.collection.UpdateMany(ctx,
		bson.M{"category": from},
		bson.M{"$set": bson.M{"category": to}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to rename category: %w", err)
	}
	return result.ModifiedCount, nil
}
