package mongodb

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront-api/internal/models"
)

// productFilter translates q into a find filter. The search term is quoted
// so user input never acts as a pattern.
func productFilter(q models.ProductQuery) bson.M {
	filter := bson.M{}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.Featured {
		filter["featured"] = true
	}
	if q.NewArrival {
		filter["newArrival"] = true
	}
	if q.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
		}
	}
	if q.MinPrice != nil || q.MaxPrice != nil {
		price := bson.M{}
		if q.MinPrice != nil {
			price["$gte"] = *q.MinPrice
		}
		if q.MaxPrice != nil {
			price["$lte"] = *q.MaxPrice
		}
		filter["price"] = price
	}
	return filter
}

func productSort(sort models.SortOrder) bson.D {
	tieBreak := bson.E{Key: "seq", Value: 1}
	switch sort {
	case models.SortOldest:
		return bson.D{{Key: "createdAt", Value: 1}, tieBreak}
	case models.SortPriceAsc:
		return bson.D{{Key: "price", Value: 1}, tieBreak}
	case models.SortPriceDesc:
		return bson.D{{Key: "price", Value: -1}, tieBreak}
	case models.SortRating:
		return bson.D{{Key: "ratings.average", Value: -1}, tieBreak}
	default:
		return bson.D{{Key: "createdAt", Value: -1}, tieBreak}
	}
}
