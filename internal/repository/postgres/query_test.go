package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront-api/internal/models"
)

func TestProductFilter(t *testing.T) {
	minPrice, maxPrice := 100.0, 500.0

	tests := []struct {
		name      string
		query     models.ProductQuery
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "no predicates",
			query:     models.ProductQuery{},
			wantWhere: "",
			wantArgs:  nil,
		},
		{
			name:      "category and flags",
			query:     models.ProductQuery{Category: "Sarees", Featured: true, NewArrival: true},
			wantWhere: " WHERE category = $1 AND featured = TRUE AND new_arrival = TRUE",
			wantArgs:  []any{"Sarees"},
		},
		{
			name:      "search escapes wildcards",
			query:     models.ProductQuery{Search: "50%_off"},
			wantWhere: " WHERE (name ILIKE $1 OR description ILIKE $1)",
			wantArgs:  []any{`%50\%\_off%`},
		},
		{
			name:      "price range",
			query:     models.ProductQuery{Category: "Jewellery", MinPrice: &minPrice, MaxPrice: &maxPrice},
			wantWhere: " WHERE category = $1 AND price >= $2 AND price <= $3",
			wantArgs:  []any{"Jewellery", 100.0, 500.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := productFilter(tt.query)
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestProductListQuery(t *testing.T) {
	list, count, args := productListQuery(models.ProductQuery{
		Category: "Stationery",
		Sort:     models.SortPriceDesc,
		Page:     3,
		Limit:    10,
	})

	assert.Equal(t, "SELECT COUNT(*) FROM products WHERE category = $1", count)
	assert.Contains(t, list, " WHERE category = $1 ORDER BY price DESC, seq ASC LIMIT 10 OFFSET 20")
	assert.Equal(t, []any{"Stationery"}, args)

	unsliced, _, _ := productListQuery(models.ProductQuery{Sort: models.SortNewest})
	assert.NotContains(t, unsliced, "LIMIT")
	assert.Contains(t, unsliced, "ORDER BY created_at DESC, seq ASC")
}
