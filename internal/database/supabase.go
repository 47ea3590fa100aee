package database

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/supabase-community/supabase-go"
)

// OrderSummary is the slice of an order row read back over PostgREST.
type OrderSummary struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	TotalAmount float64   `json:"total_amount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// RestInspector reads the Postgres tables through a Supabase PostgREST
// endpoint instead of a direct connection. The PostgREST client does not
// take a context, so requests are not cancellable.
type RestInspector struct {
	client *supabase.Client
}

func NewRestInspector(url, key string) (*RestInspector, error) {
	if url == "" || key == "" {
		return nil, fmt.Errorf("SUPABASE_URL and SUPABASE_ANON_KEY are required")
	}
	client, err := supabase.NewClient(url, key, nil)
	if err != nil {
		return nil, fmt.Errorf("create supabase client: %w", err)
	}
	return &RestInspector{client: client}, nil
}

func (r *RestInspector) CountOrders(_ context.Context) (int64, error) {
	_, count, err := r.client.From("orders").Select("id", "exact", false).Execute()
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return count, nil
}

// RecentOrders returns up to n orders, newest first.
func (r *RestInspector) RecentOrders(_ context.Context, n int) ([]OrderSummary, error) {
	data, _, err := r.client.From("orders").
		Select("id, user_id, total_amount, status, created_at", "", false).
		Order("created_at", nil).
		Limit(n, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	var orders []OrderSummary
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

func (r *RestInspector) Categories(_ context.Context) ([]string, error) {
	data, _, err := r.client.From("products").Select("category", "", false).Execute()
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	var rows []struct {
		Category string `json:"category"`
	}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	values := make([]string, len(rows))
	for i, row := range rows {
		values[i] = row.Category
	}
	return distinct(values), nil
}

func distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := []string{}
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
