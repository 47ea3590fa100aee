// Package memory keeps every collection in process memory. It backs the
// "memory" driver for local development and the service and handler tests.
package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"storefront-api/internal/repository"
)

// New returns a Store whose repositories share nothing but the clock.
func New() *repository.Store {
	s := repository.NewStore("memory", func(context.Context) error { return nil })
	s.Products = NewProductRepository()
	s.Carts = NewCartRepository()
	s.Orders = NewOrderRepository()
	s.Users = NewUserRepository()
	s.Contacts = NewContactRepository()
	return s
}

func newID() string {
	return uuid.NewString()
}

func now() time.Time {
	return time.Now().UTC()
}

// newestFirst sorts records by creation time descending; records created
// at the same instant keep reverse insertion order.
func newestFirst[T any](items []T, createdAt func(*T) time.Time) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	sort.SliceStable(items, func(a, b int) bool {
		return createdAt(&items[a]).After(createdAt(&items[b]))
	})
}

var (
	_ repository.ProductRepository = (*ProductRepository)(nil)
	_ repository.CartRepository    = (*CartRepository)(nil)
	_ repository.OrderRepository   = (*OrderRepository)(nil)
	_ repository.UserRepository    = (*UserRepository)(nil)
	_ repository.ContactRepository = (*ContactRepository)(nil)
)
