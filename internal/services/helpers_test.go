package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"storefront-api/internal/auth"
	"storefront-api/internal/events"
	"storefront-api/internal/models"
	"storefront-api/internal/repository"
	"storefront-api/internal/repository/memory"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type fixture struct {
	store     *repository.Store
	svc       *Services
	publisher *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	pub := &recordingPublisher{}
	tokens := auth.NewTokenService("test-secret", time.Hour)
	return &fixture{store: store, svc: New(store, tokens, pub), publisher: pub}
}

func (f *fixture) product(t *testing.T, name string, price float64, stock int) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:        name,
		Description: name + " description",
		Price:       price,
		Category:    models.CategoryJewellery,
		Stock:       stock,
	}
	require.NoError(t, f.store.Products.Create(context.Background(), p))
	return p
}

func (f *fixture) user(t *testing.T, name string, admin bool) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: name + "@example.com", IsAdmin: admin}
	require.NoError(t, f.store.Users.Create(context.Background(), u))
	return u
}

func (f *fixture) cart(t *testing.T, userID string, lines ...models.CartItem) {
	t.Helper()
	c := &models.Cart{User: userID}
	for _, l := range lines {
		c.Add(l.Product, l.Name, l.Quantity)
	}
	require.NoError(t, f.store.Carts.Save(context.Background(), c))
}

func (f *fixture) stock(t *testing.T, productID string) int {
	t.Helper()
	p, err := f.store.Products.GetByID(context.Background(), productID)
	require.NoError(t, err)
	return p.Stock
}

func (f *fixture) orderCount(t *testing.T) int64 {
	t.Helper()
	n, err := f.store.Orders.Count(context.Background())
	require.NoError(t, err)
	return n
}

func line(productID string, qty int) models.CartItem {
	return models.CartItem{Product: productID, Quantity: qty}
}

func address() *models.ShippingAddress {
	return &models.ShippingAddress{
		Name:    "Asha Rao",
		Phone:   "9876543210",
		Street:  "12 MG Road",
		City:    "Bengaluru",
		State:   "Karnataka",
		Pincode: "560001",
		Country: "India",
	}
}
