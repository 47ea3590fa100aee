package memory

import (
	"context"
	"sync"

	"storefront-api/internal/models"
	"storefront-api/internal/repository"
)

type CartRepository struct {
	mu    sync.RWMutex
	carts map[string]models.Cart
}

func NewCartRepository() *CartRepository {
	return &CartRepository{carts: make(map[string]models.Cart)}
}

func cloneCart(c models.Cart) *models.Cart {
	c.Items = append([]models.CartItem{}, c.Items...)
	return &c
}

func (r *CartRepository) GetByUser(ctx context.Context, userID string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.carts[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneCart(c), nil
}

func (r *CartRepository) Save(ctx context.Context, cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.carts[cart.User]; ok {
		cart.ID = existing.ID
	} else if cart.ID == "" {
		cart.ID = newID()
	}
	cart.UpdatedAt = now()
	r.carts[cart.User] = *cloneCart(*cart)
	return nil
}

func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.carts[userID]
	if !ok {
		return nil
	}
	c.Clear()
	c.UpdatedAt = now()
	r.carts[userID] = c
	return nil
}
