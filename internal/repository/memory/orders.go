package memory

import (
	"context"
	"sync"
	"time"

	"storefront-api/internal/models"
	"storefront-api/internal/repository"
)

type OrderRepository struct {
	mu     sync.RWMutex
	orders []models.Order
	index  map[string]int
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{index: make(map[string]int)}
}

func cloneOrder(o models.Order) models.Order {
	o.Items = append([]models.OrderItem{}, o.Items...)
	return o
}

func orderCreatedAt(o *models.Order) time.Time { return o.CreatedAt }

func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if o.ID == "" {
		o.ID = newID()
	}
	if _, exists := r.index[o.ID]; exists {
		return repository.ErrDuplicate
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now()
	}
	r.index[o.ID] = len(r.orders)
	r.orders = append(r.orders, cloneOrder(*o))
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	o := cloneOrder(r.orders[i])
	return &o, nil
}

func (r *OrderRepository) filter(keep func(*models.Order) bool) []models.Order {
	r.mu.RLock()
	out := make([]models.Order, 0, len(r.orders))
	for i := range r.orders {
		if keep(&r.orders[i]) {
			out = append(out, cloneOrder(r.orders[i]))
		}
	}
	r.mu.RUnlock()

	newestFirst(out, orderCreatedAt)
	return out
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return r.filter(func(o *models.Order) bool { return o.User == userID }), nil
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	return r.filter(func(*models.Order) bool { return true }), nil
}

func (r *OrderRepository) ListRecent(ctx context.Context, n int) ([]models.Order, error) {
	all := r.filter(func(*models.Order) bool { return true })
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.orders)), nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, from, to models.OrderStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return false, repository.ErrNotFound
	}
	if r.orders[i].Status != from {
		return false, nil
	}
	r.orders[i].Status = to
	return true, nil
}
