package memory

import (
	"context"
	"sort"
	"sync"

	"storefront-api/internal/models"
	"storefront-api/internal/repository"
)

type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]*models.Product
	seq      int64
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: make(map[string]*models.Product)}
}

func cloneProduct(p *models.Product) models.Product {
	out := *p
	out.Images = append([]string{}, p.Images...)
	if p.Features != nil {
		out.Features = append([]string(nil), p.Features...)
	}
	return out
}

func (r *ProductRepository) insert(p *models.Product) {
	if p.ID == "" {
		p.ID = newID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now()
	}
	r.seq++
	p.Seq = r.seq
	stored := cloneProduct(p)
	r.products[p.ID] = &stored
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[p.ID]; p.ID != "" && exists {
		return repository.ErrDuplicate
	}
	r.insert(p)
	return nil
}

func (r *ProductRepository) InsertMany(ctx context.Context, products []models.Product) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range products {
		r.insert(&products[i])
	}
	return len(products), nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := cloneProduct(p)
	return &out, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	p.Seq = existing.Seq
	p.CreatedAt = existing.CreatedAt
	p.Stock = existing.Stock
	stored := cloneProduct(p)
	r.products[p.ID] = &stored
	return nil
}

func (r *ProductRepository) SetStock(ctx context.Context, id string, stock int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Stock = stock
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *ProductRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, id := range ids {
		if _, ok := r.products[id]; ok {
			delete(r.products, id)
			n++
		}
	}
	return n, nil
}

func (r *ProductRepository) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.products))
	r.products = make(map[string]*models.Product)
	return n, nil
}

func (r *ProductRepository) List(ctx context.Context, q models.ProductQuery) ([]models.Product, int64, error) {
	r.mu.RLock()
	matched := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if q.Matches(p) {
			matched = append(matched, cloneProduct(p))
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return q.Less(&matched[i], &matched[j])
	})

	start, end := q.Window(len(matched))
	return matched[start:end], int64(len(matched)), nil
}

func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, p := range r.products {
		seen[string(p.Category)] = struct{}{}
	}
	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories, nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.products)), nil
}

func (r *ProductRepository) DecrementStock(ctx context.Context, id string, qty int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	return true, nil
}

func (r *ProductRepository) IncrementStock(ctx context.Context, id string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Stock += qty
	return nil
}

func (r *ProductRepository) RenameCategory(ctx context.Context, from, to models.Category) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, p := range r.products {
		if p.Category == from {
			p.Category = to
			n++
		}
	}
	return n, nil
}
