package memory

import (
	"context"
	"sync"
	"time"

	"storefront-api/internal/models"
	"storefront-api/internal/repository"
)

type ContactRepository struct {
	mu       sync.RWMutex
	messages []models.ContactMessage
	index    map[string]int
}

func NewContactRepository() *ContactRepository {
	return &ContactRepository{index: make(map[string]int)}
}

func (r *ContactRepository) Create(ctx context.Context, m *models.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m.ID == "" {
		m.ID = newID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now()
	}
	r.index[m.ID] = len(r.messages)
	r.messages = append(r.messages, *m)
	return nil
}

func (r *ContactRepository) GetByID(ctx context.Context, id string) (*models.ContactMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	m := r.messages[i]
	return &m, nil
}

func (r *ContactRepository) List(ctx context.Context) ([]models.ContactMessage, error) {
	r.mu.RLock()
	out := append([]models.ContactMessage{}, r.messages...)
	r.mu.RUnlock()

	newestFirst(out, func(m *models.ContactMessage) time.Time { return m.CreatedAt })
	return out, nil
}

func (r *ContactRepository) ListRecent(ctx context.Context, n int) ([]models.ContactMessage, error) {
	out, _ := r.List(ctx)
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (r *ContactRepository) UpdateStatus(ctx context.Context, id string, status models.ContactStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return repository.ErrNotFound
	}
	r.messages[i].Status = status
	return nil
}

func (r *ContactRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.messages)), nil
}
