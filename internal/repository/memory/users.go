package memory

import (
	"context"
	"sync"
	"time"

	"storefront-api/internal/models"
	"storefront-api/internal/repository"
)

type UserRepository struct {
	mu      sync.RWMutex
	users   map[string]models.User
	byEmail map[string]string
	order   []string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:   make(map[string]models.User),
		byEmail: make(map[string]string),
	}
}

func cloneUser(u models.User) models.User {
	if u.Address != nil {
		addr := *u.Address
		u.Address = &addr
	}
	return u
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[u.Email]; taken {
		return repository.ErrDuplicate
	}
	if u.ID == "" {
		u.ID = newID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now()
	}
	r.users[u.ID] = cloneUser(*u)
	r.byEmail[u.Email] = u.ID
	r.order = append(r.order, u.ID)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := cloneUser(u)
	return &out, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := cloneUser(r.users[id])
	return &out, nil
}

func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if owner, taken := r.byEmail[u.Email]; taken && owner != u.ID {
		return repository.ErrDuplicate
	}
	delete(r.byEmail, existing.Email)
	r.byEmail[u.Email] = u.ID
	u.CreatedAt = existing.CreatedAt
	r.users[u.ID] = cloneUser(*u)
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	r.mu.RLock()
	out := make([]models.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneUser(r.users[id]))
	}
	r.mu.RUnlock()

	newestFirst(out, func(u *models.User) time.Time { return u.CreatedAt })
	return out, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}
