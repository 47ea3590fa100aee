// ========================================
// internal/repository/repository.go
// ========================================
package repository

import (
	"context"
	"errors"

	"storefront-api/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type ProductRepository interface {
	Create(ctx context.Context, p *models.Product) error
	InsertMany(ctx context.Context, products []models.Product) (int, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	// Update writes every mutable field except stock, which only moves
	// through SetStock and the conditional stock operations below. The
	// stored stock is loaded back into p.
	Update(ctx context.Context, p *models.Product) error
	SetStock(ctx context.Context, id string, stock int) error
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)

	// List returns the requested page and the size of the full filtered set.
	List(ctx context.Context, q models.ProductQuery) ([]models.Product, int64, error)
	Categories(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)

	// DecrementStock subtracts qty only when the product still has at least
	// qty units; the bool reports whether the update was applied.
	DecrementStock(ctx context.Context, id string, qty int) (bool, error)
	IncrementStock(ctx context.Context, id string, qty int) error

	RenameCategory(ctx context.Context, from, to models.Category) (int64, error)
}

type CartRepository interface {
	// GetByUser returns ErrNotFound when the user has never had a cart.
	GetByUser(ctx context.Context, userID string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Clear(ctx context.Context, userID string) error
}

type OrderRepository interface {
	Create(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	ListRecent(ctx context.Context, n int) ([]models.Order, error)
	Count(ctx context.Context) (int64, error)
	// UpdateStatus moves the order from one status to another only while it
	// is still in from. It reports false when the order has since moved on.
	UpdateStatus(ctx context.Context, id string, from, to models.OrderStatus) (bool, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
	List(ctx context.Context) ([]models.User, error)
	Count(ctx context.Context) (int64, error)
}

type ContactRepository interface {
	Create(ctx context.Context, m *models.ContactMessage) error
	GetByID(ctx context.Context, id string) (*models.ContactMessage, error)
	List(ctx context.Context) ([]models.ContactMessage, error)
	ListRecent(ctx context.Context, n int) ([]models.ContactMessage, error)
	UpdateStatus(ctx context.Context, id string, status models.ContactStatus) error
	Count(ctx context.Context) (int64, error)
}

// Store is an open handle on one backing database. Close releases it.
type Store struct {
	Products ProductRepository
	Carts    CartRepository
	Orders   OrderRepository
	Users    UserRepository
	Contacts ContactRepository

	Driver string
	closer func(context.Context) error
}

func NewStore(driver string, closer func(context.Context) error) *Store {
	return &Store{Driver: driver, closer: closer}
}

func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer(ctx)
}
