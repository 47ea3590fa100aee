// Package maintenance implements the one-shot operational utilities under
// cmd/. Each returns an error instead of exiting so the commands decide the
// exit status.
package maintenance

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"storefront-api/internal/config"
	"storefront-api/internal/database"
	"storefront-api/internal/models"
	"storefront-api/internal/repository"
	"storefront-api/internal/services"
)

const sampleOrderLimit = 5

// SeedCatalog replaces every product with the sample catalog.
func SeedCatalog(ctx context.Context, products repository.ProductRepository, now time.Time) (int, error) {
	catalog := SampleCatalog(now)
	for i := range catalog {
		if err := models.ValidateProduct(&catalog[i]); err != nil {
			return 0, fmt.Errorf("sample product %q: %w", catalog[i].Name, err)
		}
	}

	deleted, err := products.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete products: %w", err)
	}
	log.Printf("[Seed] deleted %d existing products", deleted)

	n, err := products.InsertMany(ctx, catalog)
	if err != nil {
		return 0, fmt.Errorf("insert products: %w", err)
	}
	log.Printf("[Seed] inserted %d sample products", n)
	return n, nil
}

// FixCategories migrates products filed under Jewelry to Jewellery and
// returns the modified count with the categories left afterwards.
func FixCategories(ctx context.Context, products repository.ProductRepository) (int64, []string, error) {
	n, err := products.RenameCategory(ctx, models.CategoryJewelry, models.CategoryJewellery)
	if err != nil {
		return 0, nil, fmt.Errorf("rename category: %w", err)
	}
	log.Printf("[Maintenance] migrated %d products from %q to %q", n, models.CategoryJewelry, models.CategoryJewellery)

	categories, err := products.Categories(ctx)
	if err != nil {
		return n, nil, fmt.Errorf("list categories: %w", err)
	}
	log.Printf("[Maintenance] current categories: %v", categories)
	return n, categories, nil
}

// CreateAdmin creates the configured admin account. An existing account
// with the same email is left alone and is not an error.
func CreateAdmin(ctx context.Context, users *services.UserService, account config.AdminAccount) (bool, error) {
	if account.Password == "" {
		return false, errors.New("ADMIN_PASSWORD is required")
	}
	created, err := users.EnsureAdmin(ctx, account.Name, account.Email, account.Password, account.Phone)
	if err != nil {
		return false, fmt.Errorf("create admin %s: %w", account.Email, err)
	}
	if created {
		log.Printf("[Maintenance] admin user %s created", models.NormalizeEmail(account.Email))
	} else {
		log.Printf("[Maintenance] admin user %s already exists", models.NormalizeEmail(account.Email))
	}
	return created, nil
}

// Inspector is a read-only view of the data that Inspect reports on.
type Inspector interface {
	CountOrders(ctx context.Context) (int64, error)
	RecentOrders(ctx context.Context, n int) ([]database.OrderSummary, error)
	Categories(ctx context.Context) ([]string, error)
}

// StoreInspector reads through the configured repository driver.
type StoreInspector struct {
	store *repository.Store
}

func NewStoreInspector(store *repository.Store) *StoreInspector {
	return &StoreInspector{store: store}
}

func (s *StoreInspector) CountOrders(ctx context.Context) (int64, error) {
	return s.store.Orders.Count(ctx)
}

func (s *StoreInspector) RecentOrders(ctx context.Context, n int) ([]database.OrderSummary, error) {
	orders, err := s.store.Orders.ListRecent(ctx, n)
	if err != nil {
		return nil, err
	}
	out := make([]database.OrderSummary, len(orders))
	for i, o := range orders {
		out[i] = database.OrderSummary{
			ID:          o.ID,
			UserID:      o.User,
			TotalAmount: o.TotalAmount,
			Status:      string(o.Status),
			CreatedAt:   o.CreatedAt,
		}
	}
	return out, nil
}

func (s *StoreInspector) Categories(ctx context.Context) ([]string, error) {
	return s.store.Products.Categories(ctx)
}

// Report is what Inspect found.
type Report struct {
	TotalOrders  int64
	SampleOrders []database.OrderSummary
	Categories   []string
}

// Inspect logs the order count, a few recent orders and the product
// categories.
func Inspect(ctx context.Context, in Inspector) (*Report, error) {
	count, err := in.CountOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	report := &Report{TotalOrders: count}
	log.Printf("[Maintenance] total orders: %d", count)

	if count > 0 {
		report.SampleOrders, err = in.RecentOrders(ctx, sampleOrderLimit)
		if err != nil {
			return nil, fmt.Errorf("sample orders: %w", err)
		}
		for _, o := range report.SampleOrders {
			log.Printf("[Maintenance]   %s user=%s total=%.2f status=%s placed=%s",
				o.ID, o.UserID, o.TotalAmount, o.Status, o.CreatedAt.Format(time.RFC3339))
		}
	} else {
		log.Println("[Maintenance] no orders found")
	}

	report.Categories, err = in.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	log.Printf("[Maintenance] categories: %v", report.Categories)
	return report, nil
}
