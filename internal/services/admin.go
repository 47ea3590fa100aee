package services

import (
	"context"

	"github.com/shopspring/decimal"

	"storefront-api/internal/apperrors"
	"storefront-api/internal/models"
	"storefront-api/internal/repository"
)

const recentLimit = 5

type Stats struct {
	TotalOrders    int64                   `json:"totalOrders"`
	TotalUsers     int64                   `json:"totalUsers"`
	TotalProducts  int64                   `json:"totalProducts"`
	TotalMessages  int64                   `json:"totalMessages"`
	TotalRevenue   float64                 `json:"totalRevenue"`
	RecentOrders   []models.OrderWithBuyer `json:"recentOrders"`
	RecentMessages []models.ContactMessage `json:"recentMessages"`
}

type AdminService struct {
	store *repository.Store
}

func NewAdminService(store *repository.Store) *AdminService {
	return &AdminService{store: store}
}

func (s *AdminService) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	var err error

	if stats.TotalOrders, err = s.store.Orders.Count(ctx); err != nil {
		return nil, apperrors.Internal(err)
	}
	if stats.TotalUsers, err = s.store.Users.Count(ctx); err != nil {
		return nil, apperrors.Internal(err)
	}
	if stats.TotalProducts, err = s.store.Products.Count(ctx); err != nil {
		return nil, apperrors.Internal(err)
	}
	if stats.TotalMessages, err = s.store.Contacts.Count(ctx); err != nil {
		return nil, apperrors.Internal(err)
	}

	orders, err := s.store.Orders.ListAll(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	revenue := decimal.Zero
	for _, o := range orders {
		revenue = revenue.Add(decimal.NewFromFloat(o.TotalAmount))
	}
	stats.TotalRevenue = revenue.InexactFloat64()

	recent, err := s.store.Orders.ListRecent(ctx, recentLimit)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if stats.RecentOrders, err = withBuyers(ctx, s.store.Users, recent, false); err != nil {
		return nil, err
	}

	if stats.RecentMessages, err = s.store.Contacts.ListRecent(ctx, recentLimit); err != nil {
		return nil, apperrors.Internal(err)
	}
	return &stats, nil
}
