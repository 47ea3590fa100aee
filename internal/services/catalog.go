package services

import (
	"context"
	"time"

	"storefront-api/internal/apperrors"
	"storefront-api/internal/models"
	"storefront-api/internal/repository"
)

const newArrivalsLimit = 20

// ProductPage is one page of a catalog query.
type ProductPage struct {
	Products    []models.ProductView
	TotalCount  int64
	TotalPages  int
	CurrentPage int
}

type CatalogService struct {
	products repository.ProductRepository
	now      func() time.Time
}

func NewCatalogService(products repository.ProductRepository) *CatalogService {
	return &CatalogService{products: products, now: time.Now}
}

func (s *CatalogService) List(ctx context.Context, q models.ProductQuery) (*ProductPage, error) {
	products, total, err := s.products.List(ctx, q)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &ProductPage{
		Products:    models.ProductViews(products, s.now()),
		TotalCount:  total,
		TotalPages:  q.TotalPages(total),
		CurrentPage: q.CurrentPage(),
	}, nil
}

// NewArrivals returns the most recently listed products.
func (s *CatalogService) NewArrivals(ctx context.Context) ([]models.ProductView, error) {
	page, err := s.List(ctx, models.ProductQuery{Sort: models.SortNewest, Page: 1, Limit: newArrivalsLimit})
	if err != nil {
		return nil, err
	}
	return page.Products, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*models.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "Product not found")
	}
	return p, nil
}

func (s *CatalogService) View(p *models.Product) models.ProductView {
	return p.View(s.now())
}

func (s *CatalogService) Create(ctx context.Context, p *models.Product) error {
	p.ID = ""
	if err := models.ValidateProduct(p); err != nil {
		return err
	}
	if p.NewArrival && p.NewArrivalDate == nil {
		listed := s.now().UTC()
		p.NewArrivalDate = &listed
	}
	if err := s.products.Create(ctx, p); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// Update replaces the mutable fields of an existing product. Stock is only
// written when setStock is true; otherwise p comes back holding the stored
// stock, so units sold since p was read are not put back.
func (s *CatalogService) Update(ctx context.Context, p *models.Product, setStock bool) error {
	if err := models.ValidateProduct(p); err != nil {
		return err
	}
	stock := p.Stock
	if err := s.products.Update(ctx, p); err != nil {
		return notFoundAs(err, "Product not found")
	}
	if setStock {
		if err := s.products.SetStock(ctx, p.ID, stock); err != nil {
			return notFoundAs(err, "Product not found")
		}
		p.Stock = stock
	}
	return nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return notFoundAs(err, "Product not found")
	}
	return nil
}

func (s *CatalogService) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, apperrors.Validation("Please provide product ids to delete", "ids")
	}
	n, err := s.products.DeleteMany(ctx, ids)
	if err != nil {
		return 0, apperrors.Internal(err)
	}
	return n, nil
}

func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.products.Categories(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return categories, nil
}
