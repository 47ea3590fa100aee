package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"storefront-api/internal/apperrors"
	"storefront-api/internal/models"
	"storefront-api/internal/repository"
)

// CartLine is a cart item joined with the live product. Product is nil
// when the product has since been deleted.
type CartLine struct {
	ProductID string              `json:"productId"`
	Product   *models.ProductView `json:"product"`
	Quantity  int                 `json:"quantity"`
}

type CartView struct {
	ID         string     `json:"_id,omitempty"`
	User       string     `json:"user"`
	Items      []CartLine `json:"items"`
	TotalItems int        `json:"totalItems"`
	Subtotal   float64    `json:"subtotal"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	now      func() time.Time
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products, now: time.Now}
}

// load returns the user's cart, or a fresh empty one when none exists yet.
func (s *CartService) load(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.carts.GetByUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return &models.Cart{User: userID, Items: []models.CartItem{}}, nil
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return cart, nil
}

func (s *CartService) view(ctx context.Context, cart *models.Cart) (*CartView, error) {
	now := s.now()
	v := &CartView{ID: cart.ID, User: cart.User, Items: make([]CartLine, 0, len(cart.Items)), UpdatedAt: cart.UpdatedAt}
	subtotal := decimal.Zero

	for _, item := range cart.Items {
		line := CartLine{ProductID: item.Product, Quantity: item.Quantity}
		p, err := s.products.GetByID(ctx, item.Product)
		switch {
		case err == nil:
			pv := p.View(now)
			line.Product = &pv
			subtotal = subtotal.Add(decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
		case !errors.Is(err, repository.ErrNotFound):
			return nil, apperrors.Internal(err)
		}
		v.TotalItems += item.Quantity
		v.Items = append(v.Items, line)
	}
	v.Subtotal = subtotal.InexactFloat64()
	return v, nil
}

func (s *CartService) Get(ctx context.Context, userID string) (*CartView, error) {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, cart)
}

// checkStock rejects a line quantity the product cannot currently cover.
func (s *CartService) checkStock(ctx context.Context, productID string, quantity int) (*models.Product, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, notFoundAs(err, "Product not found")
	}
	if p.Stock < quantity {
		return nil, &apperrors.InsufficientStockError{
			ProductID:   p.ID,
			ProductName: p.Name,
			Available:   p.Stock,
			Requested:   quantity,
		}
	}
	return p, nil
}

func lineQuantity(cart *models.Cart, productID string) int {
	for _, item := range cart.Items {
		if item.Product == productID {
			return item.Quantity
		}
	}
	return 0
}

// AddItem adds quantity to the product's line, creating the line and the
// cart as needed.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int) (*CartView, error) {
	if productID == "" {
		return nil, apperrors.Validation("Product id is required", "productId")
	}
	if quantity < 1 {
		return nil, apperrors.Validation("Quantity must be at least 1", "quantity")
	}

	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	product, err := s.checkStock(ctx, productID, lineQuantity(cart, productID)+quantity)
	if err != nil {
		return nil, err
	}

	cart.Add(productID, product.Name, quantity)
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, apperrors.Internal(err)
	}
	return s.view(ctx, cart)
}

// UpdateItem sets a line's quantity; zero removes the line.
func (s *CartService) UpdateItem(ctx context.Context, userID, productID string, quantity int) (*CartView, error) {
	if quantity < 0 {
		return nil, apperrors.Validation("Quantity cannot be negative", "quantity")
	}

	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if lineQuantity(cart, productID) == 0 {
		return nil, apperrors.NotFound("Item not found in cart")
	}
	if quantity > 0 {
		if _, err := s.checkStock(ctx, productID, quantity); err != nil {
			return nil, err
		}
	}

	cart.Set(productID, quantity)
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, apperrors.Internal(err)
	}
	return s.view(ctx, cart)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) (*CartView, error) {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !cart.Remove(productID) {
		return nil, apperrors.NotFound("Item not found in cart")
	}
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, apperrors.Internal(err)
	}
	return s.view(ctx, cart)
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	if err := s.carts.Clear(ctx, userID); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}
