package services

import (
	"context"
	"errors"
	"log"

	"github.com/shopspring/decimal"

	"storefront-api/internal/apperrors"
	"storefront-api/internal/events"
	"storefront-api/internal/models"
	"storefront-api/internal/repository"
)

type OrderService struct {
	orders    repository.OrderRepository
	carts     repository.CartRepository
	products  repository.ProductRepository
	users     repository.UserRepository
	publisher events.Publisher
}

func NewOrderService(store *repository.Store, publisher events.Publisher) *OrderService {
	return &OrderService{
		orders:    store.Orders,
		carts:     store.Carts,
		products:  store.Products,
		users:     store.Users,
		publisher: publisher,
	}
}

// reservation is a stock decrement already applied for one order line.
type reservation struct {
	productID string
	quantity  int
}

// Place converts the user's cart into a Pending order.
//
// Lines are processed in cart order. Each line's stock is taken with a
// conditional decrement that only applies while stock covers the quantity,
// so concurrent placements can never drive stock negative. If any line
// fails, or the order cannot be written, every decrement already applied
// is given back and the cart is left untouched.
func (s *OrderService) Place(ctx context.Context, userID string, address *models.ShippingAddress, paymentMethod string) (*models.Order, error) {
	if err := models.ValidateShippingAddress(address); err != nil {
		return nil, err
	}
	method, err := models.ParsePaymentMethod(paymentMethod)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Internal(err)
	}
	if cart.IsEmpty() {
		return nil, apperrors.EmptyCart()
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	reserved := make([]reservation, 0, len(cart.Items))
	total := decimal.Zero

	for _, line := range cart.Items {
		item, err := s.reserveLine(ctx, line)
		if err != nil {
			s.release(ctx, reserved)
			return nil, err
		}
		reserved = append(reserved, reservation{productID: line.Product, quantity: line.Quantity})
		items = append(items, item)
		total = total.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	order := &models.Order{
		User:            userID,
		Items:           items,
		ShippingAddress: *address,
		PaymentMethod:   method,
		TotalAmount:     total.InexactFloat64(),
		Status:          models.StatusPending,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		s.release(ctx, reserved)
		return nil, apperrors.Internal(err)
	}

	// The order exists from here on; a stale cart is only an annoyance.
	if err := s.carts.Clear(context.WithoutCancel(ctx), userID); err != nil {
		log.Printf("[Order] order %s placed but cart for user %s not cleared: %v", order.ID, userID, err)
	}

	log.Printf("[Order] order %s placed by user %s: %d lines, total %s", order.ID, userID, len(items), total.StringFixed(2))
	publish(ctx, s.publisher, events.OrderPlaced(order))
	return order, nil
}

// reserveLine snapshots one cart line and takes its stock.
func (s *OrderService) reserveLine(ctx context.Context, line models.CartItem) (models.OrderItem, error) {
	product, err := s.products.GetByID(ctx, line.Product)
	if errors.Is(err, repository.ErrNotFound) {
		return models.OrderItem{}, apperrors.ProductNotFound(lineName(line))
	}
	if err != nil {
		return models.OrderItem{}, apperrors.Internal(err)
	}
	if product.Stock < line.Quantity {
		return models.OrderItem{}, insufficient(product, line.Quantity)
	}

	applied, err := s.products.DecrementStock(ctx, product.ID, line.Quantity)
	if err != nil {
		return models.OrderItem{}, apperrors.Internal(err)
	}
	if !applied {
		// Lost a race with another placement; report what is left now.
		current, err := s.products.GetByID(ctx, product.ID)
		if errors.Is(err, repository.ErrNotFound) {
			return models.OrderItem{}, apperrors.ProductNotFound(product.Name)
		}
		if err != nil {
			return models.OrderItem{}, apperrors.Internal(err)
		}
		return models.OrderItem{}, insufficient(current, line.Quantity)
	}

	return models.OrderItem{
		Product:  product.ID,
		Name:     product.Name,
		Quantity: line.Quantity,
		Price:    product.Price,
	}, nil
}

// lineName is the recorded product name, or the id for lines saved without one.
func lineName(line models.CartItem) string {
	if line.Name != "" {
		return line.Name
	}
	return line.Product
}

func insufficient(p *models.Product, requested int) error {
	return &apperrors.InsufficientStockError{
		ProductID:   p.ID,
		ProductName: p.Name,
		Available:   p.Stock,
		Requested:   requested,
	}
}

// release gives back stock taken by a placement that did not complete.
func (s *OrderService) release(ctx context.Context, reserved []reservation) {
	ctx = context.WithoutCancel(ctx)
	for _, r := range reserved {
		if err := s.products.IncrementStock(ctx, r.productID, r.quantity); err != nil {
			log.Printf("[Order] failed to restore %d units of product %s: %v", r.quantity, r.productID, err)
		}
	}
}

// Get returns an order the caller may see. Admins may see every order;
// anyone else only their own.
func (s *OrderService) Get(ctx context.Context, caller *models.User, id string) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "Order not found")
	}
	if order.User != caller.ID && !caller.IsAdmin {
		return nil, apperrors.Authorization("Not authorized to view this order")
	}
	return order, nil
}

func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return orders, nil
}

// ListAll returns every order, newest first, with buyer contact details.
func (s *OrderService) ListAll(ctx context.Context) ([]models.OrderWithBuyer, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return withBuyers(ctx, s.users, orders, true)
}

// withBuyers attaches the owning user to each order. Orders whose user no
// longer exists are returned without a buyer.
func withBuyers(ctx context.Context, users repository.UserRepository, orders []models.Order, contact bool) ([]models.OrderWithBuyer, error) {
	cache := make(map[string]*models.Buyer)
	out := make([]models.OrderWithBuyer, len(orders))

	for i, o := range orders {
		buyer, seen := cache[o.User]
		if !seen {
			u, err := users.GetByID(ctx, o.User)
			switch {
			case err == nil:
				buyer = &models.Buyer{ID: u.ID, Name: u.Name}
				if contact {
					buyer.Email = u.Email
					buyer.Phone = u.Phone
				}
			case !errors.Is(err, repository.ErrNotFound):
				return nil, apperrors.Internal(err)
			}
			cache[o.User] = buyer
		}
		out[i] = models.OrderWithBuyer{Order: o, Buyer: buyer}
	}
	return out, nil
}

// UpdateStatus moves an order along its lifecycle. Cancelling returns the
// order's quantities to stock; products deleted since are skipped.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	target, err := models.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "Order not found")
	}
	if !order.CanTransitionTo(target) {
		return nil, apperrors.Validation(
			"Cannot change order status from "+string(order.Status)+" to "+string(target), "status")
	}

	from := order.Status
	applied, err := s.orders.UpdateStatus(ctx, id, from, target)
	if err != nil {
		return nil, notFoundAs(err, "Order not found")
	}
	if !applied {
		// Another update moved the order after it was read; only that one restocks.
		return nil, apperrors.Conflict("Order status changed concurrently, please retry")
	}
	order.Status = target

	if target == models.StatusCancelled {
		for _, item := range order.Items {
			err := s.products.IncrementStock(ctx, item.Product, item.Quantity)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				log.Printf("[Order] order %s cancelled but product %s not restocked: %v", id, item.Product, err)
			}
		}
	}

	log.Printf("[Order] order %s: %s -> %s", id, from, target)
	publish(ctx, s.publisher, events.OrderStatusChanged(id, from, target))
	return order, nil
}
