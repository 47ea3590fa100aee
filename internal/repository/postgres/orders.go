package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"storefront-api/internal/models"
	"storefront-api/internal/repository"
)

const orderColumns = `id, user_id, items, shipping_address, payment_method, total_amount, status, created_at`

type OrderRepository struct {
	db *sql.DB
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var o models.Order
	var items, address []byte
	if err := row.Scan(&o.ID, &o.User, &items, &address, &o.PaymentMethod, &o.TotalAmount, &o.Status, &o.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	if err := json.Unmarshal(address, &o.ShippingAddress); err != nil {
		return nil, fmt.Errorf("decode shipping address: %w", err)
	}
	return &o, nil
}

func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	if o.ID == "" {
		o.ID = newID()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now()
	}
	items, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}
	address, err := json.Marshal(o.ShippingAddress)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO orders ("+orderColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		o.ID, o.User, string(items), string(address), o.PaymentMethod, o.TotalAmount, o.Status, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", translate(err))
	}
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = $1", id))
	if err != nil {
		return nil, translate(err)
	}
	return o, nil
}

func (r *OrderRepository) query(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

const newestOrders = " ORDER BY created_at DESC, seq DESC"

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return r.query(ctx, "SELECT "+orderColumns+" FROM orders WHERE user_id = $1"+newestOrders, userID)
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	return r.query(ctx, "SELECT "+orderColumns+" FROM orders"+newestOrders)
}

func (r *OrderRepository) ListRecent(ctx context.Context, n int) ([]models.Order, error) {
	return r.query(ctx, "SELECT "+orderColumns+" FROM orders"+newestOrders+" LIMIT "+strconv.Itoa(n))
}

func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders").Scan(&n)
	return n, err
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, from, to models.OrderStatus) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE orders SET status = $1 WHERE id = $2 AND status = $3", to, id, from)
	if err != nil {
		return false, fmt.Errorf("update order status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)", id).Scan(&exists); err != nil {
		return false, fmt.Errorf("update order status: %w", err)
	}
	if !exists {
		return false, repository.ErrNotFound
	}
	return false, nil
}
