package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"storefront-api/internal/models"
)

type CartRepository struct {
	db *sql.DB
}

func (r *CartRepository) GetByUser(ctx context.Context, userID string) (*models.Cart, error) {
	var c models.Cart
	var items []byte
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, items, updated_at FROM carts WHERE user_id = $1", userID,
	).Scan(&c.ID, &c.User, &items, &c.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	if err := json.Unmarshal(items, &c.Items); err != nil {
		return nil, fmt.Errorf("decode cart items: %w", err)
	}
	if c.Items == nil {
		c.Items = []models.CartItem{}
	}
	return &c, nil
}

// Save upserts the user's single cart row.
func (r *CartRepository) Save(ctx context.Context, cart *models.Cart) error {
	if cart.ID == "" {
		cart.ID = newID()
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	items, err := json.Marshal(cart.Items)
	if err != nil {
		return err
	}
	cart.UpdatedAt = now()

	err = r.db.QueryRowContext(ctx, `
		INSERT INTO carts (id, user_id, items, updated_at) VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET items = EXCLUDED.items, updated_at = EXCLUDED.updated_at
		RETURNING id`,
		cart.ID, cart.User, string(items), cart.UpdatedAt,
	).Scan(&cart.ID)
	if err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE carts SET items = '[]', updated_at = $2 WHERE user_id = $1", userID, now())
	return err
}
