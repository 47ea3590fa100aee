package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"storefront-api/internal/models"
)

const userColumns = `id, name, email, password, phone, address, is_admin, created_at`

type UserRepository struct {
	db *sql.DB
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	var address []byte
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &address, &u.IsAdmin, &u.CreatedAt); err != nil {
		return nil, err
	}
	if len(address) > 0 {
		if err := json.Unmarshal(address, &u.Address); err != nil {
			return nil, fmt.Errorf("decode address: %w", err)
		}
	}
	return &u, nil
}

// encodeAddress renders the JSONB parameter; lib/pq sends []byte as bytea.
func encodeAddress(a *models.Address) (any, error) {
	if a == nil {
		return nil, nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = newID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now()
	}
	address, err := encodeAddress(u.Address)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO users ("+userColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		u.ID, u.Name, u.Email, u.PasswordHash, u.Phone, address, u.IsAdmin, u.CreatedAt,
	)
	return translate(err)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id))
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email))
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	address, err := encodeAddress(u.Address)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET name = $2, email = $3, password = $4, phone = $5, address = $6, is_admin = $7
		WHERE id = $1`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Phone, address, u.IsAdmin,
	)
	if err != nil {
		return translate(err)
	}
	return requireAffected(res)
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n)
	return n, err
}
