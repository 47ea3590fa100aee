// Package postgres implements the repositories on PostgreSQL through
// database/sql and lib/pq.
package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"storefront-api/internal/repository"
)

//go:embed schema.sql
var schema string

// New wraps an open connection pool. Closing the Store closes the pool.
func New(db *sql.DB) *repository.Store {
	s := repository.NewStore("postgres", func(context.Context) error { return db.Close() })
	s.Products = &ProductRepository{db: db}
	s.Carts = &CartRepository{db: db}
	s.Orders = &OrderRepository{db: db}
	s.Users = &UserRepository{db: db}
	s.Contacts = &ContactRepository{db: db}
	return s
}

// EnsureSchema creates any missing tables and indexes.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func newID() string {
	return uuid.NewString()
}

func now() time.Time {
	return time.Now().UTC()
}

// translate maps driver errors onto repository sentinels.
func translate(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return repository.ErrDuplicate
	}
	return err
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

var (
	_ repository.ProductRepository = (*ProductRepository)(nil)
	_ repository.CartRepository    = (*CartRepository)(nil)
	_ repository.OrderRepository   = (*OrderRepository)(nil)
	_ repository.UserRepository    = (*UserRepository)(nil)
	_ repository.ContactRepository = (*ContactRepository)(nil)
)
