package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"storefront-api/internal/models"
)

const productColumns = `id, seq, name, description, price, original_price, category, subcategory,
	images, features, stock, ratings_average, ratings_count, featured, new_arrival,
	new_arrival_date, created_at`

type ProductRepository struct {
	db *sql.DB
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	var originalPrice sql.NullFloat64
	var newArrivalDate sql.NullTime

	err := row.Scan(
		&p.ID, &p.Seq, &p.Name, &p.Description, &p.Price, &originalPrice, &p.Category, &p.Subcategory,
		pq.Array(&p.Images), pq.Array(&p.Features), &p.Stock, &p.Ratings.Average, &p.Ratings.Count,
		&p.Featured, &p.NewArrival, &newArrivalDate, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if originalPrice.Valid {
		p.OriginalPrice = &originalPrice.Float64
	}
	if newArrivalDate.Valid {
		p.NewArrivalDate = &newArrivalDate.Time
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	return &p, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

const insertProduct = `
	INSERT INTO products (id, name, description, price, original_price, category, subcategory,
		images, features, stock, ratings_average, ratings_count, featured, new_arrival,
		new_arrival_date, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	RETURNING seq`

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insertOne(ctx context.Context, db rowQuerier, p *models.Product) error {
	if p.ID == "" {
		p.ID = newID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now()
	}
	p.Images = nonNil(p.Images)

	return db.QueryRowContext(ctx, insertProduct,
		p.ID, p.Name, p.Description, p.Price, p.OriginalPrice, p.Category, p.Subcategory,
		pq.Array(p.Images), pq.Array(nonNil(p.Features)), p.Stock, p.Ratings.Average, p.Ratings.Count,
		p.Featured, p.NewArrival, p.NewArrivalDate, p.CreatedAt,
	).Scan(&p.Seq)
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	if err := insertOne(ctx, r.db, p); err != nil {
		return fmt.Errorf("insert product: %w", translate(err))
	}
	return nil
}

func (r *ProductRepository) InsertMany(ctx context.Context, products []models.Product) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	for i := range products {
		if err := insertOne(ctx, tx, &products[i]); err != nil {
			return 0, fmt.Errorf("insert product %q: %w", products[i].Name, translate(err))
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(products), nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
	p, err := scanProduct(row)
	if err != nil {
		return nil, translate(err)
	}
	return p, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	err := r.db.QueryRowContext(ctx, `
		UPDATE products SET name = $2, description = $3, price = $4, original_price = $5,
			category = $6, subcategory = $7, images = $8, features = $9,
			ratings_average = $10, ratings_count = $11, featured = $12, new_arrival = $13,
			new_arrival_date = $14
		WHERE id = $1
		RETURNING stock`,
		p.ID, p.Name, p.Description, p.Price, p.OriginalPrice, p.Category, p.Subcategory,
		pq.Array(nonNil(p.Images)), pq.Array(nonNil(p.Features)), p.Ratings.Average,
		p.Ratings.Count, p.Featured, p.NewArrival, p.NewArrivalDate,
	).Scan(&p.Stock)
	if err != nil {
		return fmt.Errorf("update product: %w", translate(err))
	}
	return nil
}

func (r *ProductRepository) SetStock(ctx context.Context, id string, stock int) error {
	res, err := r.db.ExecContext(ctx, "UPDATE products SET stock = $1 WHERE id = $2", stock, id)
	if err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	return requireAffected(res)
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *ProductRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = ANY($1)", pq.Array(ids))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *ProductRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *ProductRepository) List(ctx context.Context, q models.ProductQuery) ([]models.Product, int64, error) {
	list, count, args := productListQuery(q)

	var total int64
	if err := r.db.QueryRowContext(ctx, count, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, list, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, *p)
	}
	return products, total, rows.Err()
}

func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT DISTINCT category FROM products ORDER BY category")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&n)
	return n, err
}

func (r *ProductRepository) DecrementStock(ctx context.Context, id string, qty int) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1", qty, id)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *ProductRepository) IncrementStock(ctx context.Context, id string, qty int) error {
	res, err := r.db.ExecContext(ctx, "UPDATE products SET stock = stock + $1 WHERE id = $2", qty, id)
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	return requireAffected(res)
}

func (r *ProductRepository) RenameCategory(ctx context.Context, from, to models.Category) (int64, error) {
	res, err := r.db.ExecContext(ctx, "UPDATE products SET category = $1 WHERE category = $2", to, from)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
