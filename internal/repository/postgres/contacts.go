package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"storefront-api/internal/models"
)

const contactColumns = `id, name, email, phone, subject, message, status, created_at`

type ContactRepository struct {
	db *sql.DB
}

func scanContact(row rowScanner) (*models.ContactMessage, error) {
	var m models.ContactMessage
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Message, &m.Status, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ContactRepository) Create(ctx context.Context, m *models.ContactMessage) error {
	if m.ID == "" {
		m.ID = newID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now()
	}
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO contact_messages ("+contactColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		m.ID, m.Name, m.Email, m.Phone, m.Subject, m.Message, m.Status, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contact message: %w", translate(err))
	}
	return nil
}

func (r *ContactRepository) GetByID(ctx context.Context, id string) (*models.ContactMessage, error) {
	m, err := scanContact(r.db.QueryRowContext(ctx,
		"SELECT "+contactColumns+" FROM contact_messages WHERE id = $1", id))
	if err != nil {
		return nil, translate(err)
	}
	return m, nil
}

func (r *ContactRepository) list(ctx context.Context, limit int) ([]models.ContactMessage, error) {
	query := "SELECT " + contactColumns + " FROM contact_messages ORDER BY created_at DESC, seq DESC"
	if limit > 0 {
		query += " LIMIT " + strconv.Itoa(limit)
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.ContactMessage{}
	for rows.Next() {
		m, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *m)
	}
	return messages, rows.Err()
}

func (r *ContactRepository) List(ctx context.Context) ([]models.ContactMessage, error) {
	return r.list(ctx, 0)
}

func (r *ContactRepository) ListRecent(ctx context.Context, n int) ([]models.ContactMessage, error) {
	return r.list(ctx, n)
}

func (r *ContactRepository) UpdateStatus(ctx context.Context, id string, status models.ContactStatus) error {
	res, err := r.db.ExecContext(ctx, "UPDATE contact_messages SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *ContactRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM contact_messages").Scan(&n)
	return n, err
}
