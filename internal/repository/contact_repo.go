package repository

import (
	"context"

	"github.com/blog-cms-api/internal/database"
	"github.com/blog-cms-api/internal/models"
)

const contactColumns = `id, created, email, subject, message`

// contactRepo is the concrete implementation of ContactRepository
type contactRepo struct {
	db *database.DB
}

// NewContactRepo creates a new contact request repository
func NewContactRepo(db *database.DB) ContactRepository {
	return &contactRepo{db: db}
}

func scanContact(row rowScanner) (*models.ContactRequest, error) {
	var c models.ContactRequest
	if err := row.Scan(&c.ID, &c.Created, &c.Email, &c.Subject, &c.Message); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create stores a contact request and assigns its id
func (r *contactRepo) Create(ctx context.Context, c *models.ContactRequest) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO contact_requests (created, email, subject, message)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		c.Created, c.Email, c.Subject, c.Message,
	).Scan(&c.ID)
	if err != nil {
		return storeErr("create contact request", err)
	}
	return nil
}

// FindByID retrieves one contact request
func (r *contactRepo) FindByID(ctx context.Context, id int64) (*models.ContactRequest, error) {
	query := `SELECT ` + contactColumns + ` FROM contact_requests WHERE id = $1`
	c, err := scanContact(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, storeErr("find contact request", err)
	}
	return c, nil
}

// FindAll returns every contact request, newest first
func (r *contactRepo) FindAll(ctx context.Context) ([]*models.ContactRequest, error) {
	query := `SELECT ` + contactColumns + ` FROM contact_requests ORDER BY created DESC, id DESC`
	return r.list(ctx, "list contact requests", query)
}

// FindRecent returns one page of contact requests, newest first
func (r *contactRepo) FindRecent(ctx context.Context, limit, offset int) ([]*models.ContactRequest, error) {
	query := `SELECT ` + contactColumns + ` FROM contact_requests
		ORDER BY created DESC, id DESC LIMIT $1 OFFSET $2`
	return r.list(ctx, "list recent contact requests", query, limit, offset)
}

func (r *contactRepo) list(ctx context.Context, op, query string, args ...interface{}) ([]*models.ContactRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()

	contacts := make([]*models.ContactRequest, 0)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, storeErr(op, err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}
	return contacts, nil
}

// CountAll returns the number of stored contact requests
func (r *contactRepo) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_requests`).Scan(&count); err != nil {
		return 0, storeErr("count contact requests", err)
	}
	return count, nil
}

// Delete removes a contact request by id
func (r *contactRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM contact_requests WHERE id = $1`, id); err != nil {
		return storeErr("delete contact request", err)
	}
	return nil
}
