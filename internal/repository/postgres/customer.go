package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/wishlist-service/internal/domain"
	"github.com/utafrali/wishlist-service/pkg/database"
	apperrors "github.com/utafrali/wishlist-service/pkg/errors"
)

// CustomerRepository implements repository.CustomerRepository using PostgreSQL.
// Rows are soft-deleted; every read filters on deleted_at IS NULL.
type CustomerRepository struct {
	db database.DBTX
}

// NewCustomerRepository creates a new PostgreSQL-backed customer repository.
func NewCustomerRepository(db database.DBTX) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create inserts a new customer into the database.
func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		c.ID,
		c.Name,
		c.Email,
		c.UserID,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("customer", "email", c.Email)
		}
		return fmt.Errorf("insert customer: %w", err)
	}

	return nil
}

// GetByID retrieves a customer by their ID.
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	query := `
		SELECT id, name, email, user_id, created_at, updated_at, deleted_at
		FROM customers
		WHERE id = $1 AND deleted_at IS NULL`

	return r.scanCustomer(ctx, query, id)
}

// GetByEmail retrieves a customer by their email address.
func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	query := `
		SELECT id, name, email, user_id, created_at, updated_at, deleted_at
		FROM customers
		WHERE email = $1 AND deleted_at IS NULL`

	return r.scanCustomer(ctx, query, email)
}

// Update modifies an existing customer in the database.
func (r *CustomerRepository) Update(ctx context.Context, c *domain.Customer) error {
	c.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE customers
		SET name = $1, email = $2, updated_at = $3
		WHERE id = $4 AND deleted_at IS NULL`

	ct, err := r.db.Exec(ctx, query,
		c.Name,
		c.Email,
		c.UpdatedAt,
		c.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("customer", "email", c.Email)
		}
		return fmt.Errorf("update customer: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("customer", c.ID)
	}

	return nil
}

// SoftDelete marks a customer as deleted without removing the row.
func (r *CustomerRepository) SoftDelete(ctx context.Context, id string) error {
	query := `
		UPDATE customers
		SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND deleted_at IS NULL`

	ct, err := r.db.Exec(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("soft delete customer: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("customer", id)
	}

	return nil
}

// scanCustomer is a helper that executes a query expected to return a single customer row.
func (r *CustomerRepository) scanCustomer(ctx context.Context, query string, args ...any) (*domain.Customer, error) {
	var c domain.Customer

	err := r.db.QueryRow(ctx, query, args...).Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.UserID,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan customer: %w", err)
	}

	return &c, nil
}
