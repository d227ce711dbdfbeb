package repository

import (
	"context"

	"github.com/utafrali/wishlist-service/internal/domain"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create inserts a new user into the store.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a non-deleted user by their unique identifier.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a non-deleted user by their email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// CustomerRepository defines the interface for customer persistence operations.
// All reads exclude soft-deleted rows.
type CustomerRepository interface {
	// Create inserts a new customer into the store.
	Create(ctx context.Context, customer *domain.Customer) error

	// GetByID retrieves a customer by their unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Customer, error)

	// GetByEmail retrieves a customer by their email address.
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)

	// Update modifies an existing customer in the store.
	Update(ctx context.Context, customer *domain.Customer) error

	// SoftDelete marks a customer as deleted without removing the row.
	SoftDelete(ctx context.Context, id string) error
}

// WishlistRepository defines the interface for wishlist reference persistence.
type WishlistRepository interface {
	// Create inserts a new wishlist reference. A second non-deleted reference
	// for the same (customer, product) pair yields ErrAlreadyExists.
	Create(ctx context.Context, item *domain.WishlistItem) error

	// ListProductIDs returns one page of the customer's non-deleted product id
	// references in a deterministic order (creation time, then id).
	ListProductIDs(ctx context.Context, customerID string, limit, offset int) ([]string, error)

	// SoftDelete marks the matching non-deleted reference as deleted.
	// Absence of such a reference yields ErrNotFound.
	SoftDelete(ctx context.Context, customerID, productID string) error
}

// ProductCache is the two-tier cache store the resolver reads through. The
// short tier favors freshness, the long tier resilience; both are keyed by
// product id with independent TTLs. A miss on either tier is ErrNotFound.
type ProductCache interface {
	// GetShort returns the freshness-tier entry for the product id.
	GetShort(ctx context.Context, productID string) (domain.ProductRecord, error)

	// SetShort overwrites the freshness-tier entry with the short TTL.
	SetShort(ctx context.Context, productID string, record domain.ProductRecord) error

	// GetLong returns the resilience-tier entry for the product id.
	GetLong(ctx context.Context, productID string) (domain.ProductRecord, error)

	// SetLong overwrites the resilience-tier entry with the long TTL.
	SetLong(ctx context.Context, productID string, record domain.ProductRecord) error
}
