package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/utafrali/wishlist-service/internal/domain"
	"github.com/utafrali/wishlist-service/pkg/database"
	apperrors "github.com/utafrali/wishlist-service/pkg/errors"
)

// WishlistRepository implements repository.WishlistRepository using PostgreSQL.
// Each row references a catalog product by id only; product details are never
// stored here. A partial unique index on (customer_id, product_id) where
// deleted_at IS NULL enforces at most one live reference per pair while
// letting a removed product be re-added later.
type WishlistRepository struct {
	db database.DBTX
}

// NewWishlistRepository creates a new PostgreSQL-backed wishlist repository.
func NewWishlistRepository(db database.DBTX) *WishlistRepository {
	return &WishlistRepository{db: db}
}

// Create inserts a new wishlist reference.
func (r *WishlistRepository) Create(ctx context.Context, item *domain.WishlistItem) error {
	query := `
		INSERT INTO wishlist_items (id, customer_id, product_id, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query,
		item.ID,
		item.CustomerID,
		item.ProductID,
		item.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("wishlist item", "product_id", item.ProductID)
		}
		return fmt.Errorf("insert wishlist item: %w", err)
	}

	return nil
}

// ListProductIDs returns one page of the customer's non-deleted product id
// references, ordered by creation time then id so pagination is stable.
func (r *WishlistRepository) ListProductIDs(ctx context.Context, customerID string, limit, offset int) ([]string, error) {
	query := `
		SELECT product_id
		FROM wishlist_items
		WHERE customer_id = $1 AND deleted_at IS NULL
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list wishlist items: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan wishlist item row: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wishlist item rows: %w", err)
	}

	if ids == nil {
		ids = []string{}
	}

	return ids, nil
}

// SoftDelete marks the matching non-deleted reference as deleted.
func (r *WishlistRepository) SoftDelete(ctx context.Context, customerID, productID string) error {
	query := `
		UPDATE wishlist_items
		SET deleted_at = $1
		WHERE customer_id = $2 AND product_id = $3 AND deleted_at IS NULL`

	ct, err := r.db.Exec(ctx, query, time.Now().UTC(), customerID, productID)
	if err != nil {
		return fmt.Errorf("soft delete wishlist item: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("wishlist item", productID)
	}

	return nil
}
