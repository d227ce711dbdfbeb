package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/wishlist-service/internal/domain"
	apperrors "github.com/utafrali/wishlist-service/pkg/errors"
)

func newWishlistTestFixture(t *testing.T) (*WishlistRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := NewWishlistRepository(mock)
	return repo, mock
}

func testWishlistItem() *domain.WishlistItem {
	return &domain.WishlistItem{
		ID:         "item-1",
		CustomerID: "cust-1",
		ProductID:  "prod-1",
		CreatedAt:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestWishlistRepository_Create_Success(t *testing.T) {
	repo, mock := newWishlistTestFixture(t)
	defer mock.Close()

	item := testWishlistItem()
	mock.ExpectExec("INSERT INTO wishlist_items").
		WithArgs(item.ID, item.CustomerID, item.ProductID, item.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), item)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepository_Create_DuplicateReference(t *testing.T) {
	repo, mock := newWishlistTestFixture(t)
	defer mock.Close()

	item := testWishlistItem()
	mock.ExpectExec("INSERT INTO wishlist_items").
		WithArgs(item.ID, item.CustomerID, item.ProductID, item.CreatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "wishlist_items_live_ref_idx"})

	err := repo.Create(context.Background(), item)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrAlreadyExists), "expected ErrAlreadyExists, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepository_Create_ExecError(t *testing.T) {
	repo, mock := newWishlistTestFixture(t)
	defer mock.Close()

	item := testWishlistItem()
	mock.ExpectExec("INSERT INTO wishlist_items").
		WithArgs(item.ID, item.CustomerID, item.ProductID, item.CreatedAt).
		WillReturnError(errors.New("connection refused"))

	err := repo.Create(context.Background(), item)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert wishlist item")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// ListProductIDs
// ---------------------------------------------------------------------------

func TestWishlistRepository_ListProductIDs_Success(t *testing.T) {
	repo, mock := newWishlistTestFixture(t)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"product_id"}).
		AddRow("prod-1").
		AddRow("prod-2")
	mock.ExpectQuery("SELECT product_id").
		WithArgs("cust-1", 10, 0).
		WillReturnRows(rows)

	ids, err := repo.ListProductIDs(context.Background(), "cust-1", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"prod-1", "prod-2"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepository_ListProductIDs_EmptyPage(t *testing.T) {
	repo, mock := newWishlistTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT product_id").
		WithArgs("cust-1", 10, 50).
		WillReturnRows(pgxmock.NewRows([]string{"product_id"}))

	ids, err := repo.ListProductIDs(context.Background(), "cust-1", 10, 50)
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepository_ListProductIDs_QueryError(t *testing.T) {
	repo, mock := newWishlistTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT product_id").
		WithArgs("cust-1", 10, 0).
		WillReturnError(errors.New("connection refused"))

	ids, err := repo.ListProductIDs(context.Background(), "cust-1", 10, 0)
	require.Error(t, err)
	assert.Nil(t, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// SoftDelete
// ---------------------------------------------------------------------------

func TestWishlistRepository_SoftDelete_Success(t *testing.T) {
	repo, mock := newWishlistTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("UPDATE wishlist_items").
		WithArgs(pgxmock.AnyArg(), "cust-1", "prod-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.SoftDelete(context.Background(), "cust-1", "prod-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepository_SoftDelete_NotFound(t *testing.T) {
	repo, mock := newWishlistTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("UPDATE wishlist_items").
		WithArgs(pgxmock.AnyArg(), "cust-1", "prod-missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.SoftDelete(context.Background(), "cust-1", "prod-missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "expected ErrNotFound, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistRepository_SoftDelete_AlreadyDeleted(t *testing.T) {
	repo, mock := newWishlistTestFixture(t)
	defer mock.Close()

	// Soft-deleted rows fall outside the deleted_at IS NULL filter, so a
	// second removal behaves exactly like removing an absent reference.
	mock.ExpectExec("UPDATE wishlist_items").
		WithArgs(pgxmock.AnyArg(), "cust-1", "prod-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.SoftDelete(context.Background(), "cust-1", "prod-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
