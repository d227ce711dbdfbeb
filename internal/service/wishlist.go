package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/wishlist-service/internal/domain"
	"github.com/utafrali/wishlist-service/internal/event"
	"github.com/utafrali/wishlist-service/internal/repository"
	apperrors "github.com/utafrali/wishlist-service/pkg/errors"
)

// Resolver resolves product ids to records with their provenance.
type Resolver interface {
	Resolve(ctx context.Context, productID string) (domain.ProductRecord, domain.Source)
}

// WishlistService implements the business logic for wishlist references.
// The wishlist stores product ids only; listing a wishlist resolves each id
// through the product resolver so responses carry full records plus the
// source each one came from.
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	customerRepo repository.CustomerRepository
	resolver     Resolver
	producer     *event.Producer
	logger       *slog.Logger
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(
	wishlistRepo repository.WishlistRepository,
	customerRepo repository.CustomerRepository,
	resolver Resolver,
	producer *event.Producer,
	logger *slog.Logger,
) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		customerRepo: customerRepo,
		resolver:     resolver,
		producer:     producer,
		logger:       logger,
	}
}

// ListItems returns one page of a customer's wishlist with every product id
// resolved. Ids that resolve land in Items and in their source bucket; ids
// that do not land only in the not_found bucket.
func (s *WishlistService) ListItems(ctx context.Context, identity domain.Identity, customerID string, limit, offset int) (*domain.WishlistPage, error) {
	if _, err := s.loadAuthorizedCustomer(ctx, identity, customerID); err != nil {
		return nil, err
	}

	ids, err := s.wishlistRepo.ListProductIDs(ctx, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list wishlist product ids: %w", err)
	}

	page := domain.NewWishlistPage(limit, offset)

	for _, id := range ids {
		record, source := s.resolver.Resolve(ctx, id)
		switch source {
		case domain.SourceCacheShort:
			page.Items = append(page.Items, record)
			page.Source.FromCacheShort = append(page.Source.FromCacheShort, id)
		case domain.SourceCacheLong:
			page.Items = append(page.Items, record)
			page.Source.FromCacheLong = append(page.Source.FromCacheLong, id)
		case domain.SourceAPI:
			page.Items = append(page.Items, record)
			page.Source.FromAPI = append(page.Source.FromAPI, id)
		case domain.SourceNotFound:
			page.Source.NotFound = append(page.Source.NotFound, id)
		}
	}
	page.Pagination.Count = len(page.Items)

	return page, nil
}

// AddProduct adds a product reference to the customer's wishlist. The
// product must currently resolve; referencing an unknown product is an
// input error, not a silent insert.
func (s *WishlistService) AddProduct(ctx context.Context, identity domain.Identity, customerID, productID string) (*domain.WishlistItem, error) {
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	if _, err := s.loadAuthorizedCustomer(ctx, identity, customerID); err != nil {
		return nil, err
	}

	if _, source := s.resolver.Resolve(ctx, productID); source == domain.SourceNotFound {
		return nil, apperrors.InvalidInput(fmt.Sprintf("product %s does not exist", productID))
	}

	item := &domain.WishlistItem{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		ProductID:  productID,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.wishlistRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("add wishlist item: %w", err)
	}

	// Publish event (non-blocking on failure).
	if err := s.producer.PublishProductAdded(ctx, customerID, productID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.added event",
			slog.String("customer_id", customerID),
			slog.String("product_id", productID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product added to wishlist",
		slog.String("customer_id", customerID),
		slog.String("product_id", productID),
	)

	return item, nil
}

// RemoveProduct soft-deletes a product reference from the customer's wishlist.
func (s *WishlistService) RemoveProduct(ctx context.Context, identity domain.Identity, customerID, productID string) error {
	if _, err := s.loadAuthorizedCustomer(ctx, identity, customerID); err != nil {
		return err
	}

	if err := s.wishlistRepo.SoftDelete(ctx, customerID, productID); err != nil {
		return fmt.Errorf("remove wishlist item: %w", err)
	}

	// Publish event (non-blocking on failure).
	if err := s.producer.PublishProductRemoved(ctx, customerID, productID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.removed event",
			slog.String("customer_id", customerID),
			slog.String("product_id", productID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "product removed from wishlist",
		slog.String("customer_id", customerID),
		slog.String("product_id", productID),
	)

	return nil
}

// loadAuthorizedCustomer fetches the customer and enforces the ownership
// rule: admins may touch any wishlist, everyone else only the wishlist of
// the customer profile matching their own email.
func (s *WishlistService) loadAuthorizedCustomer(ctx context.Context, identity domain.Identity, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}

	if !identity.IsAdmin() && customer.Email != identity.Email {
		return nil, apperrors.Forbidden("customers may only access their own wishlist")
	}

	return customer, nil
}
