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

// CustomerService implements the business logic for customer profiles.
// Non-admin callers may only operate on the customer profile whose email
// matches their own identity; admins may operate on any profile.
type CustomerService struct {
	customerRepo repository.CustomerRepository
	producer     *event.Producer
	logger       *slog.Logger
}

// NewCustomerService creates a new customer service.
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		producer:     producer,
		logger:       logger,
	}
}

// CreateCustomerInput holds the parameters for creating a customer profile.
type CreateCustomerInput struct {
	Name  string
	Email string
}

// UpdateCustomerInput holds the parameters for updating a customer profile.
type UpdateCustomerInput struct {
	Name  *string
	Email *string
}

// Create registers a new customer profile. Email is unique across live
// customers.
func (s *CustomerService) Create(ctx context.Context, identity domain.Identity, input CreateCustomerInput) (*domain.Customer, error) {
	if input.Name == "" {
		return nil, apperrors.InvalidInput("name is required")
	}
	if input.Email == "" {
		return nil, apperrors.InvalidInput("email is required")
	}
	if !identity.IsAdmin() && input.Email != identity.Email {
		return nil, apperrors.Forbidden("customers may only create their own profile")
	}

	now := time.Now().UTC()
	customer := &domain.Customer{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Email:     input.Email,
		UserID:    identity.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	// Publish creation event (non-blocking on failure).
	if err := s.producer.PublishCustomerCreated(ctx, customer); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish customer.created event",
			slog.String("customer_id", customer.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "customer created",
		slog.String("customer_id", customer.ID),
		slog.String("email", customer.Email),
	)

	return customer, nil
}

// Get retrieves a customer profile the caller is authorized to see.
func (s *CustomerService) Get(ctx context.Context, identity domain.Identity, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}

	if err := s.authorize(identity, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// GetByEmail retrieves a customer profile by email, subject to the same
// access rules as Get.
func (s *CustomerService) GetByEmail(ctx context.Context, identity domain.Identity, email string) (*domain.Customer, error) {
	if email == "" {
		return nil, apperrors.InvalidInput("email is required")
	}

	customer, err := s.customerRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get customer by email: %w", err)
	}

	if err := s.authorize(identity, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// Update modifies a customer profile the caller is authorized to manage.
func (s *CustomerService) Update(ctx context.Context, identity domain.Identity, customerID string, input UpdateCustomerInput) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("get customer for update: %w", err)
	}

	if err := s.authorize(identity, customer); err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperrors.InvalidInput("name must not be empty")
		}
		customer.Name = *input.Name
	}

	if input.Email != nil {
		if *input.Email == "" {
			return nil, apperrors.InvalidInput("email must not be empty")
		}
		// A non-admin changing the email would orphan their own profile.
		if !identity.IsAdmin() && *input.Email != identity.Email {
			return nil, apperrors.Forbidden("customers may not transfer their profile to another email")
		}
		customer.Email = *input.Email
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}

	s.logger.InfoContext(ctx, "customer updated",
		slog.String("customer_id", customer.ID),
	)

	return customer, nil
}

// Delete soft-deletes a customer profile the caller is authorized to manage.
func (s *CustomerService) Delete(ctx context.Context, identity domain.Identity, customerID string) error {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return fmt.Errorf("get customer for delete: %w", err)
	}

	if err := s.authorize(identity, customer); err != nil {
		return err
	}

	if err := s.customerRepo.SoftDelete(ctx, customerID); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}

	// Publish deletion event (non-blocking on failure).
	if err := s.producer.PublishCustomerDeleted(ctx, customer.ID, customer.Email); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish customer.deleted event",
			slog.String("customer_id", customer.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "customer deleted",
		slog.String("customer_id", customer.ID),
	)

	return nil
}

// authorize checks that the caller may operate on the customer profile.
func (s *CustomerService) authorize(identity domain.Identity, customer *domain.Customer) error {
	if identity.IsAdmin() {
		return nil
	}
	if customer.Email != identity.Email {
		return apperrors.Forbidden("customers may only manage their own profile")
	}
	return nil
}
