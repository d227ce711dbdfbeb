package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/wishlist-service/internal/domain"
	pkgkafka "github.com/utafrali/wishlist-service/pkg/kafka"
)

// Kafka topic constants for wishlist domain events.
const (
	TopicUserRegistered         = "wishlist.user.registered"
	TopicCustomerCreated        = "wishlist.customer.created"
	TopicCustomerDeleted        = "wishlist.customer.deleted"
	TopicWishlistProductAdded   = "wishlist.product.added"
	TopicWishlistProductRemoved = "wishlist.product.removed"
)

// Aggregate type constants.
const (
	AggregateTypeUser     = "user"
	AggregateTypeCustomer = "customer"
	AggregateTypeWishlist = "wishlist"
)

// Source identifier for events originating from this service.
const SourceWishlistService = "wishlist-service"

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// CustomerData is the payload for customer.created and customer.deleted events.
type CustomerData struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// WishlistProductData is the payload for wishlist product.added and
// product.removed events.
type WishlistProductData struct {
	CustomerID string `json:"customer_id"`
	ProductID  string `json:"product_id"`
}

// Producer publishes wishlist domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the wishlist service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	data := UserRegisteredData{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}

	event, err := pkgkafka.NewEvent(TopicUserRegistered, user.ID, AggregateTypeUser, SourceWishlistService, data)
	if err != nil {
		return fmt.Errorf("create user.registered event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicUserRegistered, event); err != nil {
		return fmt.Errorf("publish user.registered event: %w", err)
	}

	p.logger.DebugContext(ctx, "published user.registered event",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return nil
}

// PublishCustomerCreated publishes a customer.created event.
func (p *Producer) PublishCustomerCreated(ctx context.Context, customer *domain.Customer) error {
	data := CustomerData{
		ID:    customer.ID,
		Email: customer.Email,
		Name:  customer.Name,
	}

	event, err := pkgkafka.NewEvent(TopicCustomerCreated, customer.ID, AggregateTypeCustomer, SourceWishlistService, data)
	if err != nil {
		return fmt.Errorf("create customer.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCustomerCreated, event); err != nil {
		return fmt.Errorf("publish customer.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published customer.created event",
		slog.String("customer_id", customer.ID),
	)

	return nil
}

// PublishCustomerDeleted publishes a customer.deleted event.
func (p *Producer) PublishCustomerDeleted(ctx context.Context, customerID, email string) error {
	data := CustomerData{
		ID:    customerID,
		Email: email,
	}

	event, err := pkgkafka.NewEvent(TopicCustomerDeleted, customerID, AggregateTypeCustomer, SourceWishlistService, data)
	if err != nil {
		return fmt.Errorf("create customer.deleted event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCustomerDeleted, event); err != nil {
		return fmt.Errorf("publish customer.deleted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published customer.deleted event",
		slog.String("customer_id", customerID),
	)

	return nil
}

// PublishProductAdded publishes a wishlist product.added event.
func (p *Producer) PublishProductAdded(ctx context.Context, customerID, productID string) error {
	return p.publishProductEvent(ctx, TopicWishlistProductAdded, customerID, productID)
}

// PublishProductRemoved publishes a wishlist product.removed event.
func (p *Producer) PublishProductRemoved(ctx context.Context, customerID, productID string) error {
	return p.publishProductEvent(ctx, TopicWishlistProductRemoved, customerID, productID)
}

func (p *Producer) publishProductEvent(ctx context.Context, topic, customerID, productID string) error {
	data := WishlistProductData{
		CustomerID: customerID,
		ProductID:  productID,
	}

	event, err := pkgkafka.NewEvent(topic, customerID, AggregateTypeWishlist, SourceWishlistService, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published wishlist product event",
		slog.String("topic", topic),
		slog.String("customer_id", customerID),
		slog.String("product_id", productID),
	)

	return nil
}
