package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/wishlist-service/internal/auth"
	"github.com/utafrali/wishlist-service/internal/domain"
	"github.com/utafrali/wishlist-service/internal/event"
	"github.com/utafrali/wishlist-service/internal/service"
	pkgkafka "github.com/utafrali/wishlist-service/pkg/kafka"
	"github.com/utafrali/wishlist-service/pkg/middleware"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockCustomerRepo struct {
	mock.Mock
}

func (m *mockCustomerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *mockCustomerRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *mockCustomerRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *mockCustomerRepo) Update(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *mockCustomerRepo) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockWishlistRepo struct {
	mock.Mock
}

func (m *mockWishlistRepo) Create(ctx context.Context, item *domain.WishlistItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockWishlistRepo) ListProductIDs(ctx context.Context, customerID string, limit, offset int) ([]string, error) {
	args := m.Called(ctx, customerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockWishlistRepo) SoftDelete(ctx context.Context, customerID, productID string) error {
	args := m.Called(ctx, customerID, productID)
	return args.Error(0)
}

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Resolve(ctx context.Context, productID string) (domain.ProductRecord, domain.Source) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Get(1).(domain.Source)
	}
	return args.Get(0).(domain.ProductRecord), args.Get(1).(domain.Source)
}

// ============================================================================
// Test Helpers
// ============================================================================

const (
	testUserID     = "550e8400-e29b-41d4-a716-446655440001"
	testCustomerID = "550e8400-e29b-41d4-a716-446655440002"
	testEmail      = "jane@example.com"
	testProductID  = "1bf0f365-fbdd-4e21-9786-da459d78dd1f"
)

func handlerTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func handlerTestEventProducer() *event.Producer {
	logger := handlerTestLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	return event.NewProducer(pkgkafka.NewProducer(kafkaCfg, logger), logger)
}

func handlerTestJWTManager() *auth.JWTManager {
	return auth.NewJWTManager("test-secret-key-for-testing", time.Hour)
}

// fakeTokenValidator returns a middleware.TokenValidator that always succeeds
// and injects the given identity into the request context.
func fakeTokenValidator(email, role string) middleware.TokenValidator {
	return func(token string) (*middleware.Claims, error) {
		return &middleware.Claims{UserID: testUserID, Email: email, Role: role}, nil
	}
}

// setupCustomerRouter creates a chi router mirroring the production customer
// and wishlist routes, authenticated as the given identity.
func setupCustomerRouter(customerHandler *CustomerHandler, wishlistHandler *WishlistHandler, email, role string) *chi.Mux {
	r := chi.NewRouter()
	r.Route("/api/v1/customers", func(r chi.Router) {
		r.Use(middleware.Auth(fakeTokenValidator(email, role)))
		r.Post("/", customerHandler.Create)
		r.Get("/", customerHandler.GetByEmail)
		r.Get("/{id}", customerHandler.Get)
		r.Put("/{id}", customerHandler.Update)
		r.Delete("/{id}", customerHandler.Delete)
		r.Get("/{id}/wishlist", wishlistHandler.List)
		r.Post("/{id}/wishlist", wishlistHandler.Add)
		r.Delete("/{id}/wishlist/{productId}", wishlistHandler.Remove)
	})
	return r
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response {
	t.Helper()
	var resp response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func sampleCustomer() *domain.Customer {
	now := time.Now().UTC()
	return &domain.Customer{
		ID:        testCustomerID,
		Name:      "Jane Doe",
		Email:     testEmail,
		UserID:    testUserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newWishlistService(wishlistRepo *mockWishlistRepo, customerRepo *mockCustomerRepo, resolver *mockResolver) *service.WishlistService {
	return service.NewWishlistService(wishlistRepo, customerRepo, resolver, handlerTestEventProducer(), handlerTestLogger())
}

func newCustomerService(customerRepo *mockCustomerRepo) *service.CustomerService {
	return service.NewCustomerService(customerRepo, handlerTestEventProducer(), handlerTestLogger())
}

func newAuthService(userRepo *mockUserRepo) *service.AuthService {
	return service.NewAuthService(userRepo, handlerTestJWTManager(), handlerTestEventProducer(), handlerTestLogger())
}
