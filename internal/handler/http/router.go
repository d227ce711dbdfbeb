package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/wishlist-service/internal/auth"
	"github.com/utafrali/wishlist-service/internal/domain"
	"github.com/utafrali/wishlist-service/internal/service"
	"github.com/utafrali/wishlist-service/pkg/health"
	"github.com/utafrali/wishlist-service/pkg/middleware"
)

// NewRouter creates a chi router with all wishlist service routes registered.
func NewRouter(
	authService *service.AuthService,
	customerService *service.CustomerService,
	wishlistService *service.WishlistService,
	jwtManager *auth.JWTManager,
	healthHandler *health.Handler,
	logger *slog.Logger,
	corsConfig CORSConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(CORS(corsConfig))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("wishlist"))
	r.Use(middleware.Tracing("wishlist"))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Token validator that bridges to our internal JWTManager.
	tokenValidator := func(token string) (*middleware.Claims, error) {
		claims, err := jwtManager.ValidateAccessToken(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		}, nil
	}

	authHandler := NewAuthHandler(authService, logger)
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		// Public endpoints
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(tokenValidator))
			r.Get("/me", authHandler.Me)
		})
	})

	// Customer and wishlist endpoints (auth required)
	customerHandler := NewCustomerHandler(customerService)
	wishlistHandler := NewWishlistHandler(wishlistService, logger)

	r.Route("/api/v1/customers", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.Auth(tokenValidator))
		r.Use(middleware.RequireRole(domain.RoleCustomer, domain.RoleAdmin))

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
