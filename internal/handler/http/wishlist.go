package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/wishlist-service/internal/service"
	"github.com/utafrali/wishlist-service/pkg/validator"
)

// Pagination bounds for wishlist listing.
const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// WishlistHandler handles HTTP requests for wishlist endpoints.
type WishlistHandler struct {
	service *service.WishlistService
	logger  *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(svc *service.WishlistService, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{service: svc, logger: logger}
}

// List handles GET /api/v1/customers/{id}/wishlist
//
// The page is written bare (items, source, pagination at the top level)
// rather than in the usual data envelope; integrations consume this shape
// directly.
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "id")

	limit, offset, ok := parsePagination(w, r)
	if !ok {
		return
	}

	page, err := h.service.ListItems(r.Context(), identityFromContext(r), customerID, limit, offset)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// AddWishlistItemRequest is the JSON request body for adding a product
// reference to a wishlist.
type AddWishlistItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// Add handles POST /api/v1/customers/{id}/wishlist
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "id")

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req AddWishlistItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	item, err := h.service.AddProduct(r.Context(), identityFromContext(r), customerID, req.ProductID)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: item})
}

// Remove handles DELETE /api/v1/customers/{id}/wishlist/{productId}
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "id")
	productID := chi.URLParam(r, "productId")

	if err := h.service.RemoveProduct(r.Context(), identityFromContext(r), customerID, productID); err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]string{"product_id": productID, "status": "removed"}})
}

// parsePagination reads limit/offset query parameters, applying defaults and
// bounds. On invalid input it writes a 400 and reports !ok.
func parsePagination(w http.ResponseWriter, r *http.Request) (limit, offset int, ok bool) {
	limit = defaultPageLimit
	offset = 0

	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxPageLimit {
			writeJSON(w, http.StatusBadRequest, response{
				Error: &errorResponse{Code: "INVALID_INPUT", Message: "limit must be an integer between 1 and 100"},
			})
			return 0, 0, false
		}
		limit = n
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, response{
				Error: &errorResponse{Code: "INVALID_INPUT", Message: "offset must be a non-negative integer"},
			})
			return 0, 0, false
		}
		offset = n
	}

	return limit, offset, true
}
