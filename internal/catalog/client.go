// Package catalog provides the HTTP client for the upstream product catalog
// API. The catalog is the source of truth for product details; this service
// never stores them, only resolves ids through the client and its caches.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/utafrali/wishlist-service/internal/domain"
	apperrors "github.com/utafrali/wishlist-service/pkg/errors"
	"github.com/utafrali/wishlist-service/pkg/httpclient"
)

// HTTPDoer abstracts the HTTP client so the catalog client works with either
// a plain retrying client or one wrapped in a circuit breaker.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

const maxResponseBytes = 1 << 20 // 1 MB

// Client fetches product records from the upstream catalog API.
type Client struct {
	http    HTTPDoer
	baseURL string
	timeout time.Duration
}

// NewClient creates a catalog client. baseURL is the catalog's product
// endpoint prefix; timeout bounds each fetch.
func NewClient(http HTTPDoer, baseURL string, timeout time.Duration) *Client {
	return &Client{
		http:    http,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		timeout: timeout,
	}
}

// FetchProduct retrieves one product by id. It returns ErrNotFound when the
// catalog responds 404, and an error for any other failure: non-2xx status,
// network error, timeout, or a body that is not valid JSON. The record is
// passed through opaquely; the catalog's schema is not interpreted here.
func (c *Client) FetchProduct(ctx context.Context, productID string) (domain.ProductRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/%s", c.baseURL, productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create catalog request: %w", err)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("fetch product %s: %w", productID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, apperrors.NotFound("product", productID)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, httpclient.ParseResponseError(resp, "catalog")
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read catalog response: %w", err)
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("catalog returned invalid JSON for product %s", productID)
	}

	return domain.ProductRecord(body), nil
}
