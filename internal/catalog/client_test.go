package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/utafrali/wishlist-service/pkg/errors"
	"github.com/utafrali/wishlist-service/pkg/httpclient"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	httpc := httpclient.New(httpclient.Config{
		Timeout:      2 * time.Second,
		MaxRetries:   0,
		RetryWaitMin: 10 * time.Millisecond,
		RetryWaitMax: 20 * time.Millisecond,
	})
	return NewClient(httpc, srv.URL+"/api/product/", 2*time.Second)
}

func TestClient_FetchProduct_Success(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"prod-1","title":"Widget","price":1990}`))
	})

	record, err := client.FetchProduct(context.Background(), "prod-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"prod-1","title":"Widget","price":1990}`, string(record))
	assert.Equal(t, "/api/product/prod-1", gotPath)
}

func TestClient_FetchProduct_ExactPath(t *testing.T) {
	// A catalog with strict routing serves only {base}/{productId}; any
	// other form, including a trailing slash, is a 404.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/product/42" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"42","title":"Gadget"}`))
	})

	record, err := client.FetchProduct(context.Background(), "42")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"42","title":"Gadget"}`, string(record))
}

func TestClient_FetchProduct_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	record, err := client.FetchProduct(context.Background(), "prod-missing")
	assert.Nil(t, record)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "expected ErrNotFound, got: %v", err)
}

func TestClient_FetchProduct_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	record, err := client.FetchProduct(context.Background(), "prod-1")
	assert.Nil(t, record)
	require.Error(t, err)
	assert.False(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestClient_FetchProduct_InvalidJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>definitely not json</html>"))
	})

	record, err := client.FetchProduct(context.Background(), "prod-1")
	assert.Nil(t, record)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestClient_FetchProduct_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	httpc := httpclient.New(httpclient.Config{
		Timeout:      10 * time.Second,
		MaxRetries:   0,
		RetryWaitMin: 10 * time.Millisecond,
		RetryWaitMax: 20 * time.Millisecond,
	})
	client := NewClient(httpc, srv.URL+"/api/product/", 100*time.Millisecond)

	start := time.Now()
	record, err := client.FetchProduct(context.Background(), "prod-slow")
	assert.Nil(t, record)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}
