package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/wishlist-service/internal/domain"
	apperrors "github.com/utafrali/wishlist-service/pkg/errors"
)

func setupTestCache(t *testing.T) (*ProductCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	cache := NewProductCache(client, 5*time.Minute, 24*time.Hour)
	return cache, mr
}

const sampleRecord = `{"id":"prod-1","title":"Widget","price":1990,"brand":"Acme"}`

// ---------------------------------------------------------------------------
// Short tier
// ---------------------------------------------------------------------------

func TestProductCache_GetShort_Hit(t *testing.T) {
	cache, mr := setupTestCache(t)

	require.NoError(t, mr.Set("product:prod-1:short", sampleRecord))

	got, err := cache.GetShort(context.Background(), "prod-1")
	require.NoError(t, err)
	assert.JSONEq(t, sampleRecord, string(got))
}

func TestProductCache_GetShort_Miss(t *testing.T) {
	cache, _ := setupTestCache(t)

	got, err := cache.GetShort(context.Background(), "prod-missing")
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "expected ErrNotFound, got: %v", err)
}

func TestProductCache_SetShort_AppliesShortTTL(t *testing.T) {
	cache, mr := setupTestCache(t)

	err := cache.SetShort(context.Background(), "prod-1", domain.ProductRecord(sampleRecord))
	require.NoError(t, err)

	assert.Equal(t, sampleRecord, mustGet(t, mr, "product:prod-1:short"))
	assert.Equal(t, 5*time.Minute, mr.TTL("product:prod-1:short"))
}

func TestProductCache_ShortEntryExpires(t *testing.T) {
	cache, mr := setupTestCache(t)

	require.NoError(t, cache.SetShort(context.Background(), "prod-1", domain.ProductRecord(sampleRecord)))

	mr.FastForward(5*time.Minute + time.Second)

	got, err := cache.GetShort(context.Background(), "prod-1")
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

// ---------------------------------------------------------------------------
// Long tier
// ---------------------------------------------------------------------------

func TestProductCache_GetLong_Hit(t *testing.T) {
	cache, mr := setupTestCache(t)

	require.NoError(t, mr.Set("product:prod-1:long", sampleRecord))

	got, err := cache.GetLong(context.Background(), "prod-1")
	require.NoError(t, err)
	assert.JSONEq(t, sampleRecord, string(got))
}

func TestProductCache_SetLong_AppliesLongTTL(t *testing.T) {
	cache, mr := setupTestCache(t)

	err := cache.SetLong(context.Background(), "prod-1", domain.ProductRecord(sampleRecord))
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour, mr.TTL("product:prod-1:long"))
}

// ---------------------------------------------------------------------------
// Tier independence
// ---------------------------------------------------------------------------

func TestProductCache_TiersAreIndependent(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetShort(ctx, "prod-1", domain.ProductRecord(sampleRecord)))
	require.NoError(t, cache.SetLong(ctx, "prod-1", domain.ProductRecord(sampleRecord)))

	// Expire the short tier; the long tier must survive.
	mr.FastForward(6 * time.Minute)

	_, err := cache.GetShort(ctx, "prod-1")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	got, err := cache.GetLong(ctx, "prod-1")
	require.NoError(t, err)
	assert.JSONEq(t, sampleRecord, string(got))
}

func TestProductCache_SetShort_OverwritesAndResetsTTL(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SetShort(ctx, "prod-1", domain.ProductRecord(`{"id":"prod-1","title":"Old"}`)))
	mr.FastForward(4 * time.Minute)

	updated := `{"id":"prod-1","title":"New"}`
	require.NoError(t, cache.SetShort(ctx, "prod-1", domain.ProductRecord(updated)))

	got, err := cache.GetShort(ctx, "prod-1")
	require.NoError(t, err)
	assert.JSONEq(t, updated, string(got))
	assert.Equal(t, 5*time.Minute, mr.TTL("product:prod-1:short"))
}

func mustGet(t *testing.T, mr *miniredis.Miniredis, key string) string {
	t.Helper()
	v, err := mr.Get(key)
	require.NoError(t, err)
	return v
}
