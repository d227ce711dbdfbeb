package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/utafrali/wishlist-service/internal/domain"
	apperrors "github.com/utafrali/wishlist-service/pkg/errors"
)

const (
	keyPrefix      = "product:"
	shortKeySuffix = ":short"
	longKeySuffix  = ":long"
)

// ProductCache implements repository.ProductCache using Redis. The two tiers
// live under separate keys so their TTLs expire independently: a short-tier
// entry for freshness and a long-tier entry for resilience when the catalog
// is unreachable.
type ProductCache struct {
	client   *redis.Client
	shortTTL time.Duration
	longTTL  time.Duration
}

// NewProductCache creates a new Redis-backed two-tier product cache.
func NewProductCache(client *redis.Client, shortTTL, longTTL time.Duration) *ProductCache {
	return &ProductCache{
		client:   client,
		shortTTL: shortTTL,
		longTTL:  longTTL,
	}
}

// GetShort retrieves the short-tier entry for the product id.
func (c *ProductCache) GetShort(ctx context.Context, productID string) (domain.ProductRecord, error) {
	return c.get(ctx, shortKey(productID), productID)
}

// SetShort overwrites the short-tier entry, resetting its TTL.
func (c *ProductCache) SetShort(ctx context.Context, productID string, record domain.ProductRecord) error {
	return c.set(ctx, shortKey(productID), record, c.shortTTL)
}

// GetLong retrieves the long-tier entry for the product id.
func (c *ProductCache) GetLong(ctx context.Context, productID string) (domain.ProductRecord, error) {
	return c.get(ctx, longKey(productID), productID)
}

// SetLong overwrites the long-tier entry, resetting its TTL.
func (c *ProductCache) SetLong(ctx context.Context, productID string, record domain.ProductRecord) error {
	return c.set(ctx, longKey(productID), record, c.longTTL)
}

func (c *ProductCache) get(ctx context.Context, key, productID string) (domain.ProductRecord, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("product", productID)
		}
		return nil, fmt.Errorf("redis get product: %w", err)
	}

	return domain.ProductRecord(data), nil
}

func (c *ProductCache) set(ctx context.Context, key string, record domain.ProductRecord, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, []byte(record), ttl).Err(); err != nil {
		return fmt.Errorf("redis set product: %w", err)
	}

	return nil
}

func shortKey(productID string) string {
	return keyPrefix + productID + shortKeySuffix
}

func longKey(productID string) string {
	return keyPrefix + productID + longKeySuffix
}
