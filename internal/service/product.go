package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/utafrali/wishlist-service/internal/domain"
	"github.com/utafrali/wishlist-service/internal/repository"
	apperrors "github.com/utafrali/wishlist-service/pkg/errors"
)

// ProductFetcher retrieves product records from the upstream catalog.
type ProductFetcher interface {
	FetchProduct(ctx context.Context, productID string) (domain.ProductRecord, error)
}

var productResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "product_resolutions_total",
		Help: "Total number of product resolutions by source",
	},
	[]string{"source"},
)

// ProductResolver resolves product ids to records through a two-tier cache
// in front of the catalog API. Resolution never fails: every lookup lands in
// exactly one of the four sources (short cache, live API, long cache, or
// not found), so an unreliable catalog degrades answers instead of requests.
type ProductResolver struct {
	cache   repository.ProductCache
	catalog ProductFetcher
	logger  *slog.Logger
}

// NewProductResolver creates a new product resolver.
func NewProductResolver(cache repository.ProductCache, catalog ProductFetcher, logger *slog.Logger) *ProductResolver {
	return &ProductResolver{
		cache:   cache,
		catalog: catalog,
		logger:  logger,
	}
}

// Resolve looks up one product id. The order is fixed:
//
//  1. short-tier cache hit wins;
//  2. otherwise the catalog is queried, and a successful fetch refreshes
//     the short tier;
//  3. otherwise the long tier serves a possibly stale record;
//  4. otherwise the id is reported not found.
//
// Cache errors are treated as misses and only the catalog ever writes the
// short tier, so the long tier is never refreshed from here.
func (r *ProductResolver) Resolve(ctx context.Context, productID string) (domain.ProductRecord, domain.Source) {
	if record, err := r.cache.GetShort(ctx, productID); err == nil {
		productResolutionsTotal.WithLabelValues(string(domain.SourceCacheShort)).Inc()
		return record, domain.SourceCacheShort
	} else if !isMiss(err) {
		r.logger.WarnContext(ctx, "short cache read failed",
			slog.String("product_id", productID),
			slog.String("error", err.Error()),
		)
	}

	record, err := r.catalog.FetchProduct(ctx, productID)
	if err == nil {
		if err := r.cache.SetShort(ctx, productID, record); err != nil {
			r.logger.WarnContext(ctx, "short cache write failed",
				slog.String("product_id", productID),
				slog.String("error", err.Error()),
			)
		}
		productResolutionsTotal.WithLabelValues(string(domain.SourceAPI)).Inc()
		return record, domain.SourceAPI
	}

	r.logger.DebugContext(ctx, "catalog fetch failed, falling back to long cache",
		slog.String("product_id", productID),
		slog.String("error", err.Error()),
	)

	if record, err := r.cache.GetLong(ctx, productID); err == nil {
		productResolutionsTotal.WithLabelValues(string(domain.SourceCacheLong)).Inc()
		return record, domain.SourceCacheLong
	} else if !isMiss(err) {
		r.logger.WarnContext(ctx, "long cache read failed",
			slog.String("product_id", productID),
			slog.String("error", err.Error()),
		)
	}

	productResolutionsTotal.WithLabelValues(string(domain.SourceNotFound)).Inc()
	return nil, domain.SourceNotFound
}

// SaveLongCache stores a record in the long tier. This is the only write
// path into the long tier; Resolve never touches it.
func (r *ProductResolver) SaveLongCache(ctx context.Context, productID string, record domain.ProductRecord) error {
	if productID == "" {
		return apperrors.InvalidInput("product id is required")
	}
	if !json.Valid(record) {
		return apperrors.InvalidInput("product record must be valid JSON")
	}

	if err := r.cache.SetLong(ctx, productID, record); err != nil {
		return err
	}

	r.logger.DebugContext(ctx, "long cache entry saved",
		slog.String("product_id", productID),
	)

	return nil
}

// WarmLongCache fetches each product from the catalog and writes it through
// to the long tier. It keeps going on per-product failures and returns the
// number of entries written.
func (r *ProductResolver) WarmLongCache(ctx context.Context, productIDs []string) (int, error) {
	warmed := 0
	for _, id := range productIDs {
		if err := ctx.Err(); err != nil {
			return warmed, err
		}

		record, err := r.catalog.FetchProduct(ctx, id)
		if err != nil {
			r.logger.WarnContext(ctx, "skipping product during warmup",
				slog.String("product_id", id),
				slog.String("error", err.Error()),
			)
			continue
		}

		if err := r.SaveLongCache(ctx, id, record); err != nil {
			r.logger.WarnContext(ctx, "long cache write failed during warmup",
				slog.String("product_id", id),
				slog.String("error", err.Error()),
			)
			continue
		}
		warmed++
	}

	return warmed, nil
}

// isMiss reports whether a cache error is an ordinary miss rather than an
// infrastructure failure worth logging.
func isMiss(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}
