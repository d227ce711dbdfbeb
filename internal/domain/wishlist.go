package domain

import (
	"time"
)

// WishlistItem associates a customer with a product id. The product's details
// live in the upstream catalog; only the reference is stored. Items are
// soft-deleted, and at most one non-deleted item may exist per
// (customer, product) pair, enforced by a partial unique index in storage.
type WishlistItem struct {
	ID         string     `json:"id"`
	CustomerID string     `json:"customer_id"`
	ProductID  string     `json:"product_id"`
	CreatedAt  time.Time  `json:"created_at"`
	DeletedAt  *time.Time `json:"-"`
}

// SourceBuckets partitions the product ids of one wishlist page by how each
// id was resolved. Every requested id lands in exactly one bucket.
type SourceBuckets struct {
	FromCacheShort []string `json:"from_cache_short"`
	FromCacheLong  []string `json:"from_cache_long"`
	FromAPI        []string `json:"from_api"`
	NotFound       []string `json:"not_found"`
}

// Pagination echoes the requested window and the number of records returned.
// Count reflects resolved items only; not-found ids are excluded.
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Count  int `json:"count"`
}

// WishlistPage is the aggregated listing response. Its JSON shape is a
// compatibility surface; consumers depend on the exact field names.
type WishlistPage struct {
	Items      []ProductRecord `json:"items"`
	Source     SourceBuckets   `json:"source"`
	Pagination Pagination      `json:"pagination"`
}

// NewWishlistPage returns an empty page with all bucket slices initialized so
// they marshal as [] rather than null.
func NewWishlistPage(limit, offset int) *WishlistPage {
	return &WishlistPage{
		Items: []ProductRecord{},
		Source: SourceBuckets{
			FromCacheShort: []string{},
			FromCacheLong:  []string{},
			FromAPI:        []string{},
			NotFound:       []string{},
		},
		Pagination: Pagination{Limit: limit, Offset: offset},
	}
}
