package domain

import (
	"encoding/json"
)

// ProductRecord is the catalog's description of a product (id, title, price,
// image, brand, review score). The resolver and cache treat it as an opaque
// payload: it is stored and returned exactly as the upstream produced it,
// never parsed or merged.
type ProductRecord = json.RawMessage

// Source classifies where a resolved product record came from.
type Source string

const (
	// SourceCacheShort: served from the freshness tier, no network call made.
	SourceCacheShort Source = "cache_short"
	// SourceCacheLong: upstream failed, served from the resilience tier.
	SourceCacheLong Source = "cache_long"
	// SourceAPI: fetched live from the upstream catalog.
	SourceAPI Source = "api"
	// SourceNotFound: both tiers missed and the upstream was unavailable or
	// does not know the product. A data outcome, not an error.
	SourceNotFound Source = "not_found"
)
