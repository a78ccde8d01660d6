package domain

import (
	"context"
	"time"
)

// MarketProvider defines the read-only interface to the upstream market-data
// API. Implementations must classify failures into the error taxonomy in
// errors.go.
type MarketProvider interface {
	// Markets returns the top coins by market capitalization, in provider
	// (market-cap descending) order.
	Markets(ctx context.Context) ([]MarketTicker, error)

	// CoinData returns current stats for a single coin by provider id.
	CoinData(ctx context.Context, id string) (*CoinData, error)

	// MarketChart returns (timestamp, price) samples covering the last
	// `days` days, chronological.
	MarketChart(ctx context.Context, id string, days int) ([]PricePoint, error)

	// CoinList returns the provider's full coin catalog.
	CoinList(ctx context.Context) ([]CatalogEntry, error)
}

// CatalogStore persists the coin catalog between restarts so symbol
// resolution inside the cache window needs no refetch.
type CatalogStore interface {
	SaveCatalog(ctx context.Context, entries []CatalogEntry, fetchedAt time.Time) error
	LoadCatalog(ctx context.Context) ([]CatalogEntry, time.Time, error)
}
