package storage

import (
	"context"
	"testing"
	"time"

	"github.com/vitos/crypto_market_view/internal/domain"
)

func TestSQLiteStore_SaveLoadCatalog(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	// Empty store: no error, zero time.
	entries, fetchedAt, err := store.LoadCatalog(ctx)
	if err != nil {
		t.Fatalf("LoadCatalog on empty store failed: %v", err)
	}
	if len(entries) != 0 || !fetchedAt.IsZero() {
		t.Fatalf("empty store must return nothing, got %d entries", len(entries))
	}

	catalog := []domain.CatalogEntry{
		{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin"},
		{ID: "obscure-one", Symbol: "obs", Name: "Obscure One"},
		{ID: "obscure-two", Symbol: "obs", Name: "Obscure Two"},
	}
	stamp := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if err := store.SaveCatalog(ctx, catalog, stamp); err != nil {
		t.Fatalf("SaveCatalog failed: %v", err)
	}

	entries, fetchedAt, err = store.LoadCatalog(ctx)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	// Catalog order decides ambiguous-ticker resolution, so it must survive
	// the round trip.
	for i, want := range catalog {
		if entries[i] != want {
			t.Errorf("entry %d: expected %+v, got %+v", i, want, entries[i])
		}
	}
	if !fetchedAt.Equal(stamp) {
		t.Errorf("expected fetched_at %v, got %v", stamp, fetchedAt)
	}
}

func TestSQLiteStore_SaveReplacesWholesale(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	first := []domain.CatalogEntry{{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin"}}
	second := []domain.CatalogEntry{{ID: "ethereum", Symbol: "eth", Name: "Ethereum"}}

	if err := store.SaveCatalog(ctx, first, time.Now()); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if err := store.SaveCatalog(ctx, second, time.Now()); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	entries, _, err := store.LoadCatalog(ctx)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "ethereum" {
		t.Fatalf("save must replace, got %+v", entries)
	}
}
