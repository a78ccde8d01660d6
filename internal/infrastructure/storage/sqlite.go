package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/vitos/crypto_market_view/internal/domain"
)

// SQLiteStore persists the provider's coin catalog so the symbol resolver
// can warm-start after a restart instead of refetching ~17k records.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS catalog (
			id TEXT PRIMARY KEY,
			symbol TEXT NOT NULL,
			name TEXT NOT NULL,
			position INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_catalog_symbol ON catalog(symbol);`,
		`CREATE TABLE IF NOT EXISTS catalog_meta (
			key TEXT PRIMARY KEY,
			fetched_at DATETIME NOT NULL
		);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("failed to exec query %s: %w", q, err)
		}
	}

	return nil
}

// SaveCatalog replaces the stored catalog wholesale. Catalog order matters
// (ambiguous tickers resolve to the first match), so the position column
// preserves it.
func (s *SQLiteStore) SaveCatalog(ctx context.Context, entries []domain.CatalogEntry, fetchedAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM catalog`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO catalog (id, symbol, name, position) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.ID, e.Symbol, e.Name, i); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO catalog_meta (key, fetched_at) VALUES ('catalog', ?)
		 ON CONFLICT(key) DO UPDATE SET fetched_at = excluded.fetched_at`,
		fetchedAt.UTC()); err != nil {
		return err
	}

	return tx.Commit()
}

// LoadCatalog returns the stored catalog in its original order and when it
// was fetched. An empty store returns no error and a zero time.
func (s *SQLiteStore) LoadCatalog(ctx context.Context) ([]domain.CatalogEntry, time.Time, error) {
	var fetchedAt time.Time
	err := s.db.QueryRowContext(ctx,
		`SELECT fetched_at FROM catalog_meta WHERE key = 'catalog'`).Scan(&fetchedAt)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, symbol, name FROM catalog ORDER BY position`)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer rows.Close()

	var entries []domain.CatalogEntry
	for rows.Next() {
		var e domain.CatalogEntry
		if err := rows.Scan(&e.ID, &e.Symbol, &e.Name); err != nil {
			return nil, time.Time{}, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, err
	}

	return entries, fetchedAt, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
