package valapi

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// CatalogCache persists raw catalog payloads so the app can come up
// with reference data even when valorant-api.com is unreachable.
type CatalogCache struct {
	db *sql.DB
}

// DefaultCachePath returns the cache location under the user's config
// directory.
func DefaultCachePath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = "."
	}
	return filepath.Join(configDir, "Haunt", "catalogs.db")
}

// OpenCatalogCache opens (creating if needed) the cache database at
// path. An empty path falls back to the default location.
func OpenCatalogCache(path string) (*CatalogCache, error) {
	if path == "" {
		path = DefaultCachePath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog cache: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS catalogs (
			name       TEXT PRIMARY KEY,
			payload    BLOB NOT NULL,
			fetched_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init catalog cache schema: %w", err)
	}

	return &CatalogCache{db: db}, nil
}

// Put stores (or replaces) the payload for a catalog.
func (c *CatalogCache) Put(name string, payload []byte) error {
	_, err := c.db.Exec(`
		INSERT INTO catalogs (name, payload, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at
	`, name, payload, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("store catalog %s: %w", name, err)
	}
	return nil
}

// Get returns the last stored payload for a catalog.
func (c *CatalogCache) Get(name string) ([]byte, error) {
	var payload []byte
	err := c.db.QueryRow(`SELECT payload FROM catalogs WHERE name = ?`, name).Scan(&payload)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", name, err)
	}
	return payload, nil
}

// Close closes the underlying database.
func (c *CatalogCache) Close() error {
	return c.db.Close()
}
