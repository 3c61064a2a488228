// Package runcache is an optional, local, embedded cache that skips
// re-analyzing an unchanged curriculum file on repeat runs. It caches
// the rendered metrics CSV bytes only — Plan, Graph, and MetricsTable
// values are always rebuilt fresh and never read back from here.
package runcache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS analysis_cache (
	content_hash TEXT PRIMARY KEY,
	csv_bytes    BLOB NOT NULL,
	created_at   TIMESTAMP NOT NULL
);`

// Cache wraps a sqlite3 database file storing prior run outputs keyed by
// content hash.
type Cache struct {
	DB *sql.DB
}

// Open opens (creating if absent) the cache database at dir/cache.db.
func Open(dir string) (*Cache, error) {
	path := filepath.Join(dir, "cache.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping cache db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate cache db: %w", err)
	}
	return &Cache{DB: db}, nil
}

// Key derives the cache key from a plan's raw CSV bytes and the
// scheduler's target-credit parameter, so a changed target invalidates
// the cache without touching the file on disk.
func Key(rawCSV []byte, targetCredits float64) string {
	h := sha256.New()
	h.Write(rawCSV)
	fmt.Fprintf(h, "|%v", targetCredits)
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached metrics CSV bytes for key, or ok=false on a
// miss.
func (c *Cache) Get(key string) (csvBytes []byte, ok bool, err error) {
	row := c.DB.QueryRow(`SELECT csv_bytes FROM analysis_cache WHERE content_hash = ?`, key)
	err = row.Scan(&csvBytes)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return csvBytes, true, nil
}

// Put stores csvBytes under key, replacing any prior entry.
func (c *Cache) Put(key string, csvBytes []byte) error {
	_, err := c.DB.Exec(
		`INSERT INTO analysis_cache(content_hash, csv_bytes, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(content_hash) DO UPDATE SET csv_bytes = excluded.csv_bytes, created_at = excluded.created_at`,
		key, csvBytes, time.Now(),
	)
	return err
}

// Close closes the underlying database handle.
func (c *Cache) Close() error {
	return c.DB.Close()
}
