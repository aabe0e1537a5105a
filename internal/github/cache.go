package github

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Cache is a SQLite-backed store of repository listings, keyed by
// username with a freshness TTL.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
}

const cacheSchema = `
CREATE TABLE IF NOT EXISTS repo_listings (
	username   TEXT PRIMARY KEY,
	fetched_at INTEGER NOT NULL,
	payload    BLOB NOT NULL
);`

// OpenCache opens (creating if needed) the cache database at path.
// Entries older than ttl are treated as misses.
func OpenCache(path string, ttl time.Duration) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open repo cache: %w", err)
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create repo cache schema: %w", err)
	}
	return &Cache{db: db, ttl: ttl}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached listing for username and whether a fresh entry
// was found.
func (c *Cache) Get(ctx context.Context, username string) ([]Repository, bool, error) {
	var (
		fetchedAt int64
		payload   []byte
	)
	row := c.db.QueryRowContext(ctx,
		`SELECT fetched_at, payload FROM repo_listings WHERE username = ?`, username)
	if err := row.Scan(&fetchedAt, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read repo cache: %w", err)
	}

	if time.Since(fromMillis(fetchedAt)) > c.ttl {
		return nil, false, nil
	}

	var repos []Repository
	if err := json.Unmarshal(payload, &repos); err != nil {
		return nil, false, fmt.Errorf("decode cached listing: %w", err)
	}
	return repos, true, nil
}

// Put stores the listing for username, replacing any previous entry.
func (c *Cache) Put(ctx context.Context, username string, repos []Repository) error {
	payload, err := json.Marshal(repos)
	if err != nil {
		return fmt.Errorf("encode listing: %w", err)
	}

	_, err = c.db.ExecContext(ctx,
		`INSERT INTO repo_listings (username, fetched_at, payload) VALUES (?, ?, ?)
		 ON CONFLICT (username) DO UPDATE SET fetched_at = excluded.fetched_at, payload = excluded.payload`,
		username, toMillis(time.Now()), payload)
	if err != nil {
		return fmt.Errorf("write repo cache: %w", err)
	}
	return nil
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}
