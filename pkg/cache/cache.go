// Package cache stores rendered image bytes in SQLite.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// Store is a key/value cache of encoded images.
type Store struct {
	db *sql.DB
}

// Open opens or creates the cache database at path. Use ":memory:" for a
// throwaway cache.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", path, err)
	}
	// :memory: databases are per-connection.
	db.SetMaxOpenConns(1)

	rendersTable := `
	CREATE TABLE IF NOT EXISTS renders (
		key TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`
	if _, err := db.Exec(rendersTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create renders table: %w", err)
	}

	return &Store{db: db}, nil
}

// Get returns the cached bytes for key. ok is false on a miss.
func (s *Store) Get(key string) (data []byte, ok bool, err error) {
	err = s.db.QueryRow("SELECT data FROM renders WHERE key = ?", key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	return data, true, nil
}

// Put stores data under key, replacing any previous entry.
func (s *Store) Put(key string, data []byte) error {
	_, err := s.db.Exec(
		"INSERT INTO renders (key, data) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET data = excluded.data, created_at = CURRENT_TIMESTAMP",
		key, data,
	)
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}

// Len returns the number of cached entries.
func (s *Store) Len() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM renders").Scan(&n); err != nil {
		return 0, fmt.Errorf("cache count: %w", err)
	}
	return n, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Key derives a cache key from render parameters.
func Key(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}
