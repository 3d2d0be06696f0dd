// Package cache implements the local durable snapshot store on SQLite. Each
// logical dataset is one keyed blob; keys must stay stable across versions.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

const createSnapshotsTable = `
CREATE TABLE IF NOT EXISTS snapshots (
    key TEXT PRIMARY KEY,
    payload BLOB NOT NULL,
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`

// Store is a keyed-blob store backed by a local SQLite file.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens the cache database at path, creating it and its schema when
// missing.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(createSnapshotsTable); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the blob stored under key, reporting whether it exists.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM snapshots WHERE key = ?`, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return payload, true, nil
}

// Put stores the blob under key, replacing any previous value.
func (s *Store) Put(ctx context.Context, key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.put(ctx, key, payload)
}

// Update applies a read-modify-write under the store lock so that writers of
// sibling fields sharing a blob cannot clobber each other.
func (s *Store) Update(ctx context.Context, key string, fn func(prev []byte, found bool) ([]byte, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, found, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	next, err := fn(prev, found)
	if err != nil {
		return err
	}
	return s.put(ctx, key, next)
}

func (s *Store) put(ctx context.Context, key string, payload []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (key, payload, updated_at) VALUES (?, ?, datetime('now'))
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		key, payload,
	)
	return err
}
