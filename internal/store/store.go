// Package store implements the local persistence layer for jamjudge: a
// SQLite-backed key/value area holding JSON-serialized values. It is the
// single source of truth for saved evaluations, event settings and the
// weight configuration.
//
// The contract is deliberately forgiving: Get never fails (absence or a
// malformed value yields the caller's default), and Set is best-effort
// (failures are logged, never propagated). Callers proceed as if a failed
// write simply had not happened.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"jamjudge/internal/logging"
)

// Store is the SQLite-backed key/value store.
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
}

// Open initializes the SQLite database at the given path.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.StoreDebug("Failed to set sqlite busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logging.StoreDebug("Failed to set sqlite journal_mode=WAL: %v", err)
	}

	s := &Store{db: db, dbPath: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logging.Store("Opened store at %s", path)
	return s, nil
}

// initialize creates the required schema.
func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Get reads the value under key into out. It returns false, leaving out
// untouched, when the key is absent or the stored value cannot be
// deserialized. It never returns an error: callers supply their default by
// pre-populating out.
func (s *Store) Get(key string, out interface{}) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var raw string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		logging.Get(logging.CategoryStore).Warn("Read failed for key %q: %v", key, err)
		return false
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		logging.Get(logging.CategoryStore).Warn("Malformed value under key %q, using default: %v", key, err)
		return false
	}
	return true
}

// Set writes the JSON serialization of v under key, replacing any prior
// value in one statement. Failures are logged and swallowed; the caller's
// in-memory state is not rolled back and nothing is retried.
func (s *Store) Set(key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Get(logging.CategoryStore).Error("Failed to serialize value for key %q: %v", key, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, string(data),
	)
	if err != nil {
		logging.Get(logging.CategoryStore).Error("Write failed for key %q: %v", key, err)
		return
	}
	logging.StoreDebug("Wrote key %q (%d bytes)", key, len(data))
}
