package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLite-backed slot: one row per key in a kv table. Useful when several
// lists share one database file. There is no change notification;
// readers fall back to polling.

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

// DBFileName is the database file created inside the storage directory.
const DBFileName = "gacha.db"

// Slot stores raw bytes under a key in a SQLite database.
type Slot struct {
	db  *sql.DB
	key string
}

// Open opens (creating if needed) the database at path.
func Open(path, key string) (*Slot, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection: writes from this process are serialized.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`PRAGMA busy_timeout = 5000`); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Slot{db: db, key: key}, nil
}

// Read returns the value stored under the slot key.
func (s *Slot) Read(ctx context.Context) ([]byte, bool, error) {
	var b []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, s.key).Scan(&b)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("select: %w", err)
	}
	return b, true, nil
}

// Write upserts the value under the slot key.
func (s *Slot) Write(ctx context.Context, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key, data, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert: %w", err)
	}
	return nil
}

// Close releases the database.
func (s *Slot) Close() error {
	return s.db.Close()
}
