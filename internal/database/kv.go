package database

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // cgo-free sqlite driver
)

// KVStore is the persistence port of the local backend: one JSON blob per
// named slot.
type KVStore interface {
	ReadSlot(key string) ([]byte, error)
	WriteSlot(key string, value []byte) error
	DeleteSlot(key string) error
	Close() error
}

// SqliteKV implements KVStore on an embedded sqlite file.
type SqliteKV struct {
	db *sqlx.DB
}

const kvSchema = `
CREATE TABLE IF NOT EXISTS kv_slots (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// OpenKV opens (and initializes) the local key-value store.
func OpenKV(path string) (*SqliteKV, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	if _, err := db.Exec(kvSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize local store: %w", err)
	}
	return &SqliteKV{db: db}, nil
}

// ReadSlot returns the slot contents, or (nil, nil) when the slot is absent.
func (s *SqliteKV) ReadSlot(key string) ([]byte, error) {
	var value string
	err := s.db.Get(&value, `SELECT value FROM kv_slots WHERE key = ?`, key)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return []byte(value), nil
}

// WriteSlot replaces the slot contents.
func (s *SqliteKV) WriteSlot(key string, value []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO kv_slots (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(value),
	)
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	return nil
}

// DeleteSlot removes the slot; deleting an absent slot is not an error.
func (s *SqliteKV) DeleteSlot(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv_slots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SqliteKV) Close() error {
	return s.db.Close()
}
