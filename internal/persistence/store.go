/*
Package persistence
File: store.go
Description:
    SQLite-backed save store. Each save is one row: a generated id, the
    day it captured, and the session's JSON state blob. The database is
    opened in WAL mode so a save during a day pulse never blocks reads.
*/

package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS saves (
    id         TEXT PRIMARY KEY,
    label      TEXT NOT NULL DEFAULT '',
    day        INTEGER NOT NULL,
    state      BLOB NOT NULL,
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_saves_created_at ON saves(created_at);
`

// SaveRecord is one stored save, state included.
type SaveRecord struct {
	ID        string    `db:"id" json:"id"`
	Label     string    `db:"label" json:"label"`
	Day       int       `db:"day" json:"day"`
	State     []byte    `db:"state" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Store wraps the saves database.
type Store struct {
	db *sqlx.DB
}

// Open connects to (or creates) the save database at path.
func Open(path string) (*Store, error) {
	db, err := sqlx.Connect("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open save db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate save db: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (st *Store) Close() error {
	return st.db.Close()
}

// Put stores a session state blob and returns the new save's id.
func (st *Store) Put(label string, day int, state []byte) (string, error) {
	rec := SaveRecord{
		ID:        uuid.NewString(),
		Label:     label,
		Day:       day,
		State:     state,
		CreatedAt: time.Now().UTC(),
	}
	_, err := st.db.NamedExec(
		`INSERT INTO saves (id, label, day, state, created_at)
		 VALUES (:id, :label, :day, :state, :created_at)`, &rec)
	if err != nil {
		return "", fmt.Errorf("insert save: %w", err)
	}
	return rec.ID, nil
}

// Get loads one save by id.
func (st *Store) Get(id string) (*SaveRecord, error) {
	var rec SaveRecord
	if err := st.db.Get(&rec, `SELECT * FROM saves WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("load save %s: %w", id, err)
	}
	return &rec, nil
}

// Latest loads the most recent save, or nil if none exist.
func (st *Store) Latest() (*SaveRecord, error) {
	var rec SaveRecord
	err := st.db.Get(&rec, `SELECT * FROM saves ORDER BY created_at DESC LIMIT 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load latest save: %w", err)
	}
	return &rec, nil
}

// List returns save metadata newest first, without state blobs.
func (st *Store) List() ([]SaveRecord, error) {
	var recs []SaveRecord
	err := st.db.Select(&recs,
		`SELECT id, label, day, '' AS state, created_at FROM saves ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	return recs, nil
}

// Delete removes one save.
func (st *Store) Delete(id string) error {
	if _, err := st.db.Exec(`DELETE FROM saves WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete save %s: %w", id, err)
	}
	return nil
}
