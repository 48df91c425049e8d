// Package store implements the snapshot store (C8): a single-connection
// embedded relational database with schema migrations and cascade-delete
// semantics, per §4.8.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/heftdev/heft/internal/bloat"
)

// Store owns exactly one *sql.DB connection, opened for the duration of a
// single command invocation (§4.8, §5 "Shared resources").
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database at path, enables foreign
// key enforcement, and applies any pending migration.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("store: create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	// One connection per command invocation: a single-connection pool keeps
	// the embedded driver's file locking behavior simple and matches §5's
	// "exactly one connection" requirement.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: enable foreign keys: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return s, nil
}

// Close releases the single connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	const schema = `
CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL);

CREATE TABLE IF NOT EXISTS snapshots (
	id INTEGER PRIMARY KEY,
	scanned_at INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	total_bytes INTEGER NOT NULL,
	reclaimable_bytes INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS entries (
	id INTEGER PRIMARY KEY,
	snapshot_id INTEGER NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
	category TEXT NOT NULL,
	name TEXT NOT NULL,
	path TEXT NOT NULL,
	size_bytes INTEGER NOT NULL,
	reclaimable_bytes INTEGER NOT NULL,
	age_days INTEGER
);

CREATE INDEX IF NOT EXISTS idx_entries_snapshot ON entries(snapshot_id);
`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM schema_version`).Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		if _, err := s.db.Exec(`INSERT INTO schema_version(version) VALUES (1)`); err != nil {
			return err
		}
	}
	return nil
}

// bloatCategory round-trips bloat.Category through its stable string form,
// never through Go's reflection-based %v formatting, so a constant rename
// never silently changes a persisted lookup key (§4.8 "Key stability").
func bloatCategory(c bloat.Category) string { return c.String() }
