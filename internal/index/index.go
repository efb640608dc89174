// Package index provides a SQLite-backed derived view over the repositories:
// recent-entry listing and food name search (FTS5 when compiled in). The
// repositories remain the single source of truth; the index is disposable
// and rebuilt from them.
package index

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/nvoss/macrolog/internal/models"
)

const coreSchemaSQL = `
CREATE TABLE IF NOT EXISTS entries (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	date        TEXT NOT NULL,
	food        TEXT NOT NULL,
	quantity    REAL NOT NULL,
	unit        TEXT NOT NULL DEFAULT '',
	base_amount REAL NOT NULL DEFAULT 0,
	calories    REAL NOT NULL DEFAULT 0,
	protein_g   REAL NOT NULL DEFAULT 0,
	fat_g       REAL NOT NULL DEFAULT 0,
	sat_fat_g   REAL NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_entries_date ON entries(date);

CREATE TABLE IF NOT EXISTS foods (
	name        TEXT PRIMARY KEY,
	base_amount REAL NOT NULL,
	unit        TEXT NOT NULL,
	calories    REAL NOT NULL DEFAULT 0,
	protein_g   REAL NOT NULL DEFAULT 0,
	fat_g       REAL NOT NULL DEFAULT 0,
	sat_fat_g   REAL NOT NULL DEFAULT 0
);
`

// EntryIndex defines the query operations the index offers. Consumers should
// depend on this interface rather than the concrete *DB type to facilitate
// testing with mocks.
type EntryIndex interface {
	ReplaceAll(foods []models.Food, entries []models.LogEntry) error
	InsertEntry(e models.LogEntry) error
	UpsertFood(f models.Food) error
	RecentEntries(limit int) ([]models.LogEntry, error)
	SearchFoods(query string, limit int) ([]models.Food, error)
	Close() error
}

// Verify *DB satisfies EntryIndex at compile time.
var _ EntryIndex = (*DB)(nil)

// DB wraps a sql.DB with index-specific operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("index: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: ping: %w", err)
	}
	if _, err := conn.Exec(coreSchemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: apply core schema: %w", err)
	}
	if err := initFTS(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: apply fts schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
