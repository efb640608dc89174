//go:build sqlite_fts5

package index

import (
	"database/sql"
	"fmt"

	"github.com/nvoss/macrolog/internal/models"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS foods_fts USING fts5(
			name,
			unit UNINDEXED,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsUpsert(tx *sql.Tx, name, unit string) error {
	_, _ = tx.Exec(`DELETE FROM foods_fts WHERE name = ?`, name)
	if _, err := tx.Exec(`INSERT INTO foods_fts (name, unit) VALUES (?, ?)`, name, unit); err != nil {
		return fmt.Errorf("index: upsert fts: %w", err)
	}
	return nil
}

func ftsClear(tx *sql.Tx) {
	_, _ = tx.Exec(`DELETE FROM foods_fts`)
}

// SearchFoods performs an FTS5 search over food names and returns the
// matching catalog rows.
func (db *DB) SearchFoods(query string, limit int) ([]models.Food, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT f.name, f.base_amount, f.unit, f.calories, f.protein_g, f.fat_g, f.sat_fat_g
		FROM foods_fts
		JOIN foods f ON f.name = foods_fts.name
		WHERE foods_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search foods: %w", err)
	}
	return scanFoods(rows)
}
