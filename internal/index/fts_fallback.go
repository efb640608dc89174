//go:build !sqlite_fts5

package index

import (
	"database/sql"
	"fmt"

	"github.com/nvoss/macrolog/internal/models"
)

func initFTS(_ *sql.DB) error {
	// FTS5 not available; food search uses a LIKE fallback on the foods table.
	return nil
}

func ftsUpsert(_ *sql.Tx, _, _ string) error {
	// Names are already stored in the foods table; nothing extra to do.
	return nil
}

func ftsClear(_ *sql.Tx) {}

// SearchFoods performs a LIKE-based name search (fallback when FTS5 is not
// compiled in).
func (db *DB) SearchFoods(query string, limit int) ([]models.Food, error) {
	if limit <= 0 {
		limit = 20
	}
	like := "%" + query + "%"
	rows, err := db.conn.Query(`
		SELECT name, base_amount, unit, calories, protein_g, fat_g, sat_fat_g
		FROM foods
		WHERE name LIKE ?
		ORDER BY name
		LIMIT ?
	`, like, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search foods: %w", err)
	}
	return scanFoods(rows)
}
