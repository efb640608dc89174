package index

import (
	"database/sql"
	"fmt"

	"github.com/nvoss/macrolog/internal/models"
)

// ReplaceAll rebuilds the foods and entries tables from the repositories in
// a single transaction. Called at startup and whenever the data files change
// on disk.
func (db *DB) ReplaceAll(foods []models.Food, entries []models.LogEntry) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if _, err := tx.Exec(`DELETE FROM entries`); err != nil {
		return fmt.Errorf("index: clear entries: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM foods`); err != nil {
		return fmt.Errorf("index: clear foods: %w", err)
	}
	ftsClear(tx)

	for _, f := range foods {
		if err := upsertFoodTx(tx, f); err != nil {
			return err
		}
	}
	for _, e := range entries {
		if err := insertEntryTx(tx, e); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// InsertEntry appends one log entry row.
func (db *DB) InsertEntry(e models.LogEntry) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := insertEntryTx(tx, e); err != nil {
		return err
	}
	return tx.Commit()
}

// UpsertFood inserts or replaces one catalog row and its FTS entry.
func (db *DB) UpsertFood(f models.Food) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := upsertFoodTx(tx, f); err != nil {
		return err
	}
	return tx.Commit()
}

func insertEntryTx(tx *sql.Tx, e models.LogEntry) error {
	_, err := tx.Exec(`
		INSERT INTO entries (date, food, quantity, unit, base_amount, calories, protein_g, fat_g, sat_fat_g)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.Date.Format(models.DateFormat), e.Food, e.Quantity, e.Unit, e.BaseAmount,
		e.Calories, e.ProteinG, e.FatG, e.SatFatG)
	if err != nil {
		return fmt.Errorf("index: insert entry: %w", err)
	}
	return nil
}

func upsertFoodTx(tx *sql.Tx, f models.Food) error {
	_, err := tx.Exec(`
		INSERT INTO foods (name, base_amount, unit, calories, protein_g, fat_g, sat_fat_g)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			base_amount = excluded.base_amount,
			unit        = excluded.unit,
			calories    = excluded.calories,
			protein_g   = excluded.protein_g,
			fat_g       = excluded.fat_g,
			sat_fat_g   = excluded.sat_fat_g
	`, f.Name, f.BaseAmount, f.Unit, f.Calories, f.ProteinG, f.FatG, f.SatFatG)
	if err != nil {
		return fmt.Errorf("index: upsert food: %w", err)
	}
	return ftsUpsert(tx, f.Name, f.Unit)
}

// RecentEntries returns up to limit entries ordered by date descending,
// most recently inserted first within a day.
func (db *DB) RecentEntries(limit int) ([]models.LogEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT date, food, quantity, unit, base_amount, calories, protein_g, fat_g, sat_fat_g
		FROM entries
		ORDER BY date DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("index: recent entries: %w", err)
	}
	defer rows.Close()

	var out []models.LogEntry
	for rows.Next() {
		var e models.LogEntry
		var day string
		if err := rows.Scan(&day, &e.Food, &e.Quantity, &e.Unit, &e.BaseAmount,
			&e.Calories, &e.ProteinG, &e.FatG, &e.SatFatG); err != nil {
			return nil, err
		}
		if e.Date, err = models.ParseDay(day); err != nil {
			return nil, fmt.Errorf("index: bad date in entries: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanFoods(rows *sql.Rows) ([]models.Food, error) {
	defer rows.Close()
	var out []models.Food
	for rows.Next() {
		var f models.Food
		if err := rows.Scan(&f.Name, &f.BaseAmount, &f.Unit,
			&f.Calories, &f.ProteinG, &f.FatG, &f.SatFatG); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
