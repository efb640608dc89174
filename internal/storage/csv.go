package storage

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/nvoss/macrolog/internal/apperr"
	"github.com/nvoss/macrolog/internal/models"
)

// CSV headers for the two tabular stores. Column order is part of the
// on-disk contract: load → save reproduces the input modulo row order and
// float formatting.
var (
	foodsHeader = []string{"name", "base_amount", "unit", "calories", "protein_g", "fat_g", "sat_fat_g"}
	logHeader   = []string{"date", "food", "quantity", "unit", "base_amount", "calories", "protein_g", "fat_g", "sat_fat_g"}
)

// EncodeFoods serializes the catalog to its CSV form.
func EncodeFoods(foods []models.Food) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(foodsHeader)
	for _, f := range foods {
		_ = w.Write([]string{
			f.Name,
			formatFloat(f.BaseAmount),
			f.Unit,
			formatFloat(f.Calories),
			formatFloat(f.ProteinG),
			formatFloat(f.FatG),
			formatFloat(f.SatFatG),
		})
	}
	w.Flush()
	return buf.Bytes()
}

// DecodeFoods parses a foods CSV. Any malformed row fails the whole decode
// with ErrValidation so that imports are replace-or-reject.
func DecodeFoods(data []byte) ([]models.Food, error) {
	rows, err := readRows(data, foodsHeader)
	if err != nil {
		return nil, err
	}
	foods := make([]models.Food, 0, len(rows))
	for i, row := range rows {
		f := models.Food{Name: row[0], Unit: row[2]}
		if f.BaseAmount, err = parseFloat(row[1]); err == nil {
			if f.Calories, err = parseFloat(row[3]); err == nil {
				if f.ProteinG, err = parseFloat(row[4]); err == nil {
					if f.FatG, err = parseFloat(row[5]); err == nil {
						f.SatFatG, err = parseFloat(row[6])
					}
				}
			}
		}
		if err != nil {
			return nil, fmt.Errorf("%w: foods row %d: %v", apperr.ErrValidation, i+1, err)
		}
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("%w: foods row %d: %v", apperr.ErrValidation, i+1, err)
		}
		foods = append(foods, f)
	}
	return foods, nil
}

// EncodeEntries serializes the consumption log to its CSV form.
func EncodeEntries(entries []models.LogEntry) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(logHeader)
	for _, e := range entries {
		_ = w.Write([]string{
			e.Date.Format(models.DateFormat),
			e.Food,
			formatFloat(e.Quantity),
			e.Unit,
			formatFloat(e.BaseAmount),
			formatFloat(e.Calories),
			formatFloat(e.ProteinG),
			formatFloat(e.FatG),
			formatFloat(e.SatFatG),
		})
	}
	w.Flush()
	return buf.Bytes()
}

// DecodeEntries parses a log CSV. Each row needs a parseable date and a
// non-negative quantity; any bad row fails the whole decode with
// ErrValidation.
func DecodeEntries(data []byte) ([]models.LogEntry, error) {
	rows, err := readRows(data, logHeader)
	if err != nil {
		return nil, err
	}
	entries := make([]models.LogEntry, 0, len(rows))
	for i, row := range rows {
		e := models.LogEntry{Food: row[1], Unit: row[3]}
		if e.Date, err = models.ParseDay(row[0]); err == nil {
			if e.Quantity, err = parseFloat(row[2]); err == nil {
				if e.BaseAmount, err = parseFloat(row[4]); err == nil {
					if e.Calories, err = parseFloat(row[5]); err == nil {
						if e.ProteinG, err = parseFloat(row[6]); err == nil {
							if e.FatG, err = parseFloat(row[7]); err == nil {
								e.SatFatG, err = parseFloat(row[8])
							}
						}
					}
				}
			}
		}
		if err != nil {
			return nil, fmt.Errorf("%w: log row %d: %v", apperr.ErrValidation, i+1, err)
		}
		if e.Quantity < 0 {
			return nil, fmt.Errorf("%w: log row %d: negative quantity", apperr.ErrValidation, i+1)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// readRows parses CSV data, verifies the header, and returns the data rows.
func readRows(data []byte, header []string) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = len(header)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: missing header row", apperr.ErrValidation)
	}
	for i, col := range header {
		if rows[0][i] != col {
			return nil, fmt.Errorf("%w: header column %d is %q, want %q", apperr.ErrValidation, i+1, rows[0][i], col)
		}
	}
	return rows[1:], nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
