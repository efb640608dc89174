// Package models defines the domain types for Macrolog.
package models

import (
	"fmt"
	"math"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Units a food's base amount can be expressed in. Scaling is unit-agnostic;
// the unit is carried only for display and is never converted.
const (
	UnitGram  = "g"
	UnitMl    = "ml"
	UnitPiece = "unit"
)

// Nutrients is the per-serving (or per-entry) macro vector.
type Nutrients struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	FatG     float64 `json:"fat_g"`
	SatFatG  float64 `json:"sat_fat_g"`
}

// Add returns the elementwise sum of two nutrient vectors.
func (n Nutrients) Add(o Nutrients) Nutrients {
	return Nutrients{
		Calories: n.Calories + o.Calories,
		ProteinG: n.ProteinG + o.ProteinG,
		FatG:     n.FatG + o.FatG,
		SatFatG:  n.SatFatG + o.SatFatG,
	}
}

// Scale returns the vector multiplied by factor.
func (n Nutrients) Scale(factor float64) Nutrients {
	return Nutrients{
		Calories: n.Calories * factor,
		ProteinG: n.ProteinG * factor,
		FatG:     n.FatG * factor,
		SatFatG:  n.SatFatG * factor,
	}
}

// Food is a catalog entry. Nutrient values correspond to BaseAmount of Unit
// (e.g. per 100 g). Name is the natural key.
type Food struct {
	Name       string  `json:"name"`
	BaseAmount float64 `json:"base_amount"`
	Unit       string  `json:"unit"`
	Nutrients
}

// Validate checks the structural invariants of a food definition.
func (f Food) Validate() error {
	if err := validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required),
		validation.Field(&f.Unit, validation.Required, validation.In(UnitGram, UnitMl, UnitPiece)),
	); err != nil {
		return err
	}
	if !(f.BaseAmount > 0) || math.IsInf(f.BaseAmount, 0) {
		return fmt.Errorf("food %q: base_amount must be a positive number", f.Name)
	}
	for _, v := range []float64{f.Calories, f.ProteinG, f.FatG, f.SatFatG} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("food %q: nutrient values must be non-negative numbers", f.Name)
		}
	}
	return nil
}

// LogEntry is one consumed quantity of a food on a calendar day. The nutrient
// fields are computed at logging time and stored as an immutable snapshot:
// later edits to the catalog never change past entries.
type LogEntry struct {
	Date       time.Time `json:"date"`
	Food       string    `json:"food"`
	Quantity   float64   `json:"quantity"`
	Unit       string    `json:"unit"`
	BaseAmount float64   `json:"base_amount"`
	Nutrients
}

// Goals holds the daily targets for the tracked nutrients.
type Goals struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	SatFatG  float64 `json:"sat_fat_g"`
}

// Validate checks that all goal fields are positive finite numbers.
func (g Goals) Validate() error {
	for _, v := range []float64{g.Calories, g.ProteinG, g.SatFatG} {
		if !(v > 0) || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("goals must be positive numbers")
		}
	}
	return nil
}

// DailyTotals is the elementwise sum of all entries on one day. Purely
// derived, never stored.
type DailyTotals struct {
	Nutrients
}

// DayRollup is one row of a weekly rollup: the summed tracked nutrients for
// a single day that has at least one entry.
type DayRollup struct {
	Date     time.Time `json:"date"`
	Calories float64   `json:"calories"`
	ProteinG float64   `json:"protein_g"`
	SatFatG  float64   `json:"sat_fat_g"`
}

// GoalProgress compares a consumed total against its target.
// Clamped is Ratio bounded to [0, 1] for progress-bar display.
type GoalProgress struct {
	Consumed float64 `json:"consumed"`
	Target   float64 `json:"target"`
	Ratio    float64 `json:"ratio"`
	Clamped  float64 `json:"clamped"`
}

// DateFormat is the calendar date layout used in the log store and the API.
const DateFormat = "2006-01-02"

// Day truncates t to its calendar date in UTC. Entries are grouped and
// compared by this canonical form; time-of-day is ignored.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a calendar date in DateFormat.
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateFormat, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}
