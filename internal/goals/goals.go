// Package goals implements goal storage and goal-progress evaluation.
package goals

import (
	"fmt"
	"math"

	"github.com/nvoss/macrolog/internal/apperr"
	"github.com/nvoss/macrolog/internal/models"
	"github.com/nvoss/macrolog/internal/storage"
)

// Tracker owns the goals singleton with an explicit load-at-startup /
// save-on-edit lifecycle.
type Tracker struct {
	store   *storage.GoalStore
	current models.Goals
}

// New loads (or seeds) the goals from the store.
func New(store *storage.GoalStore) (*Tracker, error) {
	t := &Tracker{store: store}
	if err := t.Reload(); err != nil {
		return nil, fmt.Errorf("goals: load: %w", err)
	}
	return t, nil
}

// Reload re-reads the backing store.
func (t *Tracker) Reload() error {
	g, err := t.store.Load()
	if err != nil {
		return err
	}
	t.current = g
	return nil
}

// Get returns the current goals.
func (t *Tracker) Get() models.Goals {
	return t.current
}

// Set validates and replaces the goals, flushing the store. On validation
// failure the previous goals stay in effect.
func (t *Tracker) Set(g models.Goals) error {
	if err := g.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrValidation, err)
	}
	if err := t.store.Save(g); err != nil {
		return err
	}
	t.current = g
	return nil
}

// Report holds the per-nutrient progress for the tracked goals.
type Report struct {
	Calories models.GoalProgress `json:"calories"`
	ProteinG models.GoalProgress `json:"protein_g"`
	SatFatG  models.GoalProgress `json:"sat_fat_g"`
}

// Progress compares daily totals against goals. Goals are validated to be
// strictly positive at input time, so division by zero is impossible here;
// a zero or negative goal supplied by an external caller fails with
// ErrInvalidGoal instead of dividing.
func Progress(totals models.DailyTotals, g models.Goals) (Report, error) {
	if err := g.Validate(); err != nil {
		return Report{}, fmt.Errorf("%w: %v", apperr.ErrInvalidGoal, err)
	}
	return Report{
		Calories: progress(totals.Calories, g.Calories),
		ProteinG: progress(totals.ProteinG, g.ProteinG),
		SatFatG:  progress(totals.SatFatG, g.SatFatG),
	}, nil
}

func progress(consumed, target float64) models.GoalProgress {
	ratio := consumed / target
	return models.GoalProgress{
		Consumed: consumed,
		Target:   target,
		Ratio:    ratio,
		Clamped:  math.Min(1, math.Max(0, ratio)),
	}
}
