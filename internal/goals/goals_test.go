package goals

import (
	"errors"
	"math"
	"testing"

	"github.com/nvoss/macrolog/internal/apperr"
	"github.com/nvoss/macrolog/internal/models"
	"github.com/nvoss/macrolog/internal/storage"
)

func newTestTracker(t *testing.T) (*Tracker, *storage.GoalStore) {
	t.Helper()
	fs, err := storage.NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	store := storage.NewGoalStore(fs)
	tr, err := New(store)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tr, store
}

func TestNewSeedsDefaults(t *testing.T) {
	tr, _ := newTestTracker(t)
	want := models.Goals{Calories: 1800, ProteinG: 120, SatFatG: 20}
	if got := tr.Get(); got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestSetPersists(t *testing.T) {
	tr, store := newTestTracker(t)

	want := models.Goals{Calories: 2000, ProteinG: 140, SatFatG: 15}
	if err := tr.Set(want); err != nil {
		t.Fatalf("Set: %v", err)
	}

	again, err := New(store)
	if err != nil {
		t.Fatalf("New again: %v", err)
	}
	if got := again.Get(); got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestSetRejectsInvalidAndKeepsPrevious(t *testing.T) {
	tr, _ := newTestTracker(t)
	before := tr.Get()

	for _, g := range []models.Goals{
		{Calories: 0, ProteinG: 120, SatFatG: 20},
		{Calories: 1800, ProteinG: -5, SatFatG: 20},
		{Calories: math.NaN(), ProteinG: 120, SatFatG: 20},
	} {
		if err := tr.Set(g); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("Set(%+v): got %v, want ErrValidation", g, err)
		}
	}
	if got := tr.Get(); got != before {
		t.Fatalf("rejected Set changed goals: %+v", got)
	}
}

func TestProgressRatios(t *testing.T) {
	totals := models.DailyTotals{Nutrients: models.Nutrients{Calories: 900, ProteinG: 150, SatFatG: 10}}
	g := models.Goals{Calories: 1800, ProteinG: 120, SatFatG: 20}

	rep, err := Progress(totals, g)
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if rep.Calories.Ratio != 0.5 || rep.Calories.Clamped != 0.5 {
		t.Errorf("calories = %+v", rep.Calories)
	}
	// Over-target ratio is reported raw but clamped to 1 for display.
	if rep.ProteinG.Ratio != 1.25 || rep.ProteinG.Clamped != 1 {
		t.Errorf("protein = %+v", rep.ProteinG)
	}
	if rep.SatFatG.Consumed != 10 || rep.SatFatG.Target != 20 {
		t.Errorf("sat fat = %+v", rep.SatFatG)
	}
}

func TestProgressZeroConsumption(t *testing.T) {
	rep, err := Progress(models.DailyTotals{}, models.Goals{Calories: 1800, ProteinG: 120, SatFatG: 20})
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if rep.Calories.Ratio != 0 || rep.Calories.Clamped != 0 {
		t.Fatalf("zero consumption = %+v", rep.Calories)
	}
}

func TestProgressRejectsBadGoals(t *testing.T) {
	totals := models.DailyTotals{}
	for _, g := range []models.Goals{
		{Calories: 0, ProteinG: 120, SatFatG: 20},
		{Calories: -100, ProteinG: 120, SatFatG: 20},
	} {
		if _, err := Progress(totals, g); !errors.Is(err, apperr.ErrInvalidGoal) {
			t.Errorf("Progress with %+v: got %v, want ErrInvalidGoal", g, err)
		}
	}
}
