package report

import (
	"math"
	"testing"
	"time"

	"github.com/nvoss/macrolog/internal/models"
)

func day(d int) time.Time {
	return time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC)
}

func entry(d time.Time, cal, prot, fat, sat float64) models.LogEntry {
	return models.LogEntry{
		Date: d, Food: "x", Quantity: 100, Unit: models.UnitGram, BaseAmount: 100,
		Nutrients: models.Nutrients{Calories: cal, ProteinG: prot, FatG: fat, SatFatG: sat},
	}
}

func TestDailyEmptyIsZero(t *testing.T) {
	if got := Daily(nil); got != (models.DailyTotals{}) {
		t.Fatalf("empty day totals = %+v, want zero", got)
	}
}

func TestDailySums(t *testing.T) {
	entries := []models.LogEntry{
		entry(day(29), 189.5, 6.5, 3.5, 0.6),
		entry(day(29), 165, 31, 3.6, 1),
	}
	got := Daily(entries)
	want := models.Nutrients{Calories: 354.5, ProteinG: 37.5, FatG: 7.1, SatFatG: 1.6}
	if !nearly(got.Nutrients, want) {
		t.Fatalf("got %+v, want %+v", got.Nutrients, want)
	}
}

func TestDailySplitAndSum(t *testing.T) {
	entries := []models.LogEntry{
		entry(day(29), 100, 10, 5, 2),
		entry(day(29), 200, 20, 8, 3),
		entry(day(29), 50, 5, 1, 0.5),
	}
	whole := Daily(entries)
	split := Daily(entries[:1])
	split.Nutrients = split.Nutrients.Add(Daily(entries[1:]).Nutrients)
	if !nearly(whole.Nutrients, split.Nutrients) {
		t.Fatalf("split sums differ: %+v vs %+v", whole.Nutrients, split.Nutrients)
	}
}

func TestWindowStart(t *testing.T) {
	got := WindowStart(time.Date(2026, 8, 29, 18, 30, 0, 0, time.UTC))
	if want := day(23); !got.Equal(want) {
		t.Fatalf("window start = %v, want %v", got, want)
	}
}

func TestWeeklyWindowMembership(t *testing.T) {
	end := day(29)
	entries := []models.LogEntry{
		entry(day(22), 100, 1, 1, 1), // day before window, excluded
		entry(day(23), 200, 1, 1, 1), // first day of window
		entry(day(26), 300, 1, 1, 1),
		entry(day(29), 400, 1, 1, 1), // reference day itself
		entry(day(30), 500, 1, 1, 1), // future, excluded
	}

	got := Weekly(entries, end)
	if len(got) != 3 {
		t.Fatalf("got %d rollup rows, want 3: %+v", len(got), got)
	}
	wantDays := []time.Time{day(23), day(26), day(29)}
	wantCals := []float64{200, 300, 400}
	for i := range got {
		if !got[i].Date.Equal(wantDays[i]) {
			t.Errorf("row %d date = %v, want %v", i, got[i].Date, wantDays[i])
		}
		if got[i].Calories != wantCals[i] {
			t.Errorf("row %d calories = %v, want %v", i, got[i].Calories, wantCals[i])
		}
	}
}

func TestWeeklyGroupsWithinDay(t *testing.T) {
	end := day(29)
	entries := []models.LogEntry{
		entry(day(29), 100, 10, 2, 1),
		entry(day(29), 150, 5, 2, 0.5),
	}

	got := Weekly(entries, end)
	if len(got) != 1 {
		t.Fatalf("got %d rows, want 1", len(got))
	}
	if got[0].Calories != 250 || got[0].ProteinG != 15 || got[0].SatFatG != 1.5 {
		t.Fatalf("rollup = %+v", got[0])
	}
}

func TestWeeklySkipsEmptyDays(t *testing.T) {
	got := Weekly([]models.LogEntry{entry(day(25), 100, 1, 1, 1)}, day(29))
	if len(got) != 1 {
		t.Fatalf("got %d rows, want 1 (no zero-filled days)", len(got))
	}
}

func TestWeeklyEmptyLog(t *testing.T) {
	if got := Weekly(nil, day(29)); len(got) != 0 {
		t.Fatalf("empty log produced rows: %+v", got)
	}
}

func nearly(a, b models.Nutrients) bool {
	const eps = 1e-9
	return math.Abs(a.Calories-b.Calories) < eps &&
		math.Abs(a.ProteinG-b.ProteinG) < eps &&
		math.Abs(a.FatG-b.FatG) < eps &&
		math.Abs(a.SatFatG-b.SatFatG) < eps
}
