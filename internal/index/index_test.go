package index

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/nvoss/macrolog/internal/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func day(d int) time.Time {
	return time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC)
}

func entry(d time.Time, food string) models.LogEntry {
	return models.LogEntry{
		Date: d, Food: food, Quantity: 100, Unit: models.UnitGram, BaseAmount: 100,
		Nutrients: models.Nutrients{Calories: 100, ProteinG: 10, FatG: 5, SatFatG: 2},
	}
}

func food(name string) models.Food {
	return models.Food{Name: name, BaseAmount: 100, Unit: models.UnitGram,
		Nutrients: models.Nutrients{Calories: 100, ProteinG: 10, FatG: 5, SatFatG: 2}}
}

func TestInsertAndRecentOrdering(t *testing.T) {
	db := openTestDB(t)

	for _, e := range []models.LogEntry{
		entry(day(27), "oldest"),
		entry(day(29), "same day first"),
		entry(day(29), "same day second"),
		entry(day(28), "middle"),
	} {
		if err := db.InsertEntry(e); err != nil {
			t.Fatalf("InsertEntry: %v", err)
		}
	}

	got, err := db.RecentEntries(3)
	if err != nil {
		t.Fatalf("RecentEntries: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3", len(got))
	}
	// Date descending; within a day, most recently inserted first.
	want := []string{"same day second", "same day first", "middle"}
	for i := range want {
		if got[i].Food != want[i] {
			t.Errorf("entry %d is %q, want %q", i, got[i].Food, want[i])
		}
	}
	if !got[0].Date.Equal(day(29)) {
		t.Errorf("date round trip: %v", got[0].Date)
	}
}

func TestRecentDefaultLimit(t *testing.T) {
	db := openTestDB(t)
	for i := 0; i < 25; i++ {
		if err := db.InsertEntry(entry(day(29), "x")); err != nil {
			t.Fatalf("InsertEntry: %v", err)
		}
	}
	got, err := db.RecentEntries(0)
	if err != nil {
		t.Fatalf("RecentEntries: %v", err)
	}
	if len(got) != 20 {
		t.Fatalf("default limit returned %d entries, want 20", len(got))
	}
}

func TestReplaceAll(t *testing.T) {
	db := openTestDB(t)

	if err := db.InsertEntry(entry(day(27), "stale")); err != nil {
		t.Fatalf("InsertEntry: %v", err)
	}
	if err := db.UpsertFood(food("Stale food")); err != nil {
		t.Fatalf("UpsertFood: %v", err)
	}

	err := db.ReplaceAll(
		[]models.Food{food("Chicken breast (raw)"), food("Rolled oats (dry)")},
		[]models.LogEntry{entry(day(29), "Rolled oats (dry)")},
	)
	if err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	entries, err := db.RecentEntries(50)
	if err != nil {
		t.Fatalf("RecentEntries: %v", err)
	}
	if len(entries) != 1 || entries[0].Food != "Rolled oats (dry)" {
		t.Fatalf("entries after rebuild: %+v", entries)
	}

	foods, err := db.SearchFoods("Stale", 10)
	if err != nil {
		t.Fatalf("SearchFoods: %v", err)
	}
	if len(foods) != 0 {
		t.Fatalf("stale food survived rebuild: %+v", foods)
	}
}

func TestUpsertFoodReplaces(t *testing.T) {
	db := openTestDB(t)

	f := food("Egg")
	if err := db.UpsertFood(f); err != nil {
		t.Fatalf("UpsertFood: %v", err)
	}
	f.Calories = 80
	if err := db.UpsertFood(f); err != nil {
		t.Fatalf("UpsertFood again: %v", err)
	}

	got, err := db.SearchFoods("Egg", 10)
	if err != nil {
		t.Fatalf("SearchFoods: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d rows, want 1", len(got))
	}
	if got[0].Calories != 80 {
		t.Fatalf("upsert did not replace: %+v", got[0])
	}
}

func TestSearchFoods(t *testing.T) {
	db := openTestDB(t)

	for _, name := range []string{"Chicken breast (raw)", "Chicken thigh", "Rolled oats (dry)"} {
		if err := db.UpsertFood(food(name)); err != nil {
			t.Fatalf("UpsertFood: %v", err)
		}
	}

	got, err := db.SearchFoods("Chicken", 10)
	if err != nil {
		t.Fatalf("SearchFoods: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d matches, want 2: %+v", len(got), got)
	}

	got, err = db.SearchFoods("quinoa", 10)
	if err != nil {
		t.Fatalf("SearchFoods: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("unexpected matches: %+v", got)
	}
}
