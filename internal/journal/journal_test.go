package journal

import (
	"errors"
	"testing"
	"time"

	"github.com/nvoss/macrolog/internal/apperr"
	"github.com/nvoss/macrolog/internal/models"
	"github.com/nvoss/macrolog/internal/storage"
)

func newTestJournal(t *testing.T) (*Journal, *storage.EntryStore) {
	t.Helper()
	fs, err := storage.NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	store := storage.NewEntryStore(fs)
	j, err := New(store)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return j, store
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func entry(d time.Time, food string, cal float64) models.LogEntry {
	return models.LogEntry{
		Date: d, Food: food, Quantity: 100, Unit: models.UnitGram, BaseAmount: 100,
		Nutrients: models.Nutrients{Calories: cal, ProteinG: 1, FatG: 1, SatFatG: 0.5},
	}
}

func TestAppendPersists(t *testing.T) {
	j, store := newTestJournal(t)

	if err := j.Append(entry(day(2026, 8, 29), "Oats", 189.5)); err != nil {
		t.Fatalf("Append: %v", err)
	}

	again, err := New(store)
	if err != nil {
		t.Fatalf("New again: %v", err)
	}
	got := again.All()
	if len(got) != 1 || got[0].Food != "Oats" {
		t.Fatalf("reloaded journal = %+v", got)
	}
}

func TestAppendNormalizesDate(t *testing.T) {
	j, _ := newTestJournal(t)

	noon := time.Date(2026, 8, 29, 12, 34, 56, 0, time.UTC)
	if err := j.Append(entry(noon, "Oats", 189.5)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	got := j.All()
	if !got[0].Date.Equal(day(2026, 8, 29)) {
		t.Fatalf("date not normalized: %v", got[0].Date)
	}
}

func TestAppendRejectsBadEntries(t *testing.T) {
	j, _ := newTestJournal(t)

	e := entry(day(2026, 8, 29), "Oats", 189.5)
	e.Quantity = 0
	if err := j.Append(e); !errors.Is(err, apperr.ErrInvalidQuantity) {
		t.Fatalf("zero quantity: got %v, want ErrInvalidQuantity", err)
	}

	e = entry(time.Time{}, "Oats", 189.5)
	if err := j.Append(e); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("zero date: got %v, want ErrValidation", err)
	}
	if len(j.All()) != 0 {
		t.Fatal("rejected entries were appended")
	}
}

func TestEntriesOnPreservesInsertionOrder(t *testing.T) {
	j, _ := newTestJournal(t)
	d := day(2026, 8, 29)

	for _, food := range []string{"A", "B", "C"} {
		if err := j.Append(entry(d, food, 100)); err != nil {
			t.Fatalf("Append %s: %v", food, err)
		}
	}
	if err := j.Append(entry(day(2026, 8, 28), "other day", 100)); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got := j.EntriesOn(d)
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3", len(got))
	}
	for i, want := range []string{"A", "B", "C"} {
		if got[i].Food != want {
			t.Errorf("entry %d is %q, want %q", i, got[i].Food, want)
		}
	}
}

func TestEntriesInRangeInclusive(t *testing.T) {
	j, _ := newTestJournal(t)

	for _, d := range []time.Time{day(2026, 8, 25), day(2026, 8, 26), day(2026, 8, 27), day(2026, 8, 28)} {
		if err := j.Append(entry(d, "x", 100)); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got := j.EntriesInRange(day(2026, 8, 26), day(2026, 8, 27))
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if !got[0].Date.Equal(day(2026, 8, 26)) || !got[1].Date.Equal(day(2026, 8, 27)) {
		t.Fatalf("range endpoints not inclusive: %v, %v", got[0].Date, got[1].Date)
	}
}

func TestRecent(t *testing.T) {
	j, _ := newTestJournal(t)

	if err := j.Append(entry(day(2026, 8, 27), "old", 100)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := j.Append(entry(day(2026, 8, 29), "new first", 100)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := j.Append(entry(day(2026, 8, 29), "new second", 100)); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got := j.Recent(2)
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	// Newest day first; same-day entries keep insertion order.
	if got[0].Food != "new first" || got[1].Food != "new second" {
		t.Fatalf("recent order wrong: %q, %q", got[0].Food, got[1].Food)
	}

	if got := j.Recent(0); len(got) != 3 {
		t.Fatalf("Recent(0) returned %d entries, want all 3", len(got))
	}
}

func TestReplaceAllRejectKeepsPriorLog(t *testing.T) {
	j, _ := newTestJournal(t)

	if err := j.Append(entry(day(2026, 8, 29), "keep", 100)); err != nil {
		t.Fatalf("Append: %v", err)
	}

	bad := entry(day(2026, 8, 29), "bad", 100)
	bad.Quantity = -1
	err := j.ReplaceAll([]models.LogEntry{entry(day(2026, 8, 28), "new", 100), bad})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}

	got := j.All()
	if len(got) != 1 || got[0].Food != "keep" {
		t.Fatalf("prior log not preserved: %+v", got)
	}
}

func TestReplaceAllSwapsLog(t *testing.T) {
	j, store := newTestJournal(t)

	if err := j.Append(entry(day(2026, 8, 29), "old", 100)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := j.ReplaceAll([]models.LogEntry{entry(day(2026, 8, 28), "new", 100)}); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	again, err := New(store)
	if err != nil {
		t.Fatalf("New again: %v", err)
	}
	got := again.All()
	if len(got) != 1 || got[0].Food != "new" {
		t.Fatalf("replaced log not persisted: %+v", got)
	}
}
