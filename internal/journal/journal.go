// Package journal implements the append-only consumption log.
package journal

import (
	"fmt"
	"sort"
	"time"

	"github.com/nvoss/macrolog/internal/apperr"
	"github.com/nvoss/macrolog/internal/models"
	"github.com/nvoss/macrolog/internal/storage"
)

// Journal holds log entries in insertion order. Entries are never mutated
// in place; the only mutations are Append and the bulk ReplaceAll import.
type Journal struct {
	store   *storage.EntryStore
	entries []models.LogEntry
}

// New loads (or seeds) the journal from the store.
func New(store *storage.EntryStore) (*Journal, error) {
	j := &Journal{store: store}
	if err := j.Reload(); err != nil {
		return nil, fmt.Errorf("journal: load: %w", err)
	}
	return j, nil
}

// Reload re-reads the backing store, replacing the in-memory state.
func (j *Journal) Reload() error {
	entries, err := j.store.Load()
	if err != nil {
		return err
	}
	j.entries = entries
	return nil
}

// Append adds one entry and flushes the log. The entry's date is normalized
// to its calendar day; the nutrient snapshot is stored as given and never
// recomputed.
func (j *Journal) Append(e models.LogEntry) error {
	if e.Date.IsZero() {
		return fmt.Errorf("%w: entry date is required", apperr.ErrValidation)
	}
	if !(e.Quantity > 0) {
		return fmt.Errorf("%w: %v", apperr.ErrInvalidQuantity, e.Quantity)
	}
	e.Date = models.Day(e.Date)
	next := append(append([]models.LogEntry(nil), j.entries...), e)
	if err := j.store.Save(next); err != nil {
		return err
	}
	j.entries = next
	return nil
}

// EntriesOn returns the entries whose date equals day, preserving relative
// insertion order.
func (j *Journal) EntriesOn(day time.Time) []models.LogEntry {
	return j.EntriesInRange(day, day)
}

// EntriesInRange returns the entries with date in [start, end], inclusive on
// both ends, preserving relative insertion order.
func (j *Journal) EntriesInRange(start, end time.Time) []models.LogEntry {
	start, end = models.Day(start), models.Day(end)
	var out []models.LogEntry
	for _, e := range j.entries {
		if !e.Date.Before(start) && !e.Date.After(end) {
			out = append(out, e)
		}
	}
	return out
}

// All returns every entry in insertion order.
func (j *Journal) All() []models.LogEntry {
	return append([]models.LogEntry(nil), j.entries...)
}

// Recent returns up to n entries sorted by date descending. Entries on the
// same day keep their relative insertion order.
func (j *Journal) Recent(n int) []models.LogEntry {
	if n <= 0 {
		n = 20
	}
	out := append([]models.LogEntry(nil), j.entries...)
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Date.After(out[b].Date)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// ReplaceAll atomically swaps in a new entry set (bulk import). Every entry
// must carry a date and a non-negative quantity, else the whole import is
// rejected and the prior log kept.
func (j *Journal) ReplaceAll(entries []models.LogEntry) error {
	normalized := make([]models.LogEntry, len(entries))
	for i, e := range entries {
		if e.Date.IsZero() {
			return fmt.Errorf("%w: entry %d: date is required", apperr.ErrValidation, i+1)
		}
		if e.Quantity < 0 {
			return fmt.Errorf("%w: entry %d: negative quantity", apperr.ErrValidation, i+1)
		}
		e.Date = models.Day(e.Date)
		normalized[i] = e
	}
	if err := j.store.Save(normalized); err != nil {
		return err
	}
	j.entries = normalized
	return nil
}

// Export returns the exact on-disk CSV serialization of the log.
func (j *Journal) Export() []byte {
	return storage.EncodeEntries(j.entries)
}
