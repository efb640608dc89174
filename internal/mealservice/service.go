// Package mealservice is the engine facade: it coordinates the catalog,
// journal, goal tracker and derived index behind a single mutex, so the
// HTTP, MCP and watcher callers never interleave mutations.
package mealservice

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nvoss/macrolog/internal/catalog"
	"github.com/nvoss/macrolog/internal/goals"
	"github.com/nvoss/macrolog/internal/index"
	"github.com/nvoss/macrolog/internal/journal"
	"github.com/nvoss/macrolog/internal/models"
	"github.com/nvoss/macrolog/internal/nutrient"
	"github.com/nvoss/macrolog/internal/report"
	"github.com/nvoss/macrolog/internal/storage"
)

// Store event kinds passed to the notify callback.
const (
	EventCatalog = "catalog"
	EventLog     = "log"
	EventGoals   = "goals"
)

// DailySummary is the response payload for a per-day summary.
type DailySummary struct {
	Date     string             `json:"date"`
	Totals   models.DailyTotals `json:"totals"`
	Goals    models.Goals       `json:"goals"`
	Progress goals.Report       `json:"progress"`
	Entries  []models.LogEntry  `json:"entries"`
}

// WeeklyReport is the response payload for a 7-day rollup.
type WeeklyReport struct {
	Start string             `json:"start"`
	End   string             `json:"end"`
	Days  []models.DayRollup `json:"days"`
}

// Service exposes every engine operation. All methods are safe for
// concurrent use; mutations are serialized by one writer lock.
type Service struct {
	mu      sync.Mutex
	catalog *catalog.Catalog
	journal *journal.Journal
	tracker *goals.Tracker
	db      index.EntryIndex
	notify  func(kind string)
}

// New creates a service over loaded repositories. notify, if non-nil, is
// called after every successful engine mutation with the store kind.
func New(c *catalog.Catalog, j *journal.Journal, t *goals.Tracker, db index.EntryIndex, notify func(kind string)) *Service {
	if notify == nil {
		notify = func(string) {}
	}
	return &Service{catalog: c, journal: j, tracker: t, db: db, notify: notify}
}

// RebuildIndex repopulates the derived index from the repositories.
func (s *Service) RebuildIndex(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rebuildIndexLocked()
}

func (s *Service) rebuildIndexLocked() error {
	return s.db.ReplaceAll(s.catalog.List(), s.journal.All())
}

// Foods returns all food definitions in insertion order.
func (s *Service) Foods(_ context.Context) []models.Food {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.List()
}

// GetFood resolves one food by name.
func (s *Service) GetFood(_ context.Context, name string) (models.Food, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Lookup(name)
}

// AddFood adds a food definition to the catalog and the index.
func (s *Service) AddFood(_ context.Context, f models.Food) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.catalog.Add(f); err != nil {
		return err
	}
	if err := s.db.UpsertFood(f); err != nil {
		return err
	}
	s.notify(EventCatalog)
	return nil
}

// SearchFoods searches food names via the index.
func (s *Service) SearchFoods(_ context.Context, query string, limit int) ([]models.Food, error) {
	return s.db.SearchFoods(query, limit)
}

// ImportFoods replaces the whole catalog from an uploaded CSV. The replace
// is atomic: a single bad row rejects the import and keeps prior state.
func (s *Service) ImportFoods(_ context.Context, data []byte) (int, error) {
	foods, err := storage.DecodeFoods(data)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.catalog.ReplaceAll(foods); err != nil {
		return 0, err
	}
	if err := s.rebuildIndexLocked(); err != nil {
		return 0, err
	}
	s.notify(EventCatalog)
	return len(foods), nil
}

// ExportFoods returns the catalog in its exact on-disk CSV form.
func (s *Service) ExportFoods(_ context.Context) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Export()
}

// LogMeal scales the food's nutrients to quantity, appends a snapshot entry
// dated day, and indexes it. The snapshot keeps the entry displayable even
// if the catalog definition is later edited or removed.
func (s *Service) LogMeal(_ context.Context, day time.Time, foodName string, quantity float64) (models.LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	food, err := s.catalog.Lookup(foodName)
	if err != nil {
		return models.LogEntry{}, err
	}
	scaled, err := nutrient.Scale(food, quantity)
	if err != nil {
		return models.LogEntry{}, err
	}
	entry := models.LogEntry{
		Date:       models.Day(day),
		Food:       food.Name,
		Quantity:   quantity,
		Unit:       food.Unit,
		BaseAmount: food.BaseAmount,
		Nutrients:  scaled,
	}
	if err := s.journal.Append(entry); err != nil {
		return models.LogEntry{}, err
	}
	if err := s.db.InsertEntry(entry); err != nil {
		return models.LogEntry{}, err
	}
	s.notify(EventLog)
	return entry, nil
}

// EntriesOn returns the entries logged on day, in insertion order.
func (s *Service) EntriesOn(_ context.Context, day time.Time) []models.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.journal.EntriesOn(day)
}

// EntriesInRange returns the entries with date in [start, end] inclusive.
func (s *Service) EntriesInRange(_ context.Context, start, end time.Time) []models.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.journal.EntriesInRange(start, end)
}

// RecentEntries returns the latest entries, date descending, via the index.
func (s *Service) RecentEntries(_ context.Context, limit int) ([]models.LogEntry, error) {
	return s.db.RecentEntries(limit)
}

// ImportLog replaces the whole log from an uploaded CSV (atomic).
func (s *Service) ImportLog(_ context.Context, data []byte) (int, error) {
	entries, err := storage.DecodeEntries(data)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.journal.ReplaceAll(entries); err != nil {
		return 0, err
	}
	if err := s.rebuildIndexLocked(); err != nil {
		return 0, err
	}
	s.notify(EventLog)
	return len(entries), nil
}

// ExportLog returns the log in its exact on-disk CSV form.
func (s *Service) ExportLog(_ context.Context) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.journal.Export()
}

// DailySummary computes totals and goal progress for one day. A day with no
// entries yields all-zero totals, not an error.
func (s *Service) DailySummary(_ context.Context, day time.Time) (*DailySummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.journal.EntriesOn(day)
	totals := report.Daily(entries)
	g := s.tracker.Get()
	prog, err := goals.Progress(totals, g)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.LogEntry{}
	}
	return &DailySummary{
		Date:     models.Day(day).Format(models.DateFormat),
		Totals:   totals,
		Goals:    g,
		Progress: prog,
		Entries:  entries,
	}, nil
}

// WeeklyReport computes the 7-day rollup ending at end: one row per day
// that has entries, ascending by date.
func (s *Service) WeeklyReport(_ context.Context, end time.Time) *WeeklyReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := report.WindowStart(end)
	entries := s.journal.EntriesInRange(start, end)
	days := report.Weekly(entries, end)
	if days == nil {
		days = []models.DayRollup{}
	}
	return &WeeklyReport{
		Start: start.Format(models.DateFormat),
		End:   models.Day(end).Format(models.DateFormat),
		Days:  days,
	}
}

// Goals returns the current goal targets.
func (s *Service) Goals(_ context.Context) models.Goals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Get()
}

// SetGoals validates and persists new goal targets.
func (s *Service) SetGoals(_ context.Context, g models.Goals) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.tracker.Set(g); err != nil {
		return err
	}
	s.notify(EventGoals)
	return nil
}

// ReloadStore re-reads one store file after an external edit and brings the
// index back in sync. A file that no longer parses is reported as an error
// and the prior in-memory state is kept.
func (s *Service) ReloadStore(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch name {
	case storage.FoodsFile:
		if err := s.catalog.Reload(); err != nil {
			return err
		}
	case storage.LogFile:
		if err := s.journal.Reload(); err != nil {
			return err
		}
	case storage.GoalsFile:
		return s.tracker.Reload()
	default:
		return fmt.Errorf("unknown store file: %s", name)
	}
	return s.rebuildIndexLocked()
}

// EventKind maps a store file name to its notify/SSE event kind.
func EventKind(name string) string {
	switch name {
	case storage.FoodsFile:
		return EventCatalog
	case storage.LogFile:
		return EventLog
	case storage.GoalsFile:
		return EventGoals
	default:
		return ""
	}
}
