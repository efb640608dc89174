// Package report computes derived aggregates over the consumption log.
// All functions are pure: they take entry slices and return values, leaving
// persistence and presentation to their callers.
package report

import (
	"sort"
	"time"

	"github.com/nvoss/macrolog/internal/models"
)

// WindowDays is the size of the weekly rollup window, inclusive of the
// reference day.
const WindowDays = 7

// Daily sums the four nutrient fields over the given entries. An empty slice
// yields all-zero totals; a day with nothing logged is not an error.
func Daily(entries []models.LogEntry) models.DailyTotals {
	var t models.DailyTotals
	for _, e := range entries {
		t.Nutrients = t.Nutrients.Add(e.Nutrients)
	}
	return t
}

// WindowStart returns the first day of the rollup window ending at end.
func WindowStart(end time.Time) time.Time {
	return models.Day(end).AddDate(0, 0, -(WindowDays - 1))
}

// Weekly groups the given entries by calendar day over the window
// [end-6d, end] and returns one rollup row per day that actually has
// entries, ascending by date. Days with zero entries produce no row.
func Weekly(entries []models.LogEntry, end time.Time) []models.DayRollup {
	start, last := WindowStart(end), models.Day(end)

	byDay := make(map[time.Time]*models.DayRollup)
	for _, e := range entries {
		day := models.Day(e.Date)
		if day.Before(start) || day.After(last) {
			continue
		}
		r, ok := byDay[day]
		if !ok {
			r = &models.DayRollup{Date: day}
			byDay[day] = r
		}
		r.Calories += e.Calories
		r.ProteinG += e.ProteinG
		r.SatFatG += e.SatFatG
	}

	out := make([]models.DayRollup, 0, len(byDay))
	for _, r := range byDay {
		out = append(out, *r)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Date.Before(out[b].Date) })
	return out
}
