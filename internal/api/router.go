package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nvoss/macrolog/internal/mealservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
// now is the clock used for "today" defaults (nil means time.Now).
func NewRouter(svc *mealservice.Service, authEnabled bool, token string, sseHandler http.Handler, now func() time.Time) chi.Router {
	h := NewHandler(svc, now)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Catalog.
	r.Get("/foods", h.ListFoods)
	r.Post("/foods", h.CreateFood)
	r.Get("/foods/search", h.SearchFoods)

	// Consumption log.
	r.Post("/log", h.LogMeal)
	r.Get("/log", h.ListEntries)
	r.Get("/log/recent", h.RecentEntries)

	// Summaries.
	r.Get("/summary/daily", h.DailySummary)
	r.Get("/summary/weekly", h.WeeklySummary)

	// Goals.
	r.Get("/goals", h.GetGoals)
	r.Put("/goals", h.PutGoals)

	// CSV export/import.
	r.Get("/export/foods.csv", h.ExportFoods)
	r.Get("/export/log.csv", h.ExportLog)
	r.Post("/import/foods", h.ImportFoods)
	r.Post("/import/log", h.ImportLog)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
