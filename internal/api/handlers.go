package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/nvoss/macrolog/internal/apperr"
	"github.com/nvoss/macrolog/internal/mealservice"
	"github.com/nvoss/macrolog/internal/models"
)

// Handler holds API route handlers.
type Handler struct {
	svc *mealservice.Service
	now func() time.Time
}

// NewHandler creates a new Handler. The clock is injectable for tests.
func NewHandler(svc *mealservice.Service, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{svc: svc, now: now}
}

// writeEngineError maps engine sentinel errors to HTTP statuses.
func writeEngineError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrDuplicateName):
		writeJSON(w, http.StatusConflict, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrValidation),
		errors.Is(err, apperr.ErrInvalidQuantity),
		errors.Is(err, apperr.ErrInvalidGoal):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	default:
		slog.Error(op+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// dateParam parses a YYYY-MM-DD query parameter, defaulting to today when
// absent. The bool result reports whether the value parsed.
func (h *Handler) dateParam(w http.ResponseWriter, r *http.Request, key string) (time.Time, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return models.Day(h.now()), true
	}
	day, err := models.ParseDay(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid "+key+": want YYYY-MM-DD"))
		return time.Time{}, false
	}
	return day, true
}

// ListFoods handles GET /foods.
//
//	@Summary		List the food catalog
//	@Tags			foods
//	@Produce		json
//	@Success		200	{object}	FoodListResponse
//	@Security		BearerAuth
//	@Router			/foods [get]
func (h *Handler) ListFoods(w http.ResponseWriter, r *http.Request) {
	foods := h.svc.Foods(r.Context())
	writeJSON(w, http.StatusOK, FoodListResponse{Foods: foods, Total: len(foods)})
}

// CreateFood handles POST /foods.
//
//	@Summary		Add a food definition
//	@Tags			foods
//	@Accept			json
//	@Produce		json
//	@Param			body	body		models.Food	true	"Food to add"
//	@Success		201		{object}	models.Food
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/foods [post]
func (h *Handler) CreateFood(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var food models.Food
	if err := json.NewDecoder(r.Body).Decode(&food); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.svc.AddFood(r.Context(), food); err != nil {
		writeEngineError(w, err, "create food")
		return
	}
	writeJSON(w, http.StatusCreated, food)
}

// SearchFoods handles GET /foods/search.
//
//	@Summary		Search food names
//	@Tags			foods
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	FoodListResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/foods/search [get]
func (h *Handler) SearchFoods(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	foods, err := h.svc.SearchFoods(r.Context(), q, limit)
	if err != nil {
		slog.Error("search foods failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if foods == nil {
		foods = []models.Food{}
	}
	writeJSON(w, http.StatusOK, FoodListResponse{Foods: foods, Total: len(foods)})
}

// LogMeal handles POST /log.
//
//	@Summary		Log a consumed quantity of a food
//	@Tags			log
//	@Accept			json
//	@Produce		json
//	@Param			body	body		LogMealRequest	true	"Meal to log"
//	@Success		201		{object}	models.LogEntry
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/log [post]
func (h *Handler) LogMeal(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req LogMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Food == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("food is required"))
		return
	}
	day := models.Day(h.now())
	if req.Date != "" {
		var err error
		if day, err = models.ParseDay(req.Date); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid date: want YYYY-MM-DD"))
			return
		}
	}
	entry, err := h.svc.LogMeal(r.Context(), day, req.Food, req.Quantity)
	if err != nil {
		writeEngineError(w, err, "log meal")
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// ListEntries handles GET /log with either ?date= or ?start=&end=.
//
//	@Summary		List log entries for a day or an inclusive date range
//	@Tags			log
//	@Produce		json
//	@Param			date	query		string	false	"Single day (YYYY-MM-DD)"
//	@Param			start	query		string	false	"Range start (YYYY-MM-DD)"
//	@Param			end		query		string	false	"Range end (YYYY-MM-DD)"
//	@Success		200		{object}	EntryListResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/log [get]
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var entries []models.LogEntry

	switch {
	case q.Get("start") != "" || q.Get("end") != "":
		start, err := models.ParseDay(q.Get("start"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid start: want YYYY-MM-DD"))
			return
		}
		end, err := models.ParseDay(q.Get("end"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid end: want YYYY-MM-DD"))
			return
		}
		entries = h.svc.EntriesInRange(r.Context(), start, end)
	default:
		day, ok := h.dateParam(w, r, "date")
		if !ok {
			return
		}
		entries = h.svc.EntriesOn(r.Context(), day)
	}

	if entries == nil {
		entries = []models.LogEntry{}
	}
	writeJSON(w, http.StatusOK, EntryListResponse{Entries: entries, Total: len(entries)})
}

// RecentEntries handles GET /log/recent.
//
//	@Summary		List the most recent log entries, newest day first
//	@Tags			log
//	@Produce		json
//	@Param			limit	query		int	false	"Max entries (default 20)"
//	@Success		200		{object}	EntryListResponse
//	@Security		BearerAuth
//	@Router			/log/recent [get]
func (h *Handler) RecentEntries(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.svc.RecentEntries(r.Context(), limit)
	if err != nil {
		slog.Error("recent entries failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if entries == nil {
		entries = []models.LogEntry{}
	}
	writeJSON(w, http.StatusOK, EntryListResponse{Entries: entries, Total: len(entries)})
}

// DailySummary handles GET /summary/daily.
//
//	@Summary		Daily totals and goal progress
//	@Tags			summary
//	@Produce		json
//	@Param			date	query		string	false	"Day (YYYY-MM-DD, default today)"
//	@Success		200		{object}	mealservice.DailySummary
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/summary/daily [get]
func (h *Handler) DailySummary(w http.ResponseWriter, r *http.Request) {
	day, ok := h.dateParam(w, r, "date")
	if !ok {
		return
	}
	summary, err := h.svc.DailySummary(r.Context(), day)
	if err != nil {
		writeEngineError(w, err, "daily summary")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// WeeklySummary handles GET /summary/weekly.
//
//	@Summary		7-day rollup ending at a reference day
//	@Tags			summary
//	@Produce		json
//	@Param			end	query		string	false	"Last day of the window (YYYY-MM-DD, default today)"
//	@Success		200	{object}	mealservice.WeeklyReport
//	@Failure		400	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/summary/weekly [get]
func (h *Handler) WeeklySummary(w http.ResponseWriter, r *http.Request) {
	end, ok := h.dateParam(w, r, "end")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.WeeklyReport(r.Context(), end))
}

// GetGoals handles GET /goals.
//
//	@Summary		Current goal targets
//	@Tags			goals
//	@Produce		json
//	@Success		200	{object}	models.Goals
//	@Security		BearerAuth
//	@Router			/goals [get]
func (h *Handler) GetGoals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Goals(r.Context()))
}

// PutGoals handles PUT /goals.
//
//	@Summary		Replace the goal targets
//	@Tags			goals
//	@Accept			json
//	@Produce		json
//	@Param			body	body		models.Goals	true	"New targets (all positive)"
//	@Success		200		{object}	models.Goals
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/goals [put]
func (h *Handler) PutGoals(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var g models.Goals
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.svc.SetGoals(r.Context(), g); err != nil {
		writeEngineError(w, err, "set goals")
		return
	}
	writeJSON(w, http.StatusOK, g)
}
