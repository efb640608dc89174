package api

import (
	"github.com/nvoss/macrolog/internal/models"
)

// LogMealRequest is the request body for logging a consumed quantity.
type LogMealRequest struct {
	Date     string  `json:"date" example:"2024-01-01"`
	Food     string  `json:"food" example:"Rolled oats (dry)" validate:"required"`
	Quantity float64 `json:"quantity" example:"50" validate:"required"`
}

// FoodListResponse wraps catalog listings.
type FoodListResponse struct {
	Foods []models.Food `json:"foods" validate:"required"`
	Total int           `json:"total" example:"2" validate:"required"`
}

// EntryListResponse wraps log entry listings.
type EntryListResponse struct {
	Entries []models.LogEntry `json:"entries" validate:"required"`
	Total   int               `json:"total" example:"5" validate:"required"`
}

// ImportResponse is returned after a successful CSV import.
type ImportResponse struct {
	Rows int `json:"rows" example:"12" validate:"required"`
}
