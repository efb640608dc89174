// Package nutrient implements unit-scaled nutrient computation.
package nutrient

import (
	"fmt"
	"math"

	"github.com/nvoss/macrolog/internal/apperr"
	"github.com/nvoss/macrolog/internal/models"
)

// Scale returns the nutrient vector for consuming quantity of food, where
// quantity is expressed in the food's own base unit. The scaling factor is
// quantity / BaseAmount and applies identically to all unit kinds; no unit
// conversion and no rounding happen here.
//
// Callers are expected to reject non-positive quantities up front; a
// quantity <= 0 (or non-finite) still fails with ErrInvalidQuantity.
func Scale(food models.Food, quantity float64) (models.Nutrients, error) {
	if !(quantity > 0) || math.IsInf(quantity, 0) {
		return models.Nutrients{}, fmt.Errorf("%w: %v", apperr.ErrInvalidQuantity, quantity)
	}
	factor := quantity / food.BaseAmount
	return food.Nutrients.Scale(factor), nil
}
