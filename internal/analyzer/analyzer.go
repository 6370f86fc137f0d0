// Package analyzer holds the pure price analysis step of the pipeline.
package analyzer

import (
	"github.com/shopspring/decimal"

	"stromvarsel/internal/model"
)

// FilterExceeding returns the points whose price is strictly above the
// ceiling, in their original order. A price equal to the ceiling does not
// qualify. Empty input yields empty output, and the result is stable under
// re-filtering with the same ceiling.
func FilterExceeding(points []model.PricePoint, ceiling decimal.Decimal) []model.PricePoint {
	var matches []model.PricePoint
	for _, p := range points {
		if p.Price.GreaterThan(ceiling) {
			matches = append(matches, p)
		}
	}
	return matches
}
