package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

const (
	MinRating = 1
	MaxRating = 5
)

// RatingSummary is the cached {average, count} derived from the reviews table.
// The reviews are the source of truth; this is recomputed, never incremented.
type RatingSummary struct {
	Average float64
	Count   int64
}

// Validate checks the summary stays in range.
func (s RatingSummary) Validate() error {
	if math.IsNaN(s.Average) || s.Average < 0 || s.Average > MaxRating {
		return NewValidationError(FieldRatingAverage, "must be between 0 and 5")
	}
	if s.Count < 0 {
		return NewValidationError(FieldRatingCount, "must be non-negative")
	}
	return nil
}

// ValidateRating checks a submitted rating value.
func ValidateRating(value float64) error {
	if math.IsNaN(value) || value < MinRating || value > MaxRating {
		return NewValidationError(FieldRating, fmt.Sprintf("must be between %d and %d", MinRating, MaxRating))
	}
	return nil
}

// AggregateRatings recomputes the summary from reviews, the ratings the
// caller can see for an item. The Spanner repository reads inside the
// transaction that writes the incoming review, so it passes a set that
// already includes incoming. The empty-set fallback, where incoming is the
// sole data point, serves callers aggregating committed reviews in which the
// triggering review may not be visible yet.
//
// The average is rounded to one decimal place.
func AggregateRatings(menuItemID string, reviews []float64, incoming float64) (RatingSummary, error) {
	if err := ValidateRating(incoming); err != nil {
		return RatingSummary{}, err
	}

	if len(reviews) == 0 {
		return RatingSummary{Average: roundToTenth(decimal.NewFromFloat(incoming)), Count: 1}, nil
	}

	sum := decimal.Zero
	for i, r := range reviews {
		if math.IsNaN(r) || math.IsInf(r, 0) || r < MinRating || r > MaxRating {
			return RatingSummary{}, &InconsistentStateError{
				MenuItemID: menuItemID,
				Reason:     fmt.Sprintf("review %d has out-of-range rating %v", i, r),
			}
		}
		sum = sum.Add(decimal.NewFromFloat(r))
	}

	count := int64(len(reviews))
	mean := sum.DivRound(decimal.NewFromInt(count), 16)
	return RatingSummary{Average: roundToTenth(mean), Count: count}, nil
}

func roundToTenth(d decimal.Decimal) float64 {
	return d.Round(1).InexactFloat64()
}
