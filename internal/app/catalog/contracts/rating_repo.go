package contracts

import (
	"context"

	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
)

// NewReview is a review submitted for a menu item.
type NewReview struct {
	ReviewID   string
	MenuItemID string
	ReviewerID string
	Rating     float64
	Comment    string
}

// RatingRepository stores reviews and maintains the cached rating summary.
type RatingRepository interface {
	// RecordReview stores review and recomputes the item's summary from
	// every stored review, all in one read-write transaction. On any error
	// nothing is written and the previous summary stays in place.
	RecordReview(ctx context.Context, review NewReview) (domain.RatingSummary, error)
}
