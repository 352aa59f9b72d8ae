package record_rating

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/light-bringer/menucat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
)

// Request is a customer review of a menu item.
type Request struct {
	MenuItemID string
	ReviewerID string
	Rating     float64
	Comment    string
}

// Interactor handles the record rating use case.
type Interactor struct {
	ratings contracts.RatingRepository
	logger  *slog.Logger
	newID   func() string
}

// NewInteractor creates a new record rating interactor.
func NewInteractor(ratings contracts.RatingRepository, logger *slog.Logger) *Interactor {
	return &Interactor{
		ratings: ratings,
		logger:  logger,
		newID:   func() string { return uuid.New().String() },
	}
}

// Execute stores the review and returns the item's recomputed summary.
//
// The summary is derived from every stored review, never incremented. If the
// reviews cannot be read or contain a malformed rating, the error is returned
// and the previously stored summary is left untouched.
func (i *Interactor) Execute(ctx context.Context, req *Request) (domain.RatingSummary, error) {
	if strings.TrimSpace(req.MenuItemID) == "" {
		return domain.RatingSummary{}, domain.NewValidationError(domain.FieldID, "is required")
	}
	if err := domain.ValidateRating(req.Rating); err != nil {
		return domain.RatingSummary{}, err
	}

	summary, err := i.ratings.RecordReview(ctx, contracts.NewReview{
		ReviewID:   i.newID(),
		MenuItemID: req.MenuItemID,
		ReviewerID: req.ReviewerID,
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
	})
	if err != nil {
		i.logger.ErrorContext(ctx, "rating aggregation failed",
			"menu_item_id", req.MenuItemID,
			"rating", req.Rating,
			"error", err,
		)
		return domain.RatingSummary{}, err
	}

	i.logger.InfoContext(ctx, "rating recorded",
		"menu_item_id", req.MenuItemID,
		"average", summary.Average,
		"count", summary.Count,
	)
	return summary, nil
}
