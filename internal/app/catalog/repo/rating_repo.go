package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/menucat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
	"github.com/light-bringer/menucat-service/internal/models/m_menu_item"
	"github.com/light-bringer/menucat-service/internal/models/m_review"
	"github.com/light-bringer/menucat-service/internal/pkg/clock"
)

type readWriter interface {
	ReadWrite(ctx context.Context, fn func(context.Context, *spanner.ReadWriteTransaction) error) error
}

// RatingRepo stores reviews and recomputes rating summaries.
type RatingRepo struct {
	txr     readWriter
	items   *MenuItemRepo
	outbox  contracts.OutboxRepository
	reviews *m_review.Model
	clock   clock.Clock
}

// NewRatingRepo creates a new RatingRepo.
func NewRatingRepo(txr readWriter, items *MenuItemRepo, outbox contracts.OutboxRepository, clk clock.Clock) *RatingRepo {
	return &RatingRepo{
		txr:     txr,
		items:   items,
		outbox:  outbox,
		reviews: m_review.NewModel(),
		clock:   clk,
	}
}

var _ contracts.RatingRepository = (*RatingRepo)(nil)

// RecordReview stores the review and rewrites the item's summary from the
// full review set in one read-write transaction. A concurrent aggregation
// for the same item conflicts and is retried by the Spanner client against
// the newer review set, so no summary is computed from a stale snapshot.
//
// A reviewer holds at most one review per item: a repeat submission replaces
// the earlier rating and comment instead of adding a data point. Reviews
// without a reviewer id are always added.
func (r *RatingRepo) RecordReview(ctx context.Context, review contracts.NewReview) (summary domain.RatingSummary, err error) {
	ctx, span := tracer.Start(ctx, "RatingRepo.RecordReview", trace.WithAttributes(
		attribute.String("menu_item.id", review.MenuItemID),
		attribute.Float64("review.rating", review.Rating),
	))
	defer func() { endSpan(span, err) }()

	err = r.txr.ReadWrite(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		row, err := txn.ReadRow(ctx, m_menu_item.TableName, spanner.Key{review.MenuItemID}, m_menu_item.Columns())
		if err != nil {
			if isRowNotFound(err) {
				return domain.NewNotFoundError("menu item", review.MenuItemID)
			}
			return err
		}
		item, err := rowToDomain(row)
		if err != nil {
			return err
		}

		stored, err := r.storedReviews(ctx, txn, review.MenuItemID)
		if err != nil {
			return err
		}

		// The new review is buffered in this transaction and invisible to the
		// read above, so mergeReview counts it explicitly.
		ratings, replaces := mergeReview(stored, review)
		s, err := domain.AggregateRatings(review.MenuItemID, ratings, review.Rating)
		if err != nil {
			return err
		}
		if err := item.ApplyRatingSummary(s, r.clock.Now()); err != nil {
			return err
		}

		itemMut, err := r.items.UpdateMut(item)
		if err != nil {
			return err
		}
		eventMuts, err := EventMuts(r.outbox, item.DomainEvents())
		if err != nil {
			return err
		}

		reviewMut := r.reviews.InsertMut(reviewData(review))
		if replaces != "" {
			reviewMut = r.reviews.ReplaceMut(review.MenuItemID, replaces, review.Rating, optionalString(review.Comment))
		}

		muts := []*spanner.Mutation{reviewMut, itemMut}
		if err := txn.BufferWrite(append(muts, eventMuts...)); err != nil {
			return err
		}
		summary = s
		return nil
	})
	if err != nil {
		return domain.RatingSummary{}, err
	}

	span.SetAttributes(
		attribute.Float64("rating.average", summary.Average),
		attribute.Int64("rating.count", summary.Count),
	)
	return summary, nil
}

type storedReview struct {
	reviewID   string
	reviewerID string
	rating     float64
}

func (r *RatingRepo) storedReviews(ctx context.Context, txn *spanner.ReadWriteTransaction, menuItemID string) ([]storedReview, error) {
	iter := txn.Read(ctx, m_review.TableName, r.reviews.KeyRange(menuItemID),
		[]string{m_review.ReviewID, m_review.ReviewerID, m_review.Rating})
	defer iter.Stop()

	var reviews []storedReview
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return reviews, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read reviews: %w", err)
		}

		var (
			reviewID   string
			reviewerID spanner.NullString
			rating     spanner.NullFloat64
		)
		if err := row.Columns(&reviewID, &reviewerID, &rating); err != nil {
			return nil, &domain.InconsistentStateError{MenuItemID: menuItemID, Reason: "unreadable review: " + err.Error()}
		}
		if !rating.Valid {
			return nil, &domain.InconsistentStateError{MenuItemID: menuItemID, Reason: "review without rating"}
		}
		reviews = append(reviews, storedReview{reviewID: reviewID, reviewerID: reviewerID.StringVal, rating: rating.Float64})
	}
}

// mergeReview returns the ratings the summary is computed from once review
// is applied, and the id of the reviewer's earlier review it replaces ("" when
// review is a new row).
func mergeReview(stored []storedReview, review contracts.NewReview) ([]float64, string) {
	ratings := make([]float64, 0, len(stored)+1)
	var replaces string
	for _, s := range stored {
		if replaces == "" && review.ReviewerID != "" && s.reviewerID == review.ReviewerID {
			replaces = s.reviewID
			continue
		}
		ratings = append(ratings, s.rating)
	}
	return append(ratings, review.Rating), replaces
}

func reviewData(review contracts.NewReview) *m_review.Data {
	data := &m_review.Data{
		MenuItemID: review.MenuItemID,
		ReviewID:   review.ReviewID,
		Rating:     review.Rating,
	}
	data.ReviewerID = optionalString(review.ReviewerID)
	data.Comment = optionalString(review.Comment)
	return data
}

func optionalString(s string) spanner.NullString {
	return spanner.NullString{StringVal: s, Valid: s != ""}
}
