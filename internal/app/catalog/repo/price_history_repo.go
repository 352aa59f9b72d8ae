package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/menucat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
	"github.com/light-bringer/menucat-service/internal/models/m_price_history"
	"github.com/light-bringer/menucat-service/internal/pkg/query"
)

// PriceHistoryRepo implements PriceHistoryRepository for Spanner.
type PriceHistoryRepo struct {
	client *spanner.Client
	model  *m_price_history.Model
}

// NewPriceHistoryRepo creates a new PriceHistoryRepo.
func NewPriceHistoryRepo(client *spanner.Client) *PriceHistoryRepo {
	return &PriceHistoryRepo{
		client: client,
		model:  m_price_history.NewModel(),
	}
}

var _ contracts.PriceHistoryRepository = (*PriceHistoryRepo)(nil)

// InsertMut creates a mutation recording a price change.
func (r *PriceHistoryRepo) InsertMut(change contracts.PriceChange) *spanner.Mutation {
	data := &m_price_history.Data{
		HistoryID:  change.HistoryID,
		MenuItemID: change.MenuItemID,
	}
	data.NewPrice.Set(change.NewPrice.Rat())

	if change.OldPrice != nil {
		data.OldPrice = spanner.NullNumeric{Numeric: *change.OldPrice.Rat(), Valid: true}
	}
	if change.ChangedBy != "" {
		data.ChangedBy = spanner.NullString{StringVal: change.ChangedBy, Valid: true}
	}
	if change.ChangedReason != "" {
		data.ChangedReason = spanner.NullString{StringVal: change.ChangedReason, Valid: true}
	}

	return r.model.InsertMut(data)
}

// ListByMenuItem returns a menu item's price changes, most recent first.
func (r *PriceHistoryRepo) ListByMenuItem(ctx context.Context, menuItemID string, limit int64) ([]contracts.PriceChange, error) {
	stmt := query.From(m_price_history.TableName).
		Select(r.model.ReadColumns()...).
		Where(query.Eq(m_price_history.MenuItemID, menuItemID)).
		OrderBy(m_price_history.ChangedAt, query.Desc).
		ThenBy(m_price_history.HistoryID, query.Asc).
		Limit(limit).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var changes []contracts.PriceChange
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, ClassifyError("list price history", err)
		}

		var data m_price_history.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse price history: %w", err)
		}

		change := contracts.PriceChange{
			HistoryID:     data.HistoryID,
			MenuItemID:    data.MenuItemID,
			NewPrice:      domain.NewMoneyFromRat(&data.NewPrice),
			ChangedBy:     data.ChangedBy.StringVal,
			ChangedReason: data.ChangedReason.StringVal,
			ChangedAt:     data.ChangedAt,
		}
		if data.OldPrice.Valid {
			change.OldPrice = domain.NewMoneyFromRat(&data.OldPrice.Numeric)
		}
		changes = append(changes, change)
	}

	return changes, nil
}
