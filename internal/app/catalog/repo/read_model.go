package repo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/menucat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
	"github.com/light-bringer/menucat-service/internal/app/catalog/search"
	"github.com/light-bringer/menucat-service/internal/models/m_menu_item"
	"github.com/light-bringer/menucat-service/internal/pkg/clock"
	"github.com/light-bringer/menucat-service/internal/pkg/query"
)

// ReadModelImpl implements ReadModel for Spanner.
type ReadModelImpl struct {
	client *spanner.Client
	clock  clock.Clock
}

// NewReadModel creates a new ReadModel implementation.
func NewReadModel(client *spanner.Client, clk clock.Clock) *ReadModelImpl {
	return &ReadModelImpl{
		client: client,
		clock:  clk,
	}
}

var _ contracts.ReadModel = (*ReadModelImpl)(nil)

// GetByID retrieves a menu item DTO by ID. Unavailable items are returned too.
func (rm *ReadModelImpl) GetByID(ctx context.Context, menuItemID string) (dto *contracts.MenuItemDTO, err error) {
	ctx, span := tracer.Start(ctx, "ReadModel.GetByID", trace.WithAttributes(attribute.String("menu_item.id", menuItemID)))
	defer func() { endSpan(span, err) }()

	row, err := rm.client.Single().ReadRow(ctx, m_menu_item.TableName, spanner.Key{menuItemID}, m_menu_item.Columns())
	if err != nil {
		if isRowNotFound(err) {
			return nil, domain.NewNotFoundError("menu item", menuItemID)
		}
		return nil, ClassifyError("read menu item", err)
	}

	item, err := rowToDomain(row)
	if err != nil {
		return nil, err
	}
	return contracts.NewMenuItemDTO(item, rm.clock.Now()), nil
}

// Search runs the plan's page query and count query in one read-only
// transaction so totalMatched agrees with the page.
func (rm *ReadModelImpl) Search(ctx context.Context, plan *search.Plan) (result *contracts.SearchResult, err error) {
	ctx, span := tracer.Start(ctx, "ReadModel.Search", trace.WithAttributes(
		attribute.String("search.sort", string(plan.Sort)),
		attribute.Int64("search.page", plan.Page),
		attribute.Int64("search.page_size", plan.PageSize),
		attribute.Bool("search.text", plan.Text != ""),
	))
	defer func() { endSpan(span, err) }()

	txn := rm.client.ReadOnlyTransaction()
	defer txn.Close()

	items, err := rm.queryItems(ctx, txn, plan.Statement(m_menu_item.Columns()...))
	if err != nil {
		return nil, err
	}

	total, err := rm.count(ctx, txn, plan.CountStatement())
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int64("search.total_matched", total))
	return &contracts.SearchResult{
		Items:        items,
		Page:         plan.Page,
		PageSize:     plan.PageSize,
		TotalMatched: total,
	}, nil
}

// ListFeatured returns available featured items, most ordered first.
func (rm *ReadModelImpl) ListFeatured(ctx context.Context, limit int64) ([]*contracts.MenuItemDTO, error) {
	return rm.listFlagged(ctx, "ReadModel.ListFeatured", m_menu_item.IsFeatured, limit)
}

// ListPopular returns available popular items, most ordered first.
func (rm *ReadModelImpl) ListPopular(ctx context.Context, limit int64) ([]*contracts.MenuItemDTO, error) {
	return rm.listFlagged(ctx, "ReadModel.ListPopular", m_menu_item.IsPopular, limit)
}

func (rm *ReadModelImpl) listFlagged(ctx context.Context, spanName, flag string, limit int64) (items []*contracts.MenuItemDTO, err error) {
	ctx, span := tracer.Start(ctx, spanName, trace.WithAttributes(attribute.Int64("limit", limit)))
	defer func() { endSpan(span, err) }()

	stmt := query.From(m_menu_item.TableName).
		Select(m_menu_item.Columns()...).
		Where(query.IsTrue(m_menu_item.IsAvailable)).
		Where(query.IsTrue(flag)).
		OrderBy(m_menu_item.OrderCount, query.Desc).
		ThenBy(m_menu_item.RatingAverage, query.Desc).
		ThenBy(m_menu_item.MenuItemID, query.Asc).
		Limit(limit).
		Build()

	return rm.queryItems(ctx, rm.client.Single(), stmt)
}

// ListNew returns available items created after since, newest first.
func (rm *ReadModelImpl) ListNew(ctx context.Context, since time.Time, limit int64) (items []*contracts.MenuItemDTO, err error) {
	ctx, span := tracer.Start(ctx, "ReadModel.ListNew", trace.WithAttributes(attribute.Int64("limit", limit)))
	defer func() { endSpan(span, err) }()

	stmt := query.From(m_menu_item.TableName).
		Select(m_menu_item.Columns()...).
		Where(query.IsTrue(m_menu_item.IsAvailable)).
		Where(query.Gt(m_menu_item.CreatedAt, since)).
		OrderBy(m_menu_item.CreatedAt, query.Desc).
		ThenBy(m_menu_item.MenuItemID, query.Asc).
		Limit(limit).
		Build()

	return rm.queryItems(ctx, rm.client.Single(), stmt)
}

// CategoryStatistics groups every menu item, available or not, by category.
func (rm *ReadModelImpl) CategoryStatistics(ctx context.Context) (stats []domain.CategoryStatistics, err error) {
	ctx, span := tracer.Start(ctx, "ReadModel.CategoryStatistics")
	defer func() { endSpan(span, err) }()

	stmt := query.From(m_menu_item.TableName).
		Select(
			m_menu_item.Category,
			"COUNT(*) AS item_count",
			"AVG("+m_menu_item.Price+") AS average_price",
			"COUNTIF("+m_menu_item.IsAvailable+") AS available_count",
		).
		GroupBy(m_menu_item.Category).
		OrderBy("item_count", query.Desc).
		ThenBy(m_menu_item.Category, query.Asc).
		Build()

	iter := rm.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, ClassifyError("category statistics", err)
		}

		var (
			category  string
			count     int64
			average   spanner.NullNumeric
			available int64
		)
		if err := row.Columns(&category, &count, &average, &available); err != nil {
			return nil, fmt.Errorf("failed to parse category statistics: %w", err)
		}

		s := domain.CategoryStatistics{
			Category:       domain.Category(category),
			Count:          count,
			AvailableCount: available,
		}
		if average.Valid {
			s.AveragePrice = domain.NewMoneyFromRat(&average.Numeric).Float64()
		}
		stats = append(stats, s)
	}

	domain.SortCategoryStatistics(stats)
	span.SetAttributes(attribute.Int("statistics.categories", len(stats)))
	return stats, nil
}

type queryer interface {
	Query(ctx context.Context, stmt spanner.Statement) *spanner.RowIterator
}

func (rm *ReadModelImpl) queryItems(ctx context.Context, q queryer, stmt spanner.Statement) ([]*contracts.MenuItemDTO, error) {
	iter := q.Query(ctx, stmt)
	defer iter.Stop()

	now := rm.clock.Now()
	items := make([]*contracts.MenuItemDTO, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return items, nil
		}
		if err != nil {
			return nil, ClassifyError("query menu items", err)
		}

		item, err := rowToDomain(row)
		if err != nil {
			return nil, err
		}
		items = append(items, contracts.NewMenuItemDTO(item, now))
	}
}

func (rm *ReadModelImpl) count(ctx context.Context, q queryer, stmt spanner.Statement) (int64, error) {
	iter := q.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, ClassifyError("count menu items", err)
	}

	var total int64
	if err := row.Columns(&total); err != nil {
		return 0, fmt.Errorf("failed to parse count: %w", err)
	}
	return total, nil
}

