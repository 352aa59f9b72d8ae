// Package search turns a free-text query and an option bag into a Spanner
// statement over menu_items.
//
// Filters are kept as a list of predicates ANDed together. The first one is
// always is_available = TRUE, so no combination of options can surface an
// unavailable item.
package search

import (
	"strings"
	"unicode/utf8"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
	"github.com/light-bringer/menucat-service/internal/models/m_menu_item"
	"github.com/light-bringer/menucat-service/internal/pkg/query"
)

const scoreParam = "score_query"

// Plan is a validated search: its filters, ordering and page window.
type Plan struct {
	Text        string
	Category    domain.Category
	Price       PriceRange
	DietaryTags []domain.DietaryTag
	Allergens   []domain.Allergen
	Sort        SortKey
	Page        int64
	PageSize    int64

	filters []query.Condition
}

// Build validates opts and assembles the plan.
func Build(text string, opts Options) (*Plan, error) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) > MaxQueryLength {
		return nil, domain.NewValidationError(FieldQuery, "too long")
	}

	p := &Plan{
		Text:     text,
		Price:    PriceRange{Min: opts.MinPrice, Max: opts.MaxPrice},
		Page:     opts.Page,
		PageSize: opts.PageSize,
	}

	if p.Page == 0 {
		p.Page = DefaultPage
	}
	if p.PageSize == 0 {
		p.PageSize = DefaultPageSize
	}
	if p.Page < 1 {
		return nil, domain.NewValidationError(FieldPage, "must be at least 1")
	}
	if p.PageSize < 1 || p.PageSize > MaxPageSize {
		return nil, domain.NewValidationError(FieldPageSize, "must be between 1 and 100")
	}

	if strings.TrimSpace(opts.Category) != "" {
		c, err := domain.ParseCategory(opts.Category)
		if err != nil {
			return nil, err
		}
		p.Category = c
	}
	if err := p.Price.Validate(); err != nil {
		return nil, err
	}

	var err error
	if p.DietaryTags, err = domain.ParseDietaryTags(opts.DietaryTags); err != nil {
		return nil, err
	}
	if p.Allergens, err = domain.ParseAllergens(opts.Allergens); err != nil {
		return nil, err
	}
	if p.Sort, err = ParseSortKey(opts.Sort); err != nil {
		return nil, err
	}
	if p.Sort == SortRelevance && p.Text == "" {
		return nil, domain.NewValidationError(FieldSort, "relevance requires a search query")
	}

	p.filters = p.conditions()
	return p, nil
}

func (p *Plan) conditions() []query.Condition {
	conds := []query.Condition{query.IsTrue(m_menu_item.IsAvailable)}

	if p.Category != "" {
		conds = append(conds, query.Eq(m_menu_item.Category, string(p.Category)))
	}
	conds = append(conds, p.Price.Conditions()...)
	if len(p.DietaryTags) > 0 {
		conds = append(conds, query.ArrayIncludesAny(m_menu_item.DietaryTags, domain.Strings(p.DietaryTags)))
	}
	if len(p.Allergens) > 0 {
		conds = append(conds, query.Not(query.ArrayIncludesAny(m_menu_item.Allergens, domain.Strings(p.Allergens))))
	}
	if p.Text != "" {
		conds = append(conds, query.Search(m_menu_item.SearchTokens, p.Text))
	}
	return conds
}

// Filters returns the predicates in application order.
func (p *Plan) Filters() []query.Condition {
	return append([]query.Condition(nil), p.filters...)
}

// Offset is the number of matching rows skipped before this page.
func (p *Plan) Offset() int64 {
	return (p.Page - 1) * p.PageSize
}

func (p *Plan) base() *query.Builder {
	return query.From(m_menu_item.TableName).WhereAll(p.filters...)
}

// Statement selects one page of rows with the given columns.
func (p *Plan) Statement(columns ...string) spanner.Statement {
	b := p.base().Select(columns...)
	b = p.order(b)
	return b.Limit(p.PageSize).Offset(p.Offset()).Build()
}

// CountStatement counts every row matching the filters.
func (p *Plan) CountStatement() spanner.Statement {
	return p.base().Count().Build()
}

func (p *Plan) order(b *query.Builder) *query.Builder {
	switch p.Sort {
	case SortPriceAsc:
		b = b.OrderBy(m_menu_item.Price, query.Asc)
	case SortPriceDesc:
		b = b.OrderBy(m_menu_item.Price, query.Desc)
	case SortNewest:
		b = b.OrderBy(m_menu_item.CreatedAt, query.Desc)
	case SortPopular:
		b = b.OrderBy(m_menu_item.OrderCount, query.Desc)
	case SortName:
		b = b.OrderBy(m_menu_item.Name, query.Asc)
	case SortRelevance:
		b = b.ThenByExpr("SCORE("+m_menu_item.SearchTokens+", @"+scoreParam+")", query.Desc,
			map[string]interface{}{scoreParam: p.Text})
	default:
		b = b.OrderBy(m_menu_item.RatingAverage, query.Desc)
	}
	return b.ThenBy(m_menu_item.MenuItemID, query.Asc)
}
