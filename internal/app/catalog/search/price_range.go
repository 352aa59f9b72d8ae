package search

import (
	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
	"github.com/light-bringer/menucat-service/internal/models/m_menu_item"
	"github.com/light-bringer/menucat-service/internal/pkg/query"
)

// PriceRange holds both optional bounds of a price filter. Each bound
// becomes its own predicate so setting one never replaces the other.
type PriceRange struct {
	Min *domain.Money
	Max *domain.Money
}

// IsZero reports whether neither bound is set.
func (r PriceRange) IsZero() bool {
	return r.Min == nil && r.Max == nil
}

// Validate checks each bound is non-negative and min <= max.
func (r PriceRange) Validate() error {
	if r.Min != nil && r.Min.IsNegative() {
		return domain.NewValidationError(FieldMinPrice, "must be non-negative")
	}
	if r.Max != nil && r.Max.IsNegative() {
		return domain.NewValidationError(FieldMaxPrice, "must be non-negative")
	}
	if r.Min != nil && r.Max != nil && r.Min.GreaterThan(r.Max) {
		return domain.NewValidationError(FieldMinPrice, "must not exceed max_price")
	}
	return nil
}

// Contains reports whether price satisfies every set bound.
func (r PriceRange) Contains(price *domain.Money) bool {
	if r.Min != nil && price.LessThan(r.Min) {
		return false
	}
	if r.Max != nil && price.GreaterThan(r.Max) {
		return false
	}
	return true
}

// Conditions returns one predicate per set bound, lower bound first.
func (r PriceRange) Conditions() []query.Condition {
	conds := make([]query.Condition, 0, 2)
	if r.Min != nil {
		conds = append(conds, query.Gte(m_menu_item.Price, r.Min.Rat()))
	}
	if r.Max != nil {
		conds = append(conds, query.Lte(m_menu_item.Price, r.Max.Rat()))
	}
	return conds
}
