package domain

import (
	"fmt"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
)

// DiscountKind selects how a discount value is applied.
type DiscountKind string

const (
	DiscountPercentage DiscountKind = "percentage"
	DiscountFixed      DiscountKind = "fixed"
)

// ParseDiscountKind parses a discount kind.
func ParseDiscountKind(s string) (DiscountKind, error) {
	switch k := DiscountKind(s); k {
	case DiscountPercentage, DiscountFixed:
		return k, nil
	}
	return "", NewValidationError(FieldDiscountKind, "must be percentage or fixed")
}

// Discount is a price reduction attached to a menu item.
// Start and end bounds are optional (open-ended when nil) and both inclusive.
// The active flag is independent of the date window.
type Discount struct {
	kind     DiscountKind
	value    decimal.Decimal
	startsAt *time.Time
	endsAt   *time.Time
	active   bool
}

// NewDiscount creates a Discount with validation.
// Bounds are normalised to UTC.
func NewDiscount(kind DiscountKind, value decimal.Decimal, startsAt, endsAt *time.Time, active bool) (*Discount, error) {
	if kind != DiscountPercentage && kind != DiscountFixed {
		return nil, NewValidationError(FieldDiscountKind, "must be percentage or fixed")
	}
	if value.IsNegative() {
		return nil, NewValidationError(FieldDiscountValue, "must be non-negative")
	}
	if kind == DiscountPercentage && value.GreaterThan(decimal.NewFromInt(100)) {
		return nil, NewValidationError(FieldDiscountValue, fmt.Sprintf("percentage must be at most 100, got %s", value))
	}
	if startsAt != nil && endsAt != nil && endsAt.Before(*startsAt) {
		return nil, NewValidationError(FieldDiscountWindow, "end must not be before start")
	}

	return &Discount{
		kind:     kind,
		value:    value,
		startsAt: utcPtr(startsAt),
		endsAt:   utcPtr(endsAt),
		active:   active,
	}, nil
}

func (d *Discount) Kind() DiscountKind     { return d.kind }
func (d *Discount) Value() decimal.Decimal { return d.value }
func (d *Discount) Active() bool           { return d.active }
func (d *Discount) StartsAt() *time.Time   { return utcPtr(d.startsAt) }
func (d *Discount) EndsAt() *time.Time     { return utcPtr(d.endsAt) }

// QualifiesAt reports whether the discount may be applied at t.
func (d *Discount) QualifiesAt(t time.Time) bool {
	if !d.active {
		return false
	}
	if d.startsAt != nil && t.Before(*d.startsAt) {
		return false
	}
	if d.endsAt != nil && t.After(*d.endsAt) {
		return false
	}
	return true
}

// Apply returns the discounted price. The result is never negative.
//   - percentage: price * (1 - value/100)
//   - fixed:      max(0, price - value)
func (d *Discount) Apply(price *Money) *Money {
	switch d.kind {
	case DiscountPercentage:
		remaining := new(big.Rat).Sub(big.NewRat(1, 1), new(big.Rat).Quo(d.value.Rat(), big.NewRat(100, 1)))
		return price.MultiplyByRat(remaining).ClampZero()
	default:
		return price.Subtract(NewMoneyFromDecimal(d.value)).ClampZero()
	}
}

// Copy returns an independent copy.
func (d *Discount) Copy() *Discount {
	c := *d
	c.startsAt = utcPtr(d.startsAt)
	c.endsAt = utcPtr(d.endsAt)
	return &c
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
