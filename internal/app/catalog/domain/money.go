package domain

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value with precise decimal arithmetic using big.Rat.
// Stored as a Spanner NUMERIC; only Float64 and String are approximations.
type Money struct {
	rat *big.Rat
}

// NewMoney creates a new Money instance from numerator and denominator.
// Example: NewMoney(450, 100) represents $4.50
func NewMoney(numerator, denominator int64) (*Money, error) {
	if denominator <= 0 {
		return nil, fmt.Errorf("denominator must be positive, got %d", denominator)
	}
	return &Money{rat: big.NewRat(numerator, denominator)}, nil
}

// MustMoney is NewMoney for constants and tests.
func MustMoney(numerator, denominator int64) *Money {
	m, err := NewMoney(numerator, denominator)
	if err != nil {
		panic(err)
	}
	return m
}

// NewMoneyFromRat creates a new Money instance from a big.Rat.
func NewMoneyFromRat(rat *big.Rat) *Money {
	if rat == nil {
		return Zero()
	}
	return &Money{rat: new(big.Rat).Set(rat)}
}

// NewMoneyFromDecimal converts a decimal amount (HTTP or seed input) to Money.
func NewMoneyFromDecimal(d decimal.Decimal) *Money {
	return &Money{rat: d.Rat()}
}

// ParseMoney parses a decimal string such as "4.50".
func ParseMoney(s string) (*Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return NewMoneyFromDecimal(d), nil
}

// Zero returns a zero amount.
func Zero() *Money {
	return &Money{rat: new(big.Rat)}
}

// Rat returns a copy of the underlying rational value.
func (m *Money) Rat() *big.Rat {
	return new(big.Rat).Set(m.rat)
}

// Add adds two Money values and returns a new Money instance.
func (m *Money) Add(other *Money) *Money {
	return &Money{rat: new(big.Rat).Add(m.rat, other.rat)}
}

// Subtract subtracts another Money value from this one and returns a new Money instance.
func (m *Money) Subtract(other *Money) *Money {
	return &Money{rat: new(big.Rat).Sub(m.rat, other.rat)}
}

// MultiplyByRat multiplies this Money value by a rational number and returns a new Money instance.
func (m *Money) MultiplyByRat(rat *big.Rat) *Money {
	return &Money{rat: new(big.Rat).Mul(m.rat, rat)}
}

// ClampZero returns zero for negative amounts.
func (m *Money) ClampZero() *Money {
	if m.IsNegative() {
		return Zero()
	}
	return m.Copy()
}

func (m *Money) IsZero() bool     { return m.rat.Sign() == 0 }
func (m *Money) IsNegative() bool { return m.rat.Sign() < 0 }
func (m *Money) IsPositive() bool { return m.rat.Sign() > 0 }

// Cmp compares two amounts: -1, 0 or +1.
func (m *Money) Cmp(other *Money) int {
	return m.rat.Cmp(other.rat)
}

func (m *Money) LessThan(other *Money) bool    { return m.Cmp(other) < 0 }
func (m *Money) GreaterThan(other *Money) bool { return m.Cmp(other) > 0 }
func (m *Money) Equals(other *Money) bool      { return m.Cmp(other) == 0 }

// Decimal converts to a decimal rounded to cents.
func (m *Money) Decimal() decimal.Decimal {
	d, _ := decimal.NewFromString(m.rat.FloatString(10))
	return d.Round(2)
}

// Float64 returns the amount rounded to cents (for display only, not calculations).
func (m *Money) Float64() float64 {
	return m.Decimal().InexactFloat64()
}

// String returns a string representation of the money value.
func (m *Money) String() string {
	return m.rat.FloatString(2)
}

// Copy creates a deep copy of this Money instance.
func (m *Money) Copy() *Money {
	return &Money{rat: new(big.Rat).Set(m.rat)}
}

// roundPercent returns round(part/whole * 100), halves rounding up.
// whole must be positive.
func roundPercent(part, whole *Money) int64 {
	r := new(big.Rat).Quo(part.rat, whole.rat)
	r.Mul(r, big.NewRat(100, 1))
	r.Add(r, big.NewRat(1, 2))
	q := new(big.Int).Quo(r.Num(), r.Denom())
	if r.Sign() < 0 && new(big.Int).Rem(r.Num(), r.Denom()).Sign() != 0 {
		q.Sub(q, big.NewInt(1))
	}
	return q.Int64()
}
