package domain

import "time"

// PriceQuote is the resolved price of a menu item at one instant.
type PriceQuote struct {
	BasePrice          *Money
	EffectivePrice     *Money
	DiscountPercentage int64
	AppliedDiscount    *Discount
	EvaluatedAt        time.Time
}

// HasDiscount reports whether a discount lowered the price.
func (q PriceQuote) HasDiscount() bool {
	return q.AppliedDiscount != nil
}

// PricingCalculator is a domain service for price and discount calculations.
// The discount selection rule is a pluggable DiscountPolicy so that changing
// which overlapping discount wins is a one-line swap at construction time.
type PricingCalculator struct {
	policy DiscountPolicy
}

// NewPricingCalculator creates a calculator using policy (FirstQualifying when nil).
func NewPricingCalculator(policy DiscountPolicy) *PricingCalculator {
	if policy == nil {
		policy = FirstQualifying
	}
	return &PricingCalculator{policy: policy}
}

// Package-level calculator instance for domain object use
var defaultPricingCalculator = NewPricingCalculator(FirstQualifying)

// DefaultPricingCalculator returns the calculator used by MenuItem.Quote.
func DefaultPricingCalculator() *PricingCalculator {
	return defaultPricingCalculator
}

// Resolve computes the effective price of item at the given instant.
func (pc *PricingCalculator) Resolve(item *MenuItem, at time.Time) PriceQuote {
	return pc.ResolvePrice(item.Price(), item.Discounts(), at)
}

// ResolvePrice applies the policy-selected discount to basePrice.
// With no qualifying discount the effective price equals basePrice.
func (pc *PricingCalculator) ResolvePrice(basePrice *Money, discounts []*Discount, at time.Time) PriceQuote {
	quote := PriceQuote{
		BasePrice:      basePrice.Copy(),
		EffectivePrice: basePrice.Copy(),
		EvaluatedAt:    at,
	}

	idx := pc.policy(basePrice, discounts, at)
	if idx < 0 || idx >= len(discounts) {
		return quote
	}

	applied := discounts[idx]
	quote.AppliedDiscount = applied.Copy()
	quote.EffectivePrice = applied.Apply(basePrice)
	quote.DiscountPercentage = PercentOff(basePrice, quote.EffectivePrice)
	return quote
}

// PercentOff returns round((base - effective) / base * 100) when
// effective < base, else 0. A zero base price never divides.
func PercentOff(basePrice, effectivePrice *Money) int64 {
	if !effectivePrice.LessThan(basePrice) || !basePrice.IsPositive() {
		return 0
	}
	return roundPercent(basePrice.Subtract(effectivePrice), basePrice)
}
