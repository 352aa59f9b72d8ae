package domain

import "time"

// DiscountPolicy picks the discount to apply from an item's ordered list.
// It returns -1 when nothing qualifies at t.
type DiscountPolicy func(price *Money, discounts []*Discount, t time.Time) int

// FirstQualifying selects the first discount in stored order that qualifies at t.
// Later overlapping discounts are ignored even if they are cheaper for the customer.
func FirstQualifying(_ *Money, discounts []*Discount, t time.Time) int {
	for i, d := range discounts {
		if d.QualifiesAt(t) {
			return i
		}
	}
	return -1
}

// BestForCustomer selects the qualifying discount producing the lowest price.
// Ties keep the earlier discount. Not wired by default.
func BestForCustomer(price *Money, discounts []*Discount, t time.Time) int {
	best := -1
	var bestPrice *Money
	for i, d := range discounts {
		if !d.QualifiesAt(t) {
			continue
		}
		p := d.Apply(price)
		if best == -1 || p.LessThan(bestPrice) {
			best, bestPrice = i, p
		}
	}
	return best
}
