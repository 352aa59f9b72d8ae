package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Field names used for validation errors and change tracking.
const (
	FieldID              = "id"
	FieldName            = "name"
	FieldDescription     = "description"
	FieldPrice           = "price"
	FieldOriginalPrice   = "original_price"
	FieldCategory        = "category"
	FieldAvailable       = "is_available"
	FieldFeatured        = "is_featured"
	FieldPopular         = "is_popular"
	FieldStock           = "stock"
	FieldPreparationTime = "preparation_time"
	FieldDifficulty      = "difficulty"
	FieldDiscounts       = "discounts"
	FieldRating          = "rating"
	FieldRatingAverage   = "rating.average"
	FieldRatingCount     = "rating.count"
	FieldOrderCount      = "order_count"
	FieldTags            = "tags"
	FieldDietaryTags     = "dietary_tags"
	FieldAllergens       = "allergens"
	FieldSizes           = "sizes"
	FieldCustomizations  = "customizations"
	FieldCreatedBy       = "created_by"
	FieldQuantity        = "quantity"

	FieldDiscountKind   = "discount.kind"
	FieldDiscountValue  = "discount.value"
	FieldDiscountWindow = "discount.window"
)

// Catalog limits.
const (
	UnlimitedStock        int64 = -1
	MaxNameLength               = 100
	MaxDescriptionLength        = 500
	MaxPreparationMinutes       = 180
	MaxTags                     = 20
	MaxTagLength                = 30
	MaxDiscounts                = 10
	MaxSizes                    = 10
	MaxCustomizations           = 20
	MaxVariantNameLength        = 50

	// NewItemWindow is how long after creation an item counts as new.
	NewItemWindow = 30 * 24 * time.Hour
)

// MaxPrice caps base and original prices.
var MaxPrice = MustMoney(10000, 1)

// Size is a serving size with its surcharge over the base price.
type Size struct {
	Name       string
	PriceDelta *Money
}

// Customization is an optional modifier group (milk, syrup, extra shot).
type Customization struct {
	Name       string
	Options    []string
	PriceDelta *Money
}

// MenuItemParams carries the caller-supplied fields of a new menu item.
type MenuItemParams struct {
	ID              string
	Name            string
	Description     string
	Price           *Money
	OriginalPrice   *Money // nil defaults to Price
	Category        Category
	IsAvailable     bool
	IsFeatured      bool
	IsPopular       bool
	Stock           int64
	PreparationTime int64 // minutes
	Difficulty      Difficulty
	Discounts       []*Discount
	Tags            []string
	DietaryTags     []DietaryTag
	Allergens       []Allergen
	Sizes           []Size
	Customizations  []Customization
	CreatedBy       string
}

// MenuItemSnapshot is the full persisted state, used to reconstruct an aggregate.
type MenuItemSnapshot struct {
	MenuItemParams
	Rating     RatingSummary
	OrderCount int64
	Version    int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// MenuItem is the aggregate root for one sellable café item.
type MenuItem struct {
	id              string
	name            string
	description     string
	price           *Money
	originalPrice   *Money
	category        Category
	isAvailable     bool
	isFeatured      bool
	isPopular       bool
	stock           int64
	preparationTime int64
	difficulty      Difficulty
	discounts       []*Discount
	rating          RatingSummary
	orderCount      int64
	tags            []string
	dietaryTags     []DietaryTag
	allergens       []Allergen
	sizes           []Size
	customizations  []Customization
	createdBy       string
	version         int64
	createdAt       time.Time
	updatedAt       time.Time

	changes *ChangeTracker
	events  []DomainEvent
}

// NewMenuItem creates a menu item for its first persist.
// An unset original price takes the base price; this default is applied once.
func NewMenuItem(p MenuItemParams, now time.Time) (*MenuItem, error) {
	if p.Price == nil {
		return nil, NewValidationError(FieldPrice, "is required")
	}
	original := p.OriginalPrice
	if original == nil {
		original = p.Price
	}
	if p.Difficulty == "" {
		p.Difficulty = DifficultyEasy
	}

	m := &MenuItem{
		id:              p.ID,
		name:            strings.TrimSpace(p.Name),
		description:     strings.TrimSpace(p.Description),
		price:           p.Price.Copy(),
		originalPrice:   original.Copy(),
		category:        p.Category,
		isAvailable:     p.IsAvailable,
		isFeatured:      p.IsFeatured,
		isPopular:       p.IsPopular,
		stock:           p.Stock,
		preparationTime: p.PreparationTime,
		difficulty:      p.Difficulty,
		discounts:       copyDiscounts(p.Discounts),
		tags:            normalizeTags(p.Tags),
		dietaryTags:     append([]DietaryTag(nil), p.DietaryTags...),
		allergens:       append([]Allergen(nil), p.Allergens...),
		sizes:           append([]Size(nil), p.Sizes...),
		customizations:  append([]Customization(nil), p.Customizations...),
		createdBy:       p.CreatedBy,
		version:         1,
		createdAt:       now.UTC(),
		updatedAt:       now.UTC(),
		changes:         NewChangeTracker(),
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	m.changes.MarkDirty(
		FieldName, FieldDescription, FieldPrice, FieldOriginalPrice, FieldCategory,
		FieldAvailable, FieldFeatured, FieldPopular, FieldStock, FieldPreparationTime,
		FieldDifficulty, FieldDiscounts, FieldRating, FieldOrderCount, FieldTags,
		FieldDietaryTags, FieldAllergens, FieldSizes, FieldCustomizations,
	)

	m.recordEvent(&MenuItemCreatedEvent{
		MenuItemID: m.id,
		Name:       m.name,
		Category:   string(m.category),
		Price:      m.price.String(),
		CreatedBy:  m.createdBy,
		CreatedAt:  m.createdAt,
	})

	return m, nil
}

// ReconstructMenuItem reconstitutes a MenuItem loaded from the database.
// No defaults are applied and no events are recorded.
func ReconstructMenuItem(s MenuItemSnapshot) *MenuItem {
	original := s.OriginalPrice
	if original == nil {
		original = s.Price
	}
	return &MenuItem{
		id:              s.ID,
		name:            s.Name,
		description:     s.Description,
		price:           s.Price.Copy(),
		originalPrice:   original.Copy(),
		category:        s.Category,
		isAvailable:     s.IsAvailable,
		isFeatured:      s.IsFeatured,
		isPopular:       s.IsPopular,
		stock:           s.Stock,
		preparationTime: s.PreparationTime,
		difficulty:      s.Difficulty,
		discounts:       copyDiscounts(s.Discounts),
		rating:          s.Rating,
		orderCount:      s.OrderCount,
		tags:            append([]string(nil), s.Tags...),
		dietaryTags:     append([]DietaryTag(nil), s.DietaryTags...),
		allergens:       append([]Allergen(nil), s.Allergens...),
		sizes:           append([]Size(nil), s.Sizes...),
		customizations:  append([]Customization(nil), s.Customizations...),
		createdBy:       s.CreatedBy,
		version:         s.Version,
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
		changes:         NewChangeTracker(),
	}
}

// Getters
func (m *MenuItem) ID() string                      { return m.id }
func (m *MenuItem) Name() string                    { return m.name }
func (m *MenuItem) Description() string             { return m.description }
func (m *MenuItem) Price() *Money                   { return m.price.Copy() }
func (m *MenuItem) OriginalPrice() *Money           { return m.originalPrice.Copy() }
func (m *MenuItem) Category() Category              { return m.category }
func (m *MenuItem) IsAvailable() bool               { return m.isAvailable }
func (m *MenuItem) IsFeatured() bool                { return m.isFeatured }
func (m *MenuItem) IsPopular() bool                 { return m.isPopular }
func (m *MenuItem) Stock() int64                    { return m.stock }
func (m *MenuItem) PreparationTime() int64          { return m.preparationTime }
func (m *MenuItem) Difficulty() Difficulty          { return m.difficulty }
func (m *MenuItem) Rating() RatingSummary           { return m.rating }
func (m *MenuItem) OrderCount() int64               { return m.orderCount }
func (m *MenuItem) Tags() []string                  { return append([]string(nil), m.tags...) }
func (m *MenuItem) DietaryTags() []DietaryTag       { return append([]DietaryTag(nil), m.dietaryTags...) }
func (m *MenuItem) Allergens() []Allergen           { return append([]Allergen(nil), m.allergens...) }
func (m *MenuItem) Sizes() []Size                   { return append([]Size(nil), m.sizes...) }
func (m *MenuItem) Customizations() []Customization { return append([]Customization(nil), m.customizations...) }
func (m *MenuItem) CreatedBy() string               { return m.createdBy }
func (m *MenuItem) Version() int64                  { return m.version }
func (m *MenuItem) CreatedAt() time.Time            { return m.createdAt }
func (m *MenuItem) UpdatedAt() time.Time            { return m.updatedAt }
func (m *MenuItem) Changes() *ChangeTracker         { return m.changes }
func (m *MenuItem) DomainEvents() []DomainEvent     { return m.events }

// Discounts returns copies of the discounts in stored order.
func (m *MenuItem) Discounts() []*Discount { return copyDiscounts(m.discounts) }

// HasUnlimitedStock reports whether stock is the unlimited sentinel.
func (m *MenuItem) HasUnlimitedStock() bool { return m.stock == UnlimitedStock }

// IsNew reports whether the item was created within NewItemWindow of now.
// It is derived on every read and never stored.
func (m *MenuItem) IsNew(now time.Time) bool {
	return m.createdAt.After(now.Add(-NewItemWindow))
}

// Quote resolves the effective price at the given instant.
func (m *MenuItem) Quote(at time.Time) PriceQuote {
	return defaultPricingCalculator.Resolve(m, at)
}

// EffectivePrice calculates the price at the given instant considering discounts.
func (m *MenuItem) EffectivePrice(at time.Time) *Money {
	return m.Quote(at).EffectivePrice
}

// Validate enforces every field constraint. Repositories call it before
// building any insert or update mutation.
func (m *MenuItem) Validate() error {
	if m.id == "" {
		return NewValidationError(FieldID, "is required")
	}
	if n := utf8.RuneCountInString(m.name); n == 0 || n > MaxNameLength {
		return NewValidationError(FieldName, fmt.Sprintf("must be 1-%d characters", MaxNameLength))
	}
	if utf8.RuneCountInString(m.description) > MaxDescriptionLength {
		return NewValidationError(FieldDescription, fmt.Sprintf("must be at most %d characters", MaxDescriptionLength))
	}
	if err := validatePrice(FieldPrice, m.price); err != nil {
		return err
	}
	if err := validatePrice(FieldOriginalPrice, m.originalPrice); err != nil {
		return err
	}
	if !contains(Categories, m.category) {
		return NewValidationError(FieldCategory, "must be one of "+joinEnum(Categories))
	}
	if !contains(Difficulties, m.difficulty) {
		return NewValidationError(FieldDifficulty, "must be one of "+joinEnum(Difficulties))
	}
	if m.stock < UnlimitedStock {
		return NewValidationError(FieldStock, "must be -1 (unlimited) or non-negative")
	}
	if m.preparationTime < 0 || m.preparationTime > MaxPreparationMinutes {
		return NewValidationError(FieldPreparationTime, fmt.Sprintf("must be 0-%d minutes", MaxPreparationMinutes))
	}
	if len(m.discounts) > MaxDiscounts {
		return NewValidationError(FieldDiscounts, fmt.Sprintf("at most %d discounts", MaxDiscounts))
	}
	for _, d := range m.discounts {
		if d == nil {
			return NewValidationError(FieldDiscounts, "must not contain empty entries")
		}
	}
	if err := m.rating.Validate(); err != nil {
		return err
	}
	if m.orderCount < 0 {
		return NewValidationError(FieldOrderCount, "must be non-negative")
	}
	if err := validateTags(m.tags); err != nil {
		return err
	}
	for _, t := range m.dietaryTags {
		if !contains(DietaryTags, t) {
			return NewValidationError(FieldDietaryTags, "unknown value "+string(t))
		}
	}
	for _, a := range m.allergens {
		if !contains(Allergens, a) {
			return NewValidationError(FieldAllergens, "unknown value "+string(a))
		}
	}
	if err := validateSizes(m.sizes); err != nil {
		return err
	}
	if err := validateCustomizations(m.customizations); err != nil {
		return err
	}
	if strings.TrimSpace(m.createdBy) == "" {
		return NewValidationError(FieldCreatedBy, "is required")
	}
	return nil
}

// DetailsUpdate holds optional field changes; nil fields are left untouched.
type DetailsUpdate struct {
	Name            *string
	Description     *string
	OriginalPrice   *Money
	Category        *Category
	IsAvailable     *bool
	IsFeatured      *bool
	IsPopular       *bool
	Stock           *int64
	PreparationTime *int64
	Difficulty      *Difficulty
	Tags            *[]string
	DietaryTags     *[]DietaryTag
	Allergens       *[]Allergen
	Sizes           *[]Size
	Customizations  *[]Customization
}

// UpdateDetails applies a partial update atomically: if the result fails
// validation the item is left unchanged.
func (m *MenuItem) UpdateDetails(u DetailsUpdate, now time.Time) error {
	next := *m
	var dirty []string

	if u.Name != nil {
		next.name = strings.TrimSpace(*u.Name)
		dirty = append(dirty, FieldName)
	}
	if u.Description != nil {
		next.description = strings.TrimSpace(*u.Description)
		dirty = append(dirty, FieldDescription)
	}
	if u.OriginalPrice != nil {
		next.originalPrice = u.OriginalPrice.Copy()
		dirty = append(dirty, FieldOriginalPrice)
	}
	if u.Category != nil {
		next.category = *u.Category
		dirty = append(dirty, FieldCategory)
	}
	if u.IsAvailable != nil && *u.IsAvailable != m.isAvailable {
		next.isAvailable = *u.IsAvailable
		dirty = append(dirty, FieldAvailable)
	}
	if u.IsFeatured != nil {
		next.isFeatured = *u.IsFeatured
		dirty = append(dirty, FieldFeatured)
	}
	if u.IsPopular != nil {
		next.isPopular = *u.IsPopular
		dirty = append(dirty, FieldPopular)
	}
	if u.Stock != nil {
		next.stock = *u.Stock
		dirty = append(dirty, FieldStock)
	}
	if u.PreparationTime != nil {
		next.preparationTime = *u.PreparationTime
		dirty = append(dirty, FieldPreparationTime)
	}
	if u.Difficulty != nil {
		next.difficulty = *u.Difficulty
		dirty = append(dirty, FieldDifficulty)
	}
	if u.Tags != nil {
		next.tags = normalizeTags(*u.Tags)
		dirty = append(dirty, FieldTags)
	}
	if u.DietaryTags != nil {
		next.dietaryTags = append([]DietaryTag(nil), (*u.DietaryTags)...)
		dirty = append(dirty, FieldDietaryTags)
	}
	if u.Allergens != nil {
		next.allergens = append([]Allergen(nil), (*u.Allergens)...)
		dirty = append(dirty, FieldAllergens)
	}
	if u.Sizes != nil {
		next.sizes = append([]Size(nil), (*u.Sizes)...)
		dirty = append(dirty, FieldSizes)
	}
	if u.Customizations != nil {
		next.customizations = append([]Customization(nil), (*u.Customizations)...)
		dirty = append(dirty, FieldCustomizations)
	}

	if len(dirty) == 0 {
		return nil
	}
	if err := next.Validate(); err != nil {
		return err
	}

	availabilityChanged := next.isAvailable != m.isAvailable
	*m = next
	m.changes.MarkDirty(dirty...)
	m.updatedAt = now.UTC()

	m.recordEvent(&MenuItemUpdatedEvent{
		MenuItemID: m.id,
		Fields:     dirty,
		UpdatedAt:  m.updatedAt,
	})
	if availabilityChanged {
		m.recordEvent(&AvailabilityChangedEvent{
			MenuItemID:  m.id,
			IsAvailable: m.isAvailable,
			ChangedAt:   m.updatedAt,
		})
	}
	return nil
}

// SetAvailability toggles the availability flag.
func (m *MenuItem) SetAvailability(available bool, now time.Time) error {
	return m.UpdateDetails(DetailsUpdate{IsAvailable: &available}, now)
}

// SetFeatured toggles the featured flag.
func (m *MenuItem) SetFeatured(featured bool, now time.Time) error {
	return m.UpdateDetails(DetailsUpdate{IsFeatured: &featured}, now)
}

// SetPopular toggles the popular flag.
func (m *MenuItem) SetPopular(popular bool, now time.Time) error {
	return m.UpdateDetails(DetailsUpdate{IsPopular: &popular}, now)
}

// SetStock replaces the stock level. UnlimitedStock disables tracking.
func (m *MenuItem) SetStock(stock int64, now time.Time) error {
	return m.UpdateDetails(DetailsUpdate{Stock: &stock}, now)
}

// SetOriginalPrice overrides the reference price shown as struck through.
func (m *MenuItem) SetOriginalPrice(price *Money, now time.Time) error {
	if price == nil {
		return NewValidationError(FieldOriginalPrice, "is required")
	}
	return m.UpdateDetails(DetailsUpdate{OriginalPrice: price}, now)
}

// SetPrice changes the base price. The original price is not touched.
func (m *MenuItem) SetPrice(price *Money, now time.Time) error {
	if err := validatePrice(FieldPrice, price); err != nil {
		return err
	}
	if price.Equals(m.price) {
		return nil
	}

	old := m.price
	m.price = price.Copy()
	m.changes.MarkDirty(FieldPrice)
	m.updatedAt = now.UTC()

	m.recordEvent(&PriceChangedEvent{
		MenuItemID: m.id,
		OldPrice:   old.String(),
		NewPrice:   m.price.String(),
		ChangedAt:  m.updatedAt,
	})
	return nil
}

// AddDiscount appends a discount. Order matters: see FirstQualifying.
func (m *MenuItem) AddDiscount(d *Discount, now time.Time) error {
	if d == nil {
		return NewValidationError(FieldDiscounts, "discount is required")
	}
	if len(m.discounts) >= MaxDiscounts {
		return NewValidationError(FieldDiscounts, fmt.Sprintf("at most %d discounts", MaxDiscounts))
	}

	m.discounts = append(m.discounts, d.Copy())
	m.changes.MarkDirty(FieldDiscounts)
	m.updatedAt = now.UTC()

	m.recordEvent(&DiscountAddedEvent{
		MenuItemID: m.id,
		Position:   len(m.discounts) - 1,
		Kind:       string(d.Kind()),
		Value:      d.Value().String(),
		StartsAt:   d.StartsAt(),
		EndsAt:     d.EndsAt(),
		Active:     d.Active(),
		AddedAt:    m.updatedAt,
	})
	return nil
}

// RemoveDiscount removes the discount at position index.
func (m *MenuItem) RemoveDiscount(index int, now time.Time) error {
	if index < 0 || index >= len(m.discounts) {
		return NewNotFoundError("discount", fmt.Sprintf("%s/%d", m.id, index))
	}

	m.discounts = append(m.discounts[:index:index], m.discounts[index+1:]...)
	m.changes.MarkDirty(FieldDiscounts)
	m.updatedAt = now.UTC()

	m.recordEvent(&DiscountRemovedEvent{
		MenuItemID: m.id,
		Position:   index,
		RemovedAt:  m.updatedAt,
	})
	return nil
}

// ApplyRatingSummary replaces the cached rating summary.
func (m *MenuItem) ApplyRatingSummary(s RatingSummary, now time.Time) error {
	if err := s.Validate(); err != nil {
		return err
	}

	m.rating = s
	m.changes.MarkDirty(FieldRating)
	m.updatedAt = now.UTC()

	m.recordEvent(&RatingRecalculatedEvent{
		MenuItemID:   m.id,
		Average:      s.Average,
		Count:        s.Count,
		RecomputedAt: m.updatedAt,
	})
	return nil
}

// RecordOrder bumps the order counter and draws down finite stock.
func (m *MenuItem) RecordOrder(quantity int64, now time.Time) error {
	if quantity < 1 {
		return NewValidationError(FieldQuantity, "must be at least 1")
	}
	if !m.isAvailable {
		return NewValidationError(FieldAvailable, "item is not available")
	}
	if !m.HasUnlimitedStock() {
		if m.stock < quantity {
			return fmt.Errorf("menu item %s has %d left, %d requested: %w", m.id, m.stock, quantity, ErrInsufficientStock)
		}
		m.stock -= quantity
		m.changes.MarkDirty(FieldStock)
	}

	m.orderCount += quantity
	m.changes.MarkDirty(FieldOrderCount)
	m.updatedAt = now.UTC()

	m.recordEvent(&OrderRecordedEvent{
		MenuItemID: m.id,
		Quantity:   quantity,
		OrderCount: m.orderCount,
		Stock:      m.stock,
		RecordedAt: m.updatedAt,
	})
	return nil
}

// recordEvent adds a domain event to the list of events.
func (m *MenuItem) recordEvent(event DomainEvent) {
	m.events = append(m.events, event)
}

// ClearEvents clears all recorded domain events (called after publishing).
func (m *MenuItem) ClearEvents() {
	m.events = nil
}

func validatePrice(field string, price *Money) error {
	if price == nil {
		return NewValidationError(field, "is required")
	}
	if price.IsNegative() {
		return NewValidationError(field, "must be non-negative")
	}
	if price.GreaterThan(MaxPrice) {
		return NewValidationError(field, "must be at most "+MaxPrice.String())
	}
	return nil
}

func validateTags(tags []string) error {
	if len(tags) > MaxTags {
		return NewValidationError(FieldTags, fmt.Sprintf("at most %d tags", MaxTags))
	}
	for _, t := range tags {
		if n := utf8.RuneCountInString(t); n == 0 || n > MaxTagLength {
			return NewValidationError(FieldTags, fmt.Sprintf("each tag must be 1-%d characters", MaxTagLength))
		}
	}
	return nil
}

func validateSizes(sizes []Size) error {
	if len(sizes) > MaxSizes {
		return NewValidationError(FieldSizes, fmt.Sprintf("at most %d sizes", MaxSizes))
	}
	for _, s := range sizes {
		if n := utf8.RuneCountInString(s.Name); n == 0 || n > MaxVariantNameLength {
			return NewValidationError(FieldSizes, fmt.Sprintf("name must be 1-%d characters", MaxVariantNameLength))
		}
		if s.PriceDelta == nil {
			return NewValidationError(FieldSizes, "price delta is required")
		}
	}
	return nil
}

func validateCustomizations(cs []Customization) error {
	if len(cs) > MaxCustomizations {
		return NewValidationError(FieldCustomizations, fmt.Sprintf("at most %d customizations", MaxCustomizations))
	}
	for _, c := range cs {
		if n := utf8.RuneCountInString(c.Name); n == 0 || n > MaxVariantNameLength {
			return NewValidationError(FieldCustomizations, fmt.Sprintf("name must be 1-%d characters", MaxVariantNameLength))
		}
		if c.PriceDelta == nil || c.PriceDelta.IsNegative() {
			return NewValidationError(FieldCustomizations, "price delta must be non-negative")
		}
	}
	return nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func copyDiscounts(ds []*Discount) []*Discount {
	out := make([]*Discount, len(ds))
	for i, d := range ds {
		if d != nil {
			out[i] = d.Copy()
		}
	}
	return out
}
