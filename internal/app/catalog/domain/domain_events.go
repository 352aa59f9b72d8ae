package domain

import "time"

// DomainEvent is the base interface for all domain events.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// Event type names written to the outbox.
const (
	EventMenuItemCreated     = "menu_item.created"
	EventMenuItemUpdated     = "menu_item.updated"
	EventPriceChanged        = "menu_item.price_changed"
	EventAvailabilityChanged = "menu_item.availability_changed"
	EventDiscountAdded       = "menu_item.discount_added"
	EventDiscountRemoved     = "menu_item.discount_removed"
	EventRatingRecalculated  = "menu_item.rating_recalculated"
	EventOrderRecorded       = "menu_item.ordered"
)

// MenuItemCreatedEvent is emitted when a menu item is created.
type MenuItemCreatedEvent struct {
	MenuItemID string    `json:"menu_item_id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Price      string    `json:"price"`
	CreatedBy  string    `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
}

func (e *MenuItemCreatedEvent) EventType() string   { return EventMenuItemCreated }
func (e *MenuItemCreatedEvent) AggregateID() string { return e.MenuItemID }

// MenuItemUpdatedEvent lists the fields changed by a partial update.
type MenuItemUpdatedEvent struct {
	MenuItemID string    `json:"menu_item_id"`
	Fields     []string  `json:"fields"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (e *MenuItemUpdatedEvent) EventType() string   { return EventMenuItemUpdated }
func (e *MenuItemUpdatedEvent) AggregateID() string { return e.MenuItemID }

// PriceChangedEvent is emitted when the base price changes.
type PriceChangedEvent struct {
	MenuItemID string    `json:"menu_item_id"`
	OldPrice   string    `json:"old_price"`
	NewPrice   string    `json:"new_price"`
	ChangedAt  time.Time `json:"changed_at"`
}

func (e *PriceChangedEvent) EventType() string   { return EventPriceChanged }
func (e *PriceChangedEvent) AggregateID() string { return e.MenuItemID }

// AvailabilityChangedEvent is emitted when an item goes on or off the menu.
type AvailabilityChangedEvent struct {
	MenuItemID  string    `json:"menu_item_id"`
	IsAvailable bool      `json:"is_available"`
	ChangedAt   time.Time `json:"changed_at"`
}

func (e *AvailabilityChangedEvent) EventType() string   { return EventAvailabilityChanged }
func (e *AvailabilityChangedEvent) AggregateID() string { return e.MenuItemID }

// DiscountAddedEvent is emitted when a discount is appended.
type DiscountAddedEvent struct {
	MenuItemID string     `json:"menu_item_id"`
	Position   int        `json:"position"`
	Kind       string     `json:"kind"`
	Value      string     `json:"value"`
	StartsAt   *time.Time `json:"starts_at,omitempty"`
	EndsAt     *time.Time `json:"ends_at,omitempty"`
	Active     bool       `json:"active"`
	AddedAt    time.Time  `json:"added_at"`
}

func (e *DiscountAddedEvent) EventType() string   { return EventDiscountAdded }
func (e *DiscountAddedEvent) AggregateID() string { return e.MenuItemID }

// DiscountRemovedEvent is emitted when a discount is removed.
type DiscountRemovedEvent struct {
	MenuItemID string    `json:"menu_item_id"`
	Position   int       `json:"position"`
	RemovedAt  time.Time `json:"removed_at"`
}

func (e *DiscountRemovedEvent) EventType() string   { return EventDiscountRemoved }
func (e *DiscountRemovedEvent) AggregateID() string { return e.MenuItemID }

// RatingRecalculatedEvent carries the new rating summary.
type RatingRecalculatedEvent struct {
	MenuItemID   string    `json:"menu_item_id"`
	Average      float64   `json:"average"`
	Count        int64     `json:"count"`
	RecomputedAt time.Time `json:"recomputed_at"`
}

func (e *RatingRecalculatedEvent) EventType() string   { return EventRatingRecalculated }
func (e *RatingRecalculatedEvent) AggregateID() string { return e.MenuItemID }

// OrderRecordedEvent is emitted when an order is counted against an item.
type OrderRecordedEvent struct {
	MenuItemID string    `json:"menu_item_id"`
	Quantity   int64     `json:"quantity"`
	OrderCount int64     `json:"order_count"`
	Stock      int64     `json:"stock"`
	RecordedAt time.Time `json:"recorded_at"`
}

func (e *OrderRecordedEvent) EventType() string   { return EventOrderRecorded }
func (e *OrderRecordedEvent) AggregateID() string { return e.MenuItemID }
