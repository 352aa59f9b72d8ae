package m_outbox

import "strings"

// Column names of outbox_events, the change feed of the menu. Every row is
// one menu item event; aggregate_id holds the id of the item it concerns.
const (
	TableName = "outbox_events"

	EventID      = "event_id"
	EventType    = "event_type"
	AggregateID  = "aggregate_id"
	Payload      = "payload"
	Status       = "status"
	CreatedAt    = "created_at"
	ProcessedAt  = "processed_at"
	RetryCount   = "retry_count"
	ErrorMessage = "error_message"
)

// MenuItemEventPrefix namespaces every event type the catalog emits,
// e.g. menu_item.price_changed.
const MenuItemEventPrefix = "menu_item."

// Delivery states of a menu item event. The catalog only writes pending
// rows; a downstream relay moves them forward.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Columns lists every column in Data field order.
func Columns() []string {
	return []string{EventID, EventType, AggregateID, Payload, Status, CreatedAt, ProcessedAt, RetryCount, ErrorMessage}
}

// IsMenuItemEvent reports whether eventType belongs to the menu item namespace.
func IsMenuItemEvent(eventType string) bool {
	return strings.HasPrefix(eventType, MenuItemEventPrefix) && len(eventType) > len(MenuItemEventPrefix)
}

// KnownStatus reports whether s is a delivery state a row can be in.
func KnownStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}
