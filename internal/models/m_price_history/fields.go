package m_price_history

// Table name constant
const TableName = "price_history"

// Field name constants for type-safe database access
const (
	HistoryID     = "history_id"
	MenuItemID    = "menu_item_id"
	OldPrice      = "old_price"
	NewPrice      = "new_price"
	ChangedBy     = "changed_by"
	ChangedReason = "changed_reason"
	ChangedAt     = "changed_at"
)
