package m_outbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMenuItemEvent(t *testing.T) {
	assert.True(t, IsMenuItemEvent("menu_item.price_changed"))
	assert.True(t, IsMenuItemEvent("menu_item.ordered"))
	assert.False(t, IsMenuItemEvent("menu_item."))
	assert.False(t, IsMenuItemEvent("product.created"))
	assert.False(t, IsMenuItemEvent(""))
}

func TestKnownStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusProcessing, StatusCompleted, StatusFailed} {
		assert.True(t, KnownStatus(s), s)
	}
	assert.False(t, KnownStatus("done"))
	assert.False(t, KnownStatus(""))
}

func TestColumnsMatchData(t *testing.T) {
	assert.Equal(t, []string{
		"event_id", "event_type", "aggregate_id", "payload", "status",
		"created_at", "processed_at", "retry_count", "error_message",
	}, Columns())
}
