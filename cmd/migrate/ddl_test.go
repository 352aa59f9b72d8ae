package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitDDLStatements(t *testing.T) {
	content := `
-- menu items
CREATE TABLE menu_items (
  menu_item_id STRING(36) NOT NULL,
) PRIMARY KEY (menu_item_id);

-- search
CREATE SEARCH INDEX menu_items_search ON menu_items(search_tokens);
`

	got := splitDDLStatements(content)

	assert.Equal(t, []string{
		"CREATE TABLE menu_items (\nmenu_item_id STRING(36) NOT NULL,\n) PRIMARY KEY (menu_item_id)",
		"CREATE SEARCH INDEX menu_items_search ON menu_items(search_tokens)",
	}, got)
}

func TestSplitDDLStatements_Empty(t *testing.T) {
	assert.Empty(t, splitDDLStatements("-- nothing here\n\n"))
}

func TestCreatedObject(t *testing.T) {
	tests := []struct {
		stmt string
		want string
	}{
		{"CREATE TABLE menu_items (\n id STRING(36)\n) PRIMARY KEY (id)", "TABLE menu_items"},
		{"create index idx_menu_items_category ON menu_items(category)", "INDEX idx_menu_items_category"},
		{"CREATE UNIQUE NULL_FILTERED INDEX idx_u ON t(c)", "INDEX idx_u"},
		{"CREATE SEARCH INDEX idx_menu_items_search\nON menu_items(search_tokens)", "SEARCH INDEX idx_menu_items_search"},
		{"CREATE TABLE `Reviews` (x INT64) PRIMARY KEY (x)", "TABLE reviews"},
		{"ALTER TABLE menu_items ADD COLUMN x INT64", ""},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, createdObject(tt.stmt))
		})
	}
}

func TestPendingStatements(t *testing.T) {
	statements := []string{
		"CREATE TABLE menu_items (id STRING(36)) PRIMARY KEY (id)",
		"CREATE INDEX idx_menu_items_category ON menu_items(category)",
		"CREATE TABLE reviews (id STRING(36)) PRIMARY KEY (id)",
		"ALTER TABLE menu_items ADD COLUMN x INT64",
	}
	existing := []string{
		"CREATE TABLE menu_items (\n  id STRING(36),\n) PRIMARY KEY(id)",
		"CREATE INDEX idx_menu_items_category ON menu_items(category)",
	}

	assert.Equal(t, []string{statements[2], statements[3]}, pendingStatements(statements, existing))
	assert.Equal(t, statements, pendingStatements(statements, nil))
}
