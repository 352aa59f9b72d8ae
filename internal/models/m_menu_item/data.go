package m_menu_item

import (
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the menu_items table.
type Data struct {
	MenuItemID      string           `spanner:"menu_item_id"`
	Name            string           `spanner:"name"`
	Description     string           `spanner:"description"`
	Price           big.Rat          `spanner:"price"`
	OriginalPrice   big.Rat          `spanner:"original_price"`
	Category        string           `spanner:"category"`
	IsAvailable     bool             `spanner:"is_available"`
	IsFeatured      bool             `spanner:"is_featured"`
	IsPopular       bool             `spanner:"is_popular"`
	Stock           int64            `spanner:"stock"`
	PreparationTime int64            `spanner:"preparation_time"`
	Difficulty      string           `spanner:"difficulty"`
	Discounts       spanner.NullJSON `spanner:"discounts"`
	RatingAverage   float64          `spanner:"rating_average"`
	RatingCount     int64            `spanner:"rating_count"`
	OrderCount      int64            `spanner:"order_count"`
	Tags            []string         `spanner:"tags"`
	DietaryTags     []string         `spanner:"dietary_tags"`
	Allergens       []string         `spanner:"allergens"`
	Sizes           spanner.NullJSON `spanner:"sizes"`
	Customizations  spanner.NullJSON `spanner:"customizations"`
	CreatedBy       string           `spanner:"created_by"`
	Version         int64            `spanner:"version"`
	CreatedAt       time.Time        `spanner:"created_at"`
	UpdatedAt       time.Time        `spanner:"updated_at"`
}

// DiscountJSON is one element of the discounts JSON array.
// Amounts are decimal strings so no precision is lost in JSON.
type DiscountJSON struct {
	Kind     string     `json:"kind"`
	Value    string     `json:"value"`
	StartsAt *time.Time `json:"starts_at,omitempty"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
	Active   bool       `json:"active"`
}

// SizeJSON is one element of the sizes JSON array.
type SizeJSON struct {
	Name       string `json:"name"`
	PriceDelta string `json:"price_delta"`
}

// CustomizationJSON is one element of the customizations JSON array.
type CustomizationJSON struct {
	Name       string   `json:"name"`
	Options    []string `json:"options,omitempty"`
	PriceDelta string   `json:"price_delta"`
}

// EncodeJSON wraps v for a JSON column. Nil slices are stored as [].
func EncodeJSON[T any](v []T) spanner.NullJSON {
	if v == nil {
		v = []T{}
	}
	return spanner.NullJSON{Value: v, Valid: true}
}

// DecodeJSON decodes a JSON column into out. A NULL column leaves out untouched.
func DecodeJSON(col spanner.NullJSON, out interface{}) error {
	if !col.Valid || col.Value == nil {
		return nil
	}
	raw, err := json.Marshal(col.Value)
	if err != nil {
		return fmt.Errorf("re-encode json column: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode json column: %w", err)
	}
	return nil
}
