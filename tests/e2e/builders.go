//go:build integration

package e2e

// MenuItemBuilder helps create menu item request bodies with a fluent interface.
type MenuItemBuilder struct {
	body map[string]interface{}
}

// NewMenuItemBuilder creates a new builder with default values.
func NewMenuItemBuilder() *MenuItemBuilder {
	return &MenuItemBuilder{body: map[string]interface{}{
		"name":             "Flat White",
		"description":      "Double ristretto with steamed milk",
		"price":            "4.50",
		"category":         "coffee",
		"preparation_time": 4,
		"dietary_tags":     []string{"vegetarian"},
		"allergens":        []string{"dairy"},
		"created_by":       "admin-1",
	}}
}

// WithName sets the item name.
func (b *MenuItemBuilder) WithName(name string) *MenuItemBuilder {
	b.body["name"] = name
	return b
}

// WithDescription sets the item description.
func (b *MenuItemBuilder) WithDescription(description string) *MenuItemBuilder {
	b.body["description"] = description
	return b
}

// WithCategory sets the item category.
func (b *MenuItemBuilder) WithCategory(category string) *MenuItemBuilder {
	b.body["category"] = category
	return b
}

// WithPrice sets the price as a decimal string.
func (b *MenuItemBuilder) WithPrice(price string) *MenuItemBuilder {
	b.body["price"] = price
	return b
}

// WithOriginalPrice sets the original (pre-markdown) price.
func (b *MenuItemBuilder) WithOriginalPrice(price string) *MenuItemBuilder {
	b.body["original_price"] = price
	return b
}

// WithStock sets a finite stock.
func (b *MenuItemBuilder) WithStock(stock int64) *MenuItemBuilder {
	b.body["stock"] = stock
	return b
}

// WithAllergens replaces the allergen list.
func (b *MenuItemBuilder) WithAllergens(allergens ...string) *MenuItemBuilder {
	b.body["allergens"] = allergens
	return b
}

// WithDietaryTags replaces the dietary tags.
func (b *MenuItemBuilder) WithDietaryTags(tags ...string) *MenuItemBuilder {
	b.body["dietary_tags"] = tags
	return b
}

// Featured marks the item featured.
func (b *MenuItemBuilder) Featured() *MenuItemBuilder {
	b.body["is_featured"] = true
	return b
}

// Unavailable marks the item unavailable.
func (b *MenuItemBuilder) Unavailable() *MenuItemBuilder {
	b.body["is_available"] = false
	return b
}

// WithDiscount appends a discount.
func (b *MenuItemBuilder) WithDiscount(kind string, value float64) *MenuItemBuilder {
	discounts, _ := b.body["discounts"].([]map[string]interface{})
	b.body["discounts"] = append(discounts, map[string]interface{}{"kind": kind, "value": value})
	return b
}

// Build returns the JSON body.
func (b *MenuItemBuilder) Build() map[string]interface{} {
	return b.body
}
