package m_menu_item

// Field name constants for the menu_items table.
const (
	TableName = "menu_items"

	MenuItemID      = "menu_item_id"
	Name            = "name"
	Description     = "description"
	Price           = "price"
	OriginalPrice   = "original_price"
	Category        = "category"
	IsAvailable     = "is_available"
	IsFeatured      = "is_featured"
	IsPopular       = "is_popular"
	Stock           = "stock"
	PreparationTime = "preparation_time"
	Difficulty      = "difficulty"
	Discounts       = "discounts"
	RatingAverage   = "rating_average"
	RatingCount     = "rating_count"
	OrderCount      = "order_count"
	Tags            = "tags"
	DietaryTags     = "dietary_tags"
	Allergens       = "allergens"
	Sizes           = "sizes"
	Customizations  = "customizations"
	CreatedBy       = "created_by"
	Version         = "version"
	CreatedAt       = "created_at"
	UpdatedAt       = "updated_at"

	// SearchTokens is the hidden TOKENLIST over name and description.
	SearchTokens = "search_tokens"
)

// Columns lists every readable column in Data field order.
func Columns() []string {
	return []string{
		MenuItemID,
		Name,
		Description,
		Price,
		OriginalPrice,
		Category,
		IsAvailable,
		IsFeatured,
		IsPopular,
		Stock,
		PreparationTime,
		Difficulty,
		Discounts,
		RatingAverage,
		RatingCount,
		OrderCount,
		Tags,
		DietaryTags,
		Allergens,
		Sizes,
		Customizations,
		CreatedBy,
		Version,
		CreatedAt,
		UpdatedAt,
	}
}
