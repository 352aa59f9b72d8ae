package contracts

import (
	"context"
	"time"

	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
	"github.com/light-bringer/menucat-service/internal/app/catalog/search"
)

// DiscountDTO is a discount as shown to API clients.
type DiscountDTO struct {
	Kind     string     `json:"kind"`
	Value    float64    `json:"value"`
	StartsAt *time.Time `json:"starts_at,omitempty"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
	Active   bool       `json:"active"`
}

// SizeDTO is a serving size.
type SizeDTO struct {
	Name       string  `json:"name"`
	PriceDelta float64 `json:"price_delta"`
}

// CustomizationDTO is a modifier group.
type CustomizationDTO struct {
	Name       string   `json:"name"`
	Options    []string `json:"options"`
	PriceDelta float64  `json:"price_delta"`
}

// RatingDTO is the cached rating summary.
type RatingDTO struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// MenuItemDTO is the read-side view of a menu item. Prices are rounded to
// cents; EffectivePrice, DiscountPercentage and IsNew are resolved at read time.
type MenuItemDTO struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Description        string             `json:"description"`
	Category           string             `json:"category"`
	Price              float64            `json:"price"`
	OriginalPrice      float64            `json:"original_price"`
	EffectivePrice     float64            `json:"effective_price"`
	DiscountPercentage int64              `json:"discount_percentage"`
	IsAvailable        bool               `json:"is_available"`
	IsFeatured         bool               `json:"is_featured"`
	IsPopular          bool               `json:"is_popular"`
	IsNew              bool               `json:"is_new"`
	Stock              int64              `json:"stock"`
	PreparationTime    int64              `json:"preparation_time"`
	Difficulty         string             `json:"difficulty"`
	Discounts          []DiscountDTO      `json:"discounts"`
	Rating             RatingDTO          `json:"rating"`
	OrderCount         int64              `json:"order_count"`
	Tags               []string           `json:"tags"`
	DietaryTags        []string           `json:"dietary_tags"`
	Allergens          []string           `json:"allergens"`
	Sizes              []SizeDTO          `json:"sizes"`
	Customizations     []CustomizationDTO `json:"customizations"`
	CreatedBy          string             `json:"created_by"`
	Version            int64              `json:"version"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// NewMenuItemDTO builds the read view of item as of now.
func NewMenuItemDTO(item *domain.MenuItem, now time.Time) *MenuItemDTO {
	quote := item.Quote(now)

	dto := &MenuItemDTO{
		ID:                 item.ID(),
		Name:               item.Name(),
		Description:        item.Description(),
		Category:           string(item.Category()),
		Price:              item.Price().Float64(),
		OriginalPrice:      item.OriginalPrice().Float64(),
		EffectivePrice:     quote.EffectivePrice.Float64(),
		DiscountPercentage: quote.DiscountPercentage,
		IsAvailable:        item.IsAvailable(),
		IsFeatured:         item.IsFeatured(),
		IsPopular:          item.IsPopular(),
		IsNew:              item.IsNew(now),
		Stock:              item.Stock(),
		PreparationTime:    item.PreparationTime(),
		Difficulty:         string(item.Difficulty()),
		Rating:             RatingDTO{Average: item.Rating().Average, Count: item.Rating().Count},
		OrderCount:         item.OrderCount(),
		Tags:               nonNil(item.Tags()),
		DietaryTags:        nonNil(domain.Strings(item.DietaryTags())),
		Allergens:          nonNil(domain.Strings(item.Allergens())),
		Discounts:          []DiscountDTO{},
		Sizes:              []SizeDTO{},
		Customizations:     []CustomizationDTO{},
		CreatedBy:          item.CreatedBy(),
		Version:            item.Version(),
		CreatedAt:          item.CreatedAt(),
		UpdatedAt:          item.UpdatedAt(),
	}

	for _, d := range item.Discounts() {
		dto.Discounts = append(dto.Discounts, DiscountDTO{
			Kind:     string(d.Kind()),
			Value:    d.Value().InexactFloat64(),
			StartsAt: d.StartsAt(),
			EndsAt:   d.EndsAt(),
			Active:   d.Active(),
		})
	}
	for _, s := range item.Sizes() {
		dto.Sizes = append(dto.Sizes, SizeDTO{Name: s.Name, PriceDelta: s.PriceDelta.Float64()})
	}
	for _, c := range item.Customizations() {
		dto.Customizations = append(dto.Customizations, CustomizationDTO{
			Name:       c.Name,
			Options:    nonNil(c.Options),
			PriceDelta: c.PriceDelta.Float64(),
		})
	}
	return dto
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// SearchResult is one page of search results.
type SearchResult struct {
	Items        []*MenuItemDTO
	Page         int64
	PageSize     int64
	TotalMatched int64
}

// ReadModel defines menu queries. Read models bypass the aggregate and
// always exclude unavailable items from listings.
type ReadModel interface {
	GetByID(ctx context.Context, menuItemID string) (*MenuItemDTO, error)
	Search(ctx context.Context, plan *search.Plan) (*SearchResult, error)
	ListFeatured(ctx context.Context, limit int64) ([]*MenuItemDTO, error)
	ListPopular(ctx context.Context, limit int64) ([]*MenuItemDTO, error)
	ListNew(ctx context.Context, since time.Time, limit int64) ([]*MenuItemDTO, error)
	CategoryStatistics(ctx context.Context) ([]domain.CategoryStatistics, error)
}
