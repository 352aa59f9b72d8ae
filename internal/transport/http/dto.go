package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/menucat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
	"github.com/light-bringer/menucat-service/internal/app/catalog/usecases/create_menu_item"
	"github.com/light-bringer/menucat-service/internal/app/catalog/usecases/update_menu_item"
)

// Money is accepted as either a JSON number or a decimal string.

type sizeInput struct {
	Name       string          `json:"name"`
	PriceDelta decimal.Decimal `json:"price_delta"`
}

type customizationInput struct {
	Name       string          `json:"name"`
	Options    []string        `json:"options"`
	PriceDelta decimal.Decimal `json:"price_delta"`
}

type discountInput struct {
	Kind     string          `json:"kind"`
	Value    decimal.Decimal `json:"value"`
	StartsAt *time.Time      `json:"starts_at,omitempty"`
	EndsAt   *time.Time      `json:"ends_at,omitempty"`
	Active   *bool           `json:"active,omitempty"`
}

// isActive defaults to true when the client omits the flag.
func (d discountInput) isActive() bool {
	return d.Active == nil || *d.Active
}

func (d discountInput) toDomain() (*domain.Discount, error) {
	kind, err := domain.ParseDiscountKind(d.Kind)
	if err != nil {
		return nil, err
	}
	return domain.NewDiscount(kind, d.Value, d.StartsAt, d.EndsAt, d.isActive())
}

type createMenuItemBody struct {
	Name            string               `json:"name"`
	Description     string               `json:"description"`
	Price           *decimal.Decimal     `json:"price"`
	OriginalPrice   *decimal.Decimal     `json:"original_price,omitempty"`
	Category        string               `json:"category"`
	IsAvailable     *bool                `json:"is_available,omitempty"`
	IsFeatured      bool                 `json:"is_featured"`
	IsPopular       bool                 `json:"is_popular"`
	Stock           *int64               `json:"stock,omitempty"`
	PreparationTime int64                `json:"preparation_time"`
	Difficulty      string               `json:"difficulty"`
	Discounts       []discountInput      `json:"discounts"`
	Tags            []string             `json:"tags"`
	DietaryTags     []string             `json:"dietary_tags"`
	Allergens       []string             `json:"allergens"`
	Sizes           []sizeInput          `json:"sizes"`
	Customizations  []customizationInput `json:"customizations"`
	CreatedBy       string               `json:"created_by"`
}

func (b *createMenuItemBody) toRequest() (*create_menu_item.Request, error) {
	if b.Price == nil {
		return nil, domain.NewValidationError(domain.FieldPrice, "is required")
	}

	discounts := make([]*domain.Discount, 0, len(b.Discounts))
	for _, in := range b.Discounts {
		d, err := in.toDomain()
		if err != nil {
			return nil, err
		}
		discounts = append(discounts, d)
	}

	return &create_menu_item.Request{
		Name:            b.Name,
		Description:     b.Description,
		Price:           domain.NewMoneyFromDecimal(*b.Price),
		OriginalPrice:   optionalMoney(b.OriginalPrice),
		Category:        b.Category,
		IsAvailable:     b.IsAvailable,
		IsFeatured:      b.IsFeatured,
		IsPopular:       b.IsPopular,
		Stock:           b.Stock,
		PreparationTime: b.PreparationTime,
		Difficulty:      b.Difficulty,
		Discounts:       discounts,
		Tags:            b.Tags,
		DietaryTags:     b.DietaryTags,
		Allergens:       b.Allergens,
		Sizes:           toSizes(b.Sizes),
		Customizations:  toCustomizations(b.Customizations),
		CreatedBy:       b.CreatedBy,
	}, nil
}

// updateMenuItemBody is a partial update. Omitted fields are left unchanged.
type updateMenuItemBody struct {
	Version         *int64                `json:"version,omitempty"`
	Name            *string               `json:"name,omitempty"`
	Description     *string               `json:"description,omitempty"`
	OriginalPrice   *decimal.Decimal      `json:"original_price,omitempty"`
	Category        *string               `json:"category,omitempty"`
	IsAvailable     *bool                 `json:"is_available,omitempty"`
	IsFeatured      *bool                 `json:"is_featured,omitempty"`
	IsPopular       *bool                 `json:"is_popular,omitempty"`
	Stock           *int64                `json:"stock,omitempty"`
	PreparationTime *int64                `json:"preparation_time,omitempty"`
	Difficulty      *string               `json:"difficulty,omitempty"`
	Tags            *[]string             `json:"tags,omitempty"`
	DietaryTags     *[]string             `json:"dietary_tags,omitempty"`
	Allergens       *[]string             `json:"allergens,omitempty"`
	Sizes           *[]sizeInput          `json:"sizes,omitempty"`
	Customizations  *[]customizationInput `json:"customizations,omitempty"`
}

func (b *updateMenuItemBody) toRequest(id string) *update_menu_item.Request {
	req := &update_menu_item.Request{
		MenuItemID:      id,
		ExpectedVersion: b.Version,
		Name:            b.Name,
		Description:     b.Description,
		OriginalPrice:   optionalMoney(b.OriginalPrice),
		Category:        b.Category,
		IsAvailable:     b.IsAvailable,
		IsFeatured:      b.IsFeatured,
		IsPopular:       b.IsPopular,
		Stock:           b.Stock,
		PreparationTime: b.PreparationTime,
		Difficulty:      b.Difficulty,
		Tags:            b.Tags,
		DietaryTags:     b.DietaryTags,
		Allergens:       b.Allergens,
	}
	if b.Sizes != nil {
		sizes := toSizes(*b.Sizes)
		req.Sizes = &sizes
	}
	if b.Customizations != nil {
		cs := toCustomizations(*b.Customizations)
		req.Customizations = &cs
	}
	return req
}

type updatePriceBody struct {
	Price     *decimal.Decimal `json:"price"`
	ChangedBy string           `json:"changed_by"`
	Reason    string           `json:"reason,omitempty"`
}

type ratingBody struct {
	Rating     float64 `json:"rating"`
	ReviewerID string  `json:"reviewer_id,omitempty"`
	Comment    string  `json:"comment,omitempty"`
}

type orderBody struct {
	Quantity int64 `json:"quantity"`
}

func optionalMoney(d *decimal.Decimal) *domain.Money {
	if d == nil {
		return nil
	}
	return domain.NewMoneyFromDecimal(*d)
}

func toSizes(in []sizeInput) []domain.Size {
	out := make([]domain.Size, 0, len(in))
	for _, s := range in {
		out = append(out, domain.Size{Name: s.Name, PriceDelta: domain.NewMoneyFromDecimal(s.PriceDelta)})
	}
	return out
}

func toCustomizations(in []customizationInput) []domain.Customization {
	out := make([]domain.Customization, 0, len(in))
	for _, c := range in {
		out = append(out, domain.Customization{
			Name:       c.Name,
			Options:    c.Options,
			PriceDelta: domain.NewMoneyFromDecimal(c.PriceDelta),
		})
	}
	return out
}

// Responses.

type searchResponse struct {
	Items      []*contracts.MenuItemDTO `json:"items"`
	Page       int64                    `json:"page"`
	PageSize   int64                    `json:"page_size"`
	TotalCount int64                    `json:"total_count"`
	TotalPages int64                    `json:"total_pages"`
}

func newSearchResponse(res *contracts.SearchResult) searchResponse {
	resp := searchResponse{
		Items:      res.Items,
		Page:       res.Page,
		PageSize:   res.PageSize,
		TotalCount: res.TotalMatched,
	}
	if resp.Items == nil {
		resp.Items = []*contracts.MenuItemDTO{}
	}
	if res.PageSize > 0 {
		resp.TotalPages = (res.TotalMatched + res.PageSize - 1) / res.PageSize
	}
	return resp
}

type listResponse struct {
	Items []*contracts.MenuItemDTO `json:"items"`
}

func newListResponse(items []*contracts.MenuItemDTO) listResponse {
	if items == nil {
		items = []*contracts.MenuItemDTO{}
	}
	return listResponse{Items: items}
}

type appliedDiscount struct {
	Kind  string  `json:"kind"`
	Value float64 `json:"value"`
}

type priceQuoteResponse struct {
	MenuItemID         string           `json:"menu_item_id"`
	BasePrice          float64          `json:"base_price"`
	EffectivePrice     float64          `json:"effective_price"`
	DiscountPercentage int64            `json:"discount_percentage"`
	AppliedDiscount    *appliedDiscount `json:"applied_discount,omitempty"`
	EvaluatedAt        time.Time        `json:"evaluated_at"`
}

func newPriceQuoteResponse(id string, q domain.PriceQuote) priceQuoteResponse {
	resp := priceQuoteResponse{
		MenuItemID:         id,
		BasePrice:          q.BasePrice.Float64(),
		EffectivePrice:     q.EffectivePrice.Float64(),
		DiscountPercentage: q.DiscountPercentage,
		EvaluatedAt:        q.EvaluatedAt,
	}
	if q.HasDiscount() {
		resp.AppliedDiscount = &appliedDiscount{
			Kind:  string(q.AppliedDiscount.Kind()),
			Value: q.AppliedDiscount.Value().InexactFloat64(),
		}
	}
	return resp
}

type priceChange struct {
	HistoryID     string    `json:"history_id"`
	OldPrice      *float64  `json:"old_price"`
	NewPrice      float64   `json:"new_price"`
	ChangedBy     string    `json:"changed_by"`
	ChangedReason string    `json:"changed_reason,omitempty"`
	ChangedAt     time.Time `json:"changed_at"`
}

type priceHistoryResponse struct {
	MenuItemID string        `json:"menu_item_id"`
	Changes    []priceChange `json:"changes"`
}

func newPriceHistoryResponse(id string, changes []contracts.PriceChange) priceHistoryResponse {
	resp := priceHistoryResponse{MenuItemID: id, Changes: make([]priceChange, 0, len(changes))}
	for _, c := range changes {
		pc := priceChange{
			HistoryID:     c.HistoryID,
			NewPrice:      c.NewPrice.Float64(),
			ChangedBy:     c.ChangedBy,
			ChangedReason: c.ChangedReason,
			ChangedAt:     c.ChangedAt,
		}
		if c.OldPrice != nil {
			old := c.OldPrice.Float64()
			pc.OldPrice = &old
		}
		resp.Changes = append(resp.Changes, pc)
	}
	return resp
}

type categoryStatistic struct {
	Category       string  `json:"category"`
	Count          int64   `json:"count"`
	AveragePrice   float64 `json:"average_price"`
	AvailableCount int64   `json:"available_count"`
}

type statisticsResponse struct {
	Categories []categoryStatistic `json:"categories"`
	TotalItems int64               `json:"total_items"`
	Cached     bool                `json:"cached"`
}
