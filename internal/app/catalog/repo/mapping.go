package repo

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
	"github.com/light-bringer/menucat-service/internal/models/m_menu_item"
)

// dataToDomain reconstructs an aggregate from a stored row.
func dataToDomain(data *m_menu_item.Data) (*domain.MenuItem, error) {
	discounts, err := decodeDiscounts(data)
	if err != nil {
		return nil, err
	}
	sizes, err := decodeSizes(data)
	if err != nil {
		return nil, err
	}
	customizations, err := decodeCustomizations(data)
	if err != nil {
		return nil, err
	}

	dietary := make([]domain.DietaryTag, len(data.DietaryTags))
	for i, t := range data.DietaryTags {
		dietary[i] = domain.DietaryTag(t)
	}
	allergens := make([]domain.Allergen, len(data.Allergens))
	for i, a := range data.Allergens {
		allergens[i] = domain.Allergen(a)
	}

	return domain.ReconstructMenuItem(domain.MenuItemSnapshot{
		MenuItemParams: domain.MenuItemParams{
			ID:              data.MenuItemID,
			Name:            data.Name,
			Description:     data.Description,
			Price:           domain.NewMoneyFromRat(&data.Price),
			OriginalPrice:   domain.NewMoneyFromRat(&data.OriginalPrice),
			Category:        domain.Category(data.Category),
			IsAvailable:     data.IsAvailable,
			IsFeatured:      data.IsFeatured,
			IsPopular:       data.IsPopular,
			Stock:           data.Stock,
			PreparationTime: data.PreparationTime,
			Difficulty:      domain.Difficulty(data.Difficulty),
			Discounts:       discounts,
			Tags:            data.Tags,
			DietaryTags:     dietary,
			Allergens:       allergens,
			Sizes:           sizes,
			Customizations:  customizations,
			CreatedBy:       data.CreatedBy,
		},
		Rating:     domain.RatingSummary{Average: data.RatingAverage, Count: data.RatingCount},
		OrderCount: data.OrderCount,
		Version:    data.Version,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}), nil
}

// domainToData converts an aggregate to a full row.
func domainToData(item *domain.MenuItem) *m_menu_item.Data {
	data := &m_menu_item.Data{
		MenuItemID:      item.ID(),
		Name:            item.Name(),
		Description:     item.Description(),
		Category:        string(item.Category()),
		IsAvailable:     item.IsAvailable(),
		IsFeatured:      item.IsFeatured(),
		IsPopular:       item.IsPopular(),
		Stock:           item.Stock(),
		PreparationTime: item.PreparationTime(),
		Difficulty:      string(item.Difficulty()),
		Discounts:       m_menu_item.EncodeJSON(encodeDiscounts(item.Discounts())),
		RatingAverage:   item.Rating().Average,
		RatingCount:     item.Rating().Count,
		OrderCount:      item.OrderCount(),
		Tags:            item.Tags(),
		DietaryTags:     domain.Strings(item.DietaryTags()),
		Allergens:       domain.Strings(item.Allergens()),
		Sizes:           m_menu_item.EncodeJSON(encodeSizes(item.Sizes())),
		Customizations:  m_menu_item.EncodeJSON(encodeCustomizations(item.Customizations())),
		CreatedBy:       item.CreatedBy(),
		Version:         item.Version(),
		CreatedAt:       item.CreatedAt(),
		UpdatedAt:       item.UpdatedAt(),
	}
	data.Price.Set(item.Price().Rat())
	data.OriginalPrice.Set(item.OriginalPrice().Rat())
	return data
}

func encodeDiscounts(ds []*domain.Discount) []m_menu_item.DiscountJSON {
	out := make([]m_menu_item.DiscountJSON, len(ds))
	for i, d := range ds {
		out[i] = m_menu_item.DiscountJSON{
			Kind:     string(d.Kind()),
			Value:    d.Value().String(),
			StartsAt: d.StartsAt(),
			EndsAt:   d.EndsAt(),
			Active:   d.Active(),
		}
	}
	return out
}

func decodeDiscounts(data *m_menu_item.Data) ([]*domain.Discount, error) {
	var raw []m_menu_item.DiscountJSON
	if err := m_menu_item.DecodeJSON(data.Discounts, &raw); err != nil {
		return nil, fmt.Errorf("menu item %s discounts: %w", data.MenuItemID, err)
	}

	out := make([]*domain.Discount, 0, len(raw))
	for i, r := range raw {
		value, err := decimal.NewFromString(r.Value)
		if err != nil {
			return nil, fmt.Errorf("menu item %s discount %d value: %w", data.MenuItemID, i, err)
		}
		d, err := domain.NewDiscount(domain.DiscountKind(r.Kind), value, r.StartsAt, r.EndsAt, r.Active)
		if err != nil {
			return nil, fmt.Errorf("menu item %s discount %d: %w", data.MenuItemID, i, err)
		}
		out = append(out, d)
	}
	return out, nil
}

func encodeSizes(sizes []domain.Size) []m_menu_item.SizeJSON {
	out := make([]m_menu_item.SizeJSON, len(sizes))
	for i, s := range sizes {
		out[i] = m_menu_item.SizeJSON{Name: s.Name, PriceDelta: s.PriceDelta.Rat().FloatString(2)}
	}
	return out
}

func decodeSizes(data *m_menu_item.Data) ([]domain.Size, error) {
	var raw []m_menu_item.SizeJSON
	if err := m_menu_item.DecodeJSON(data.Sizes, &raw); err != nil {
		return nil, fmt.Errorf("menu item %s sizes: %w", data.MenuItemID, err)
	}

	out := make([]domain.Size, 0, len(raw))
	for _, r := range raw {
		delta, err := domain.ParseMoney(r.PriceDelta)
		if err != nil {
			return nil, fmt.Errorf("menu item %s size %q: %w", data.MenuItemID, r.Name, err)
		}
		out = append(out, domain.Size{Name: r.Name, PriceDelta: delta})
	}
	return out, nil
}

func encodeCustomizations(cs []domain.Customization) []m_menu_item.CustomizationJSON {
	out := make([]m_menu_item.CustomizationJSON, len(cs))
	for i, c := range cs {
		out[i] = m_menu_item.CustomizationJSON{
			Name:       c.Name,
			Options:    c.Options,
			PriceDelta: c.PriceDelta.Rat().FloatString(2),
		}
	}
	return out
}

func decodeCustomizations(data *m_menu_item.Data) ([]domain.Customization, error) {
	var raw []m_menu_item.CustomizationJSON
	if err := m_menu_item.DecodeJSON(data.Customizations, &raw); err != nil {
		return nil, fmt.Errorf("menu item %s customizations: %w", data.MenuItemID, err)
	}

	out := make([]domain.Customization, 0, len(raw))
	for _, r := range raw {
		delta, err := domain.ParseMoney(r.PriceDelta)
		if err != nil {
			return nil, fmt.Errorf("menu item %s customization %q: %w", data.MenuItemID, r.Name, err)
		}
		out = append(out, domain.Customization{Name: r.Name, Options: r.Options, PriceDelta: delta})
	}
	return out, nil
}
