package repo

import (
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestItem(t *testing.T, mutate func(p *domain.MenuItemParams)) *domain.MenuItem {
	t.Helper()

	start := testNow.Add(-time.Hour)
	discount, err := domain.NewDiscount(domain.DiscountPercentage, decimal.NewFromInt(20), &start, nil, true)
	require.NoError(t, err)

	p := domain.MenuItemParams{
		ID:              "item-1",
		Name:            "Cortado",
		Description:     "Espresso cut with warm milk",
		Price:           domain.MustMoney(375, 100),
		OriginalPrice:   domain.MustMoney(400, 100),
		Category:        domain.CategoryCoffee,
		IsAvailable:     true,
		IsFeatured:      true,
		Stock:           12,
		PreparationTime: 3,
		Difficulty:      domain.DifficultyMedium,
		Discounts:       []*domain.Discount{discount},
		Tags:            []string{"espresso"},
		DietaryTags:     []domain.DietaryTag{domain.DietVegetarian},
		Allergens:       []domain.Allergen{domain.AllergenDairy},
		Sizes:           []domain.Size{{Name: "double", PriceDelta: domain.MustMoney(75, 100)}},
		Customizations: []domain.Customization{
			{Name: "milk", Options: []string{"oat", "soy"}, PriceDelta: domain.MustMoney(50, 100)},
		},
		CreatedBy: "barista-1",
	}
	if mutate != nil {
		mutate(&p)
	}

	item, err := domain.NewMenuItem(p, testNow)
	require.NoError(t, err)
	return item
}

func TestMapping_RoundTrip(t *testing.T) {
	item := newTestItem(t, nil)

	back, err := dataToDomain(domainToData(item))
	require.NoError(t, err)

	assert.Equal(t, item.ID(), back.ID())
	assert.Equal(t, item.Name(), back.Name())
	assert.True(t, item.Price().Equals(back.Price()))
	assert.True(t, item.OriginalPrice().Equals(back.OriginalPrice()))
	assert.Equal(t, item.Category(), back.Category())
	assert.Equal(t, item.IsFeatured(), back.IsFeatured())
	assert.Equal(t, item.Stock(), back.Stock())
	assert.Equal(t, item.Difficulty(), back.Difficulty())
	assert.Equal(t, item.Tags(), back.Tags())
	assert.Equal(t, item.DietaryTags(), back.DietaryTags())
	assert.Equal(t, item.Allergens(), back.Allergens())
	assert.Equal(t, item.CreatedAt(), back.CreatedAt())

	require.Len(t, back.Discounts(), 1)
	d := back.Discounts()[0]
	assert.Equal(t, domain.DiscountPercentage, d.Kind())
	assert.True(t, d.Value().Equal(decimal.NewFromInt(20)))
	require.NotNil(t, d.StartsAt())
	assert.True(t, d.StartsAt().Equal(testNow.Add(-time.Hour)))
	assert.Nil(t, d.EndsAt())
	assert.True(t, d.Active())

	require.Len(t, back.Sizes(), 1)
	assert.Equal(t, "double", back.Sizes()[0].Name)
	assert.True(t, back.Sizes()[0].PriceDelta.Equals(domain.MustMoney(75, 100)))

	require.Len(t, back.Customizations(), 1)
	assert.Equal(t, []string{"oat", "soy"}, back.Customizations()[0].Options)

	// Resolution is unchanged by persistence.
	assert.True(t, item.EffectivePrice(testNow).Equals(back.EffectivePrice(testNow)))
}

func TestMapping_OriginalPriceSurvivesPriceChange(t *testing.T) {
	item := newTestItem(t, func(p *domain.MenuItemParams) { p.OriginalPrice = nil })
	require.NoError(t, item.SetPrice(domain.MustMoney(500, 100), testNow))

	back, err := dataToDomain(domainToData(item))
	require.NoError(t, err)

	assert.Equal(t, "5.00", back.Price().String())
	assert.Equal(t, "3.75", back.OriginalPrice().String())
}

func TestMapping_EmptyCollections(t *testing.T) {
	item := newTestItem(t, func(p *domain.MenuItemParams) {
		p.Discounts = nil
		p.Sizes = nil
		p.Customizations = nil
	})

	data := domainToData(item)
	assert.True(t, data.Discounts.Valid)
	assert.True(t, data.Sizes.Valid)

	back, err := dataToDomain(data)
	require.NoError(t, err)
	assert.Empty(t, back.Discounts())
	assert.Empty(t, back.Sizes())
	assert.Empty(t, back.Customizations())
}

func TestMapping_NullJSONColumns(t *testing.T) {
	data := domainToData(newTestItem(t, nil))
	data.Discounts = spanner.NullJSON{}
	data.Sizes = spanner.NullJSON{}
	data.Customizations = spanner.NullJSON{}

	back, err := dataToDomain(data)
	require.NoError(t, err)
	assert.Empty(t, back.Discounts())
	assert.Empty(t, back.Sizes())
}

func TestMapping_CorruptDiscount(t *testing.T) {
	data := domainToData(newTestItem(t, nil))
	data.Discounts = spanner.NullJSON{Value: []map[string]interface{}{
		{"kind": "percentage", "value": "not-a-number", "active": true},
	}, Valid: true}

	_, err := dataToDomain(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item-1")
}
