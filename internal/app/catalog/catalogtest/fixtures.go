package catalogtest

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
)

// Now is the fixed instant used by catalog tests.
var Now = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Params returns valid creation params for a coffee item.
func Params(id string) domain.MenuItemParams {
	return domain.MenuItemParams{
		ID:              id,
		Name:            "Flat White",
		Description:     "Double ristretto with steamed milk",
		Price:           domain.MustMoney(450, 100),
		Category:        domain.CategoryCoffee,
		IsAvailable:     true,
		Stock:           domain.UnlimitedStock,
		PreparationTime: 4,
		DietaryTags:     []domain.DietaryTag{domain.DietVegetarian},
		Allergens:       []domain.Allergen{domain.AllergenDairy},
		CreatedBy:       "admin-1",
	}
}

// NewItem builds a persisted-looking item: no events, nothing dirty.
func NewItem(t *testing.T, id string, mutate func(p *domain.MenuItemParams)) *domain.MenuItem {
	t.Helper()
	p := Params(id)
	if mutate != nil {
		mutate(&p)
	}
	item, err := domain.NewMenuItem(p, Now.Add(-48*time.Hour))
	require.NoError(t, err)
	return Clone(item)
}
