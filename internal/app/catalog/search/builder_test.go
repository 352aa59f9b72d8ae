package search

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
)

const cols = "menu_item_id, name"

func TestBuild_AlwaysScopedToAvailable(t *testing.T) {
	p, err := Build("", Options{})
	require.NoError(t, err)

	stmt := p.Statement("menu_item_id", "name")
	assert.Equal(t,
		"SELECT "+cols+" FROM menu_items WHERE is_available = TRUE ORDER BY rating_average DESC, menu_item_id ASC LIMIT @limit",
		stmt.SQL)
	assert.Equal(t, int64(DefaultPageSize), stmt.Params["limit"])
	assert.Equal(t, int64(1), p.Page)
	assert.Equal(t, SortRating, p.Sort)
}

func TestBuild_PriceBoundsCompose(t *testing.T) {
	p, err := Build("", Options{
		MinPrice: domain.MustMoney(5, 1),
		MaxPrice: domain.MustMoney(15, 1),
	})
	require.NoError(t, err)

	stmt := p.CountStatement()
	assert.Equal(t, "SELECT COUNT(*) FROM menu_items WHERE is_available = TRUE AND price >= @p0 AND price <= @p1", stmt.SQL)
	assert.Zero(t, stmt.Params["p0"].(*big.Rat).Cmp(big.NewRat(5, 1)))
	assert.Zero(t, stmt.Params["p1"].(*big.Rat).Cmp(big.NewRat(15, 1)))

	assert.True(t, p.Price.Contains(domain.MustMoney(5, 1)))
	assert.True(t, p.Price.Contains(domain.MustMoney(15, 1)))
	assert.False(t, p.Price.Contains(domain.MustMoney(499, 100)))
	assert.False(t, p.Price.Contains(domain.MustMoney(1501, 100)))
}

func TestBuild_MinPriceAloneSurvives(t *testing.T) {
	p, err := Build("", Options{MinPrice: domain.MustMoney(5, 1)})
	require.NoError(t, err)
	assert.Contains(t, p.CountStatement().SQL, "price >= @p0")
	assert.NotContains(t, p.CountStatement().SQL, "price <=")

	p, err = Build("", Options{MaxPrice: domain.MustMoney(5, 1)})
	require.NoError(t, err)
	assert.Contains(t, p.CountStatement().SQL, "price <= @p0")
	assert.NotContains(t, p.CountStatement().SQL, "price >=")
}

func TestBuild_AllFilters(t *testing.T) {
	p, err := Build("  oat latte ", Options{
		Category:    "Coffee",
		MinPrice:    domain.MustMoney(2, 1),
		MaxPrice:    domain.MustMoney(8, 1),
		DietaryTags: []string{"vegan", "dairy_free"},
		Allergens:   []string{"nuts"},
		Sort:        "relevance",
		Page:        3,
		PageSize:    10,
	})
	require.NoError(t, err)

	stmt := p.Statement("menu_item_id", "name")
	assert.Equal(t, "SELECT "+cols+" FROM menu_items WHERE is_available = TRUE AND category = @p0 AND price >= @p1 AND price <= @p2"+
		" AND ARRAY_INCLUDES_ANY(IFNULL(dietary_tags, ARRAY<STRING>[]), @p3)"+
		" AND NOT (ARRAY_INCLUDES_ANY(IFNULL(allergens, ARRAY<STRING>[]), @p4))"+
		" AND SEARCH(search_tokens, @p5)"+
		" ORDER BY SCORE(search_tokens, @score_query) DESC, menu_item_id ASC LIMIT @limit OFFSET @offset", stmt.SQL)

	assert.Equal(t, "coffee", stmt.Params["p0"])
	assert.Equal(t, []string{"dairy_free", "vegan"}, stmt.Params["p3"])
	assert.Equal(t, []string{"nuts"}, stmt.Params["p4"])
	assert.Equal(t, "oat latte", stmt.Params["p5"])
	assert.Equal(t, "oat latte", stmt.Params["score_query"])
	assert.Equal(t, int64(10), stmt.Params["limit"])
	assert.Equal(t, int64(20), stmt.Params["offset"])

	count := p.CountStatement()
	assert.NotContains(t, count.SQL, "ORDER BY")
	assert.NotContains(t, count.Params, "score_query")
	assert.NotContains(t, count.Params, "limit")
	assert.Len(t, p.Filters(), 7)
}

func TestBuild_AllergenExclusionAlwaysPresent(t *testing.T) {
	p, err := Build("cake", Options{Allergens: []string{"nuts"}, DietaryTags: []string{"vegan"}})
	require.NoError(t, err)

	sql := p.CountStatement().SQL
	assert.Contains(t, sql, "is_available = TRUE")
	assert.Contains(t, sql, "NOT (ARRAY_INCLUDES_ANY(IFNULL(allergens")
}

func TestBuild_SortKeys(t *testing.T) {
	tests := []struct {
		sort  string
		order string
	}{
		{"", "ORDER BY rating_average DESC, menu_item_id ASC"},
		{"rating", "ORDER BY rating_average DESC, menu_item_id ASC"},
		{"price_asc", "ORDER BY price ASC, menu_item_id ASC"},
		{"price_desc", "ORDER BY price DESC, menu_item_id ASC"},
		{"newest", "ORDER BY created_at DESC, menu_item_id ASC"},
		{"popular", "ORDER BY order_count DESC, menu_item_id ASC"},
		{"NAME", "ORDER BY name ASC, menu_item_id ASC"},
	}
	for _, tt := range tests {
		t.Run(tt.sort, func(t *testing.T) {
			p, err := Build("", Options{Sort: tt.sort})
			require.NoError(t, err)
			assert.Contains(t, p.Statement("menu_item_id").SQL, tt.order)
		})
	}
}

func TestBuild_Pagination(t *testing.T) {
	p, err := Build("", Options{Page: 1, PageSize: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.Offset())
	assert.NotContains(t, p.Statement("menu_item_id").SQL, "OFFSET")

	p, err = Build("", Options{Page: 4, PageSize: 25})
	require.NoError(t, err)
	assert.Equal(t, int64(75), p.Offset())
}

func TestBuild_Validation(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		opts  Options
		field string
	}{
		{"negative page", "", Options{Page: -1}, FieldPage},
		{"page size too large", "", Options{PageSize: MaxPageSize + 1}, FieldPageSize},
		{"negative page size", "", Options{PageSize: -3}, FieldPageSize},
		{"inverted price range", "", Options{MinPrice: domain.MustMoney(10, 1), MaxPrice: domain.MustMoney(5, 1)}, FieldMinPrice},
		{"negative max price", "", Options{MaxPrice: domain.MustMoney(-1, 1)}, FieldMaxPrice},
		{"unknown category", "", Options{Category: "soup"}, domain.FieldCategory},
		{"unknown dietary tag", "", Options{DietaryTags: []string{"paleo"}}, domain.FieldDietaryTags},
		{"unknown allergen", "", Options{Allergens: []string{"kiwi"}}, domain.FieldAllergens},
		{"unknown sort", "", Options{Sort: "cheapest"}, FieldSort},
		{"relevance without text", "", Options{Sort: "relevance"}, FieldSort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.text, tt.opts)

			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestBuild_IdenticalInputsIdenticalStatements(t *testing.T) {
	opts := Options{Category: "tea", DietaryTags: []string{"vegan", "organic"}, Sort: "popular", Page: 2}
	a, err := Build("green", opts)
	require.NoError(t, err)
	b, err := Build("green", opts)
	require.NoError(t, err)

	assert.Equal(t, a.Statement("menu_item_id").SQL, b.Statement("menu_item_id").SQL)
	assert.Equal(t, a.Statement("menu_item_id").Params, b.Statement("menu_item_id").Params)
}
