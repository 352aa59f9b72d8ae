package search

import (
	"strings"

	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
)

// SortKey selects the primary ordering of search results.
type SortKey string

const (
	SortRating    SortKey = "rating"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortNewest    SortKey = "newest"
	SortPopular   SortKey = "popular"
	SortName      SortKey = "name"
	SortRelevance SortKey = "relevance"
)

// SortKeys lists every accepted sort key.
var SortKeys = []SortKey{SortRating, SortPriceAsc, SortPriceDesc, SortNewest, SortPopular, SortName, SortRelevance}

// ParseSortKey parses a sort key. Empty input means SortRating.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if k == "" {
		return SortRating, nil
	}
	for _, known := range SortKeys {
		if k == known {
			return k, nil
		}
	}
	return "", domain.NewValidationError(FieldSort, "unknown sort key "+s)
}

// Option field names reported in validation errors.
const (
	FieldQuery    = "q"
	FieldMinPrice = "min_price"
	FieldMaxPrice = "max_price"
	FieldSort     = "sort"
	FieldPage     = "page"
	FieldPageSize = "page_size"
)

// Pagination limits.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
	MaxQueryLength  = 200
)

// Options is the raw option bag of a search call. Zero values mean "not set".
type Options struct {
	Category    string
	MinPrice    *domain.Money
	MaxPrice    *domain.Money
	DietaryTags []string
	Allergens   []string
	Sort        string
	Page        int64
	PageSize    int64
}
