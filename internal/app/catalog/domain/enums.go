package domain

import (
	"sort"
	"strings"
)

// Category is the closed set of menu sections.
type Category string

const (
	CategoryCoffee     Category = "coffee"
	CategoryTea        Category = "tea"
	CategoryColdDrinks Category = "cold_drinks"
	CategoryPastries   Category = "pastries"
	CategoryDesserts   Category = "desserts"
	CategoryBreakfast  Category = "breakfast"
	CategorySandwiches Category = "sandwiches"
	CategorySalads     Category = "salads"
	CategorySnacks     Category = "snacks"
	CategorySpecials   Category = "specials"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryCoffee,
	CategoryTea,
	CategoryColdDrinks,
	CategoryPastries,
	CategoryDesserts,
	CategoryBreakfast,
	CategorySandwiches,
	CategorySalads,
	CategorySnacks,
	CategorySpecials,
}

// ParseCategory converts raw input into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", NewValidationError(FieldCategory, "must be one of "+joinEnum(Categories))
}

// DietaryTag marks an item as suitable for a diet.
type DietaryTag string

const (
	DietVegetarian DietaryTag = "vegetarian"
	DietVegan      DietaryTag = "vegan"
	DietGlutenFree DietaryTag = "gluten_free"
	DietDairyFree  DietaryTag = "dairy_free"
	DietKeto       DietaryTag = "keto"
	DietOrganic    DietaryTag = "organic"
	DietHalal      DietaryTag = "halal"
)

var DietaryTags = []DietaryTag{
	DietVegetarian,
	DietVegan,
	DietGlutenFree,
	DietDairyFree,
	DietKeto,
	DietOrganic,
	DietHalal,
}

// ParseDietaryTags parses, validates and de-duplicates dietary tags.
// The result is sorted so stored arrays compare equal.
func ParseDietaryTags(raw []string) ([]DietaryTag, error) {
	return parseSet(raw, DietaryTags, FieldDietaryTags)
}

// Allergen is an ingredient class a customer may need to avoid.
type Allergen string

const (
	AllergenNuts      Allergen = "nuts"
	AllergenPeanuts   Allergen = "peanuts"
	AllergenDairy     Allergen = "dairy"
	AllergenGluten    Allergen = "gluten"
	AllergenEggs      Allergen = "eggs"
	AllergenSoy       Allergen = "soy"
	AllergenSesame    Allergen = "sesame"
	AllergenShellfish Allergen = "shellfish"
	AllergenFish      Allergen = "fish"
)

var Allergens = []Allergen{
	AllergenNuts,
	AllergenPeanuts,
	AllergenDairy,
	AllergenGluten,
	AllergenEggs,
	AllergenSoy,
	AllergenSesame,
	AllergenShellfish,
	AllergenFish,
}

// ParseAllergens parses, validates and de-duplicates allergens.
func ParseAllergens(raw []string) ([]Allergen, error) {
	return parseSet(raw, Allergens, FieldAllergens)
}

// Difficulty is the preparation difficulty tier.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty parses a difficulty tier. Empty input means easy.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if d == "" {
		return DifficultyEasy, nil
	}
	for _, known := range Difficulties {
		if d == known {
			return d, nil
		}
	}
	return "", NewValidationError(FieldDifficulty, "must be one of "+joinEnum(Difficulties))
}

func parseSet[T ~string](raw []string, allowed []T, field string) ([]T, error) {
	seen := make(map[T]bool, len(raw))
	out := make([]T, 0, len(raw))
	for _, r := range raw {
		v := T(strings.ToLower(strings.TrimSpace(r)))
		if !contains(allowed, v) {
			return nil, NewValidationError(field, "unknown value "+strings.TrimSpace(r)+", must be one of "+joinEnum(allowed))
		}
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func joinEnum[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

// Strings converts a typed enum slice into plain strings for storage.
func Strings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
