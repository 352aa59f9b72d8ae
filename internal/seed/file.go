// Package seed loads a YAML menu file and creates its items through the
// create menu item use case.
package seed

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/light-bringer/menucat-service/internal/app/catalog/domain"
	"github.com/light-bringer/menucat-service/internal/app/catalog/usecases/create_menu_item"
)

// File is the top-level document of a seed file.
type File struct {
	CreatedBy string `yaml:"created_by"`
	Items     []Item `yaml:"items"`
}

// Item is one menu item in a seed file. Prices are decimal strings so that
// "3.50" keeps its scale.
type Item struct {
	Name            string          `yaml:"name"`
	Description     string          `yaml:"description"`
	Price           string          `yaml:"price"`
	OriginalPrice   string          `yaml:"original_price"`
	Category        string          `yaml:"category"`
	Available       *bool           `yaml:"available"`
	Featured        bool            `yaml:"featured"`
	Popular         bool            `yaml:"popular"`
	Stock           *int64          `yaml:"stock"`
	PreparationTime int64           `yaml:"preparation_time"`
	Difficulty      string          `yaml:"difficulty"`
	Tags            []string        `yaml:"tags"`
	DietaryTags     []string        `yaml:"dietary_tags"`
	Allergens       []string        `yaml:"allergens"`
	Discounts       []Discount      `yaml:"discounts"`
	Sizes           []Size          `yaml:"sizes"`
	Customizations  []Customization `yaml:"customizations"`
	CreatedBy       string          `yaml:"created_by"`
}

type Discount struct {
	Kind     string     `yaml:"kind"`
	Value    string     `yaml:"value"`
	StartsAt *time.Time `yaml:"starts_at"`
	EndsAt   *time.Time `yaml:"ends_at"`
	Active   *bool      `yaml:"active"`
}

type Size struct {
	Name       string `yaml:"name"`
	PriceDelta string `yaml:"price_delta"`
}

type Customization struct {
	Name       string   `yaml:"name"`
	Options    []string `yaml:"options"`
	PriceDelta string   `yaml:"price_delta"`
}

// ErrEmptyFile is returned when a seed file declares no items.
var ErrEmptyFile = errors.New("seed file has no items")

// Load decodes a seed file. Unknown keys are rejected.
func Load(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}
	if len(f.Items) == 0 {
		return nil, ErrEmptyFile
	}
	return &f, nil
}

// LoadFile opens and decodes the seed file at path.
func LoadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer fh.Close()
	return Load(fh)
}

// Requests converts every item into a create request. The file-level
// created_by fills items that do not set their own.
func (f *File) Requests() ([]*create_menu_item.Request, error) {
	reqs := make([]*create_menu_item.Request, 0, len(f.Items))
	for i, it := range f.Items {
		req, err := it.request(f.CreatedBy)
		if err != nil {
			return nil, fmt.Errorf("item %d (%q): %w", i, it.Name, err)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func (it Item) request(defaultCreator string) (*create_menu_item.Request, error) {
	if it.Price == "" {
		return nil, domain.NewValidationError(domain.FieldPrice, "is required")
	}
	price, err := parseAmount(domain.FieldPrice, it.Price)
	if err != nil {
		return nil, err
	}

	var original *domain.Money
	if it.OriginalPrice != "" {
		if original, err = parseAmount(domain.FieldOriginalPrice, it.OriginalPrice); err != nil {
			return nil, err
		}
	}

	discounts := make([]*domain.Discount, 0, len(it.Discounts))
	for _, d := range it.Discounts {
		disc, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		discounts = append(discounts, disc)
	}

	sizes := make([]domain.Size, 0, len(it.Sizes))
	for _, s := range it.Sizes {
		delta, err := parseDelta(domain.FieldSizes, s.PriceDelta)
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, domain.Size{Name: s.Name, PriceDelta: delta})
	}

	customizations := make([]domain.Customization, 0, len(it.Customizations))
	for _, c := range it.Customizations {
		delta, err := parseDelta(domain.FieldCustomizations, c.PriceDelta)
		if err != nil {
			return nil, err
		}
		customizations = append(customizations, domain.Customization{
			Name:       c.Name,
			Options:    c.Options,
			PriceDelta: delta,
		})
	}

	createdBy := it.CreatedBy
	if createdBy == "" {
		createdBy = defaultCreator
	}

	return &create_menu_item.Request{
		Name:            it.Name,
		Description:     it.Description,
		Price:           price,
		OriginalPrice:   original,
		Category:        it.Category,
		IsAvailable:     it.Available,
		IsFeatured:      it.Featured,
		IsPopular:       it.Popular,
		Stock:           it.Stock,
		PreparationTime: it.PreparationTime,
		Difficulty:      it.Difficulty,
		Discounts:       discounts,
		Tags:            it.Tags,
		DietaryTags:     it.DietaryTags,
		Allergens:       it.Allergens,
		Sizes:           sizes,
		Customizations:  customizations,
		CreatedBy:       createdBy,
	}, nil
}

func (d Discount) toDomain() (*domain.Discount, error) {
	kind, err := domain.ParseDiscountKind(d.Kind)
	if err != nil {
		return nil, err
	}
	value, err := decimal.NewFromString(d.Value)
	if err != nil {
		return nil, domain.NewValidationError(domain.FieldDiscountValue, "must be a decimal number")
	}
	active := d.Active == nil || *d.Active
	return domain.NewDiscount(kind, value, d.StartsAt, d.EndsAt, active)
}

func parseAmount(field, s string) (*domain.Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, domain.NewValidationError(field, "must be a decimal number")
	}
	return domain.NewMoneyFromDecimal(d), nil
}

// parseDelta treats an omitted surcharge as zero.
func parseDelta(field, s string) (*domain.Money, error) {
	if s == "" {
		return domain.NewMoneyFromDecimal(decimal.Zero), nil
	}
	return parseAmount(field, s)
}
