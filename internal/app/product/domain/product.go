package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// Rating bounds.
const (
	MinRating = 0
	MaxRating = 5
)

// ProductInput is the full attribute set accepted by create and update.
// Updates replace every attribute; there are no partial-field semantics.
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	OldPrice    decimal.Decimal
	Discount    int64
	Rating      float64
	Colors      []string
	BrandIDs    []int64
	Gender      string
	Occasions   []string
	ImageURL    string
}

// Normalize trims and NFC-normalizes text fields and replaces nil lists with
// empty ones, so list columns are never stored as NULL.
func (in ProductInput) Normalize() ProductInput {
	out := in
	out.Name = normalizeText(in.Name)
	out.Description = strings.TrimSpace(norm.NFC.String(in.Description))
	out.Gender = normalizeText(in.Gender)
	out.ImageURL = strings.TrimSpace(in.ImageURL)
	out.Colors = normalizeList(in.Colors)
	out.Occasions = normalizeList(in.Occasions)
	out.BrandIDs = append(make([]int64, 0, len(in.BrandIDs)), in.BrandIDs...)
	return out
}

// Validate checks the input after normalization.
func (in ProductInput) Validate() error {
	if in.Name == "" {
		return NewValidationError("name", "", "must not be empty")
	}
	if in.Price.IsNegative() {
		return NewValidationError("price", in.Price.String(), "must not be negative")
	}
	if in.OldPrice.IsNegative() {
		return NewValidationError("old_price", in.OldPrice.String(), "must not be negative")
	}
	if in.Discount < 0 || in.Discount > 100 {
		return NewValidationError("discount", decimal.NewFromInt(in.Discount).String(), "must be between 0 and 100")
	}
	if in.Rating < MinRating || in.Rating > MaxRating {
		return NewValidationError("rating", decimal.NewFromFloat(in.Rating).String(), "must be between 0 and 5")
	}
	for _, id := range in.BrandIDs {
		if id <= 0 {
			return NewValidationError("brand_ids", decimal.NewFromInt(id).String(), "brand ids must be positive")
		}
	}
	for _, occasion := range in.Occasions {
		if occasion == "" {
			return NewValidationError("occasions", "", "entries must not be empty")
		}
	}
	return nil
}

// Product is a catalog item as persisted.
type Product struct {
	id          int64
	name        string
	description string
	price       decimal.Decimal
	oldPrice    decimal.Decimal
	discount    int64
	rating      float64
	colors      []string
	brandIDs    []int64
	gender      string
	occasions   []string
	imageURL    string
	createdAt   time.Time
}

// NewProduct creates a Product from validated input (for creation).
// id is assigned by storage; pass 0 until it is known.
func NewProduct(id int64, input ProductInput, createdAt time.Time) (*Product, error) {
	in := input.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p := &Product{id: id, createdAt: createdAt}
	p.assign(in)
	return p, nil
}

// ReconstructProduct reconstitutes a Product from storage.
func ReconstructProduct(id int64, input ProductInput, createdAt time.Time) *Product {
	p := &Product{id: id, createdAt: createdAt}
	p.assign(input.Normalize())
	return p
}

// Replace swaps the whole attribute set. id and createdAt are preserved.
func (p *Product) Replace(input ProductInput) error {
	in := input.Normalize()
	if err := in.Validate(); err != nil {
		return err
	}
	p.assign(in)
	return nil
}

// WithID returns a copy carrying the storage-assigned id.
func (p *Product) WithID(id int64) *Product {
	cp := *p
	cp.id = id
	return &cp
}

func (p *Product) assign(in ProductInput) {
	p.name = in.Name
	p.description = in.Description
	p.price = in.Price
	p.oldPrice = in.OldPrice
	p.discount = in.Discount
	p.rating = in.Rating
	p.colors = in.Colors
	p.brandIDs = in.BrandIDs
	p.gender = in.Gender
	p.occasions = in.Occasions
	p.imageURL = in.ImageURL
}

// Getters
func (p *Product) ID() int64                 { return p.id }
func (p *Product) Name() string              { return p.name }
func (p *Product) Description() string       { return p.description }
func (p *Product) Price() decimal.Decimal    { return p.price }
func (p *Product) OldPrice() decimal.Decimal { return p.oldPrice }
func (p *Product) Discount() int64           { return p.discount }
func (p *Product) Rating() float64           { return p.rating }
func (p *Product) Gender() string            { return p.gender }
func (p *Product) ImageURL() string          { return p.imageURL }
func (p *Product) CreatedAt() time.Time      { return p.createdAt }
func (p *Product) Colors() []string          { return append([]string{}, p.colors...) }
func (p *Product) BrandIDs() []int64         { return append([]int64{}, p.brandIDs...) }
func (p *Product) Occasions() []string       { return append([]string{}, p.occasions...) }

// Input returns the product's attribute set.
func (p *Product) Input() ProductInput {
	return ProductInput{
		Name:        p.name,
		Description: p.description,
		Price:       p.price,
		OldPrice:    p.oldPrice,
		Discount:    p.discount,
		Rating:      p.rating,
		Colors:      p.Colors(),
		BrandIDs:    p.BrandIDs(),
		Gender:      p.gender,
		Occasions:   p.Occasions(),
		ImageURL:    p.imageURL,
	}
}

// Brand is a display name referenced by value from Product.BrandIDs.
type Brand struct {
	ID   int64
	Name string
}

// Category is linked to products through the product_categories join table.
type Category struct {
	ID   int64
	Name string
}

func normalizeText(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, normalizeText(v))
	}
	return out
}
