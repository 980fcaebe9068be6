package spannerstore

import (
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"

	"github.com/light-bringer/storefront-catalog/internal/models/m_product"
)

// productRow mirrors m_product.Model.ReadColumns in Spanner types.
type productRow struct {
	ID          int64
	Name        string
	Description spanner.NullString
	Price       spanner.NullNumeric
	OldPrice    spanner.NullNumeric
	Discount    int64
	Rating      float64
	Colors      []string
	BrandIDs    []int64
	Gender      spanner.NullString
	Occasions   []string
	ImageURL    spanner.NullString
	CreatedAt   time.Time
}

func decodeProduct(row *spanner.Row) (*m_product.Data, error) {
	var r productRow
	err := row.Columns(
		&r.ID,
		&r.Name,
		&r.Description,
		&r.Price,
		&r.OldPrice,
		&r.Discount,
		&r.Rating,
		&r.Colors,
		&r.BrandIDs,
		&r.Gender,
		&r.Occasions,
		&r.ImageURL,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}
	return r.data(), nil
}

func (r *productRow) data() *m_product.Data {
	return &m_product.Data{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description.StringVal,
		Price:       toDecimal(r.Price),
		OldPrice:    toDecimal(r.OldPrice),
		Discount:    r.Discount,
		Rating:      r.Rating,
		Colors:      nonNil(r.Colors),
		BrandIDs:    nonNil(r.BrandIDs),
		Gender:      r.Gender.StringVal,
		Occasions:   nonNil(r.Occasions),
		ImageURL:    r.ImageURL.StringVal,
		CreatedAt:   r.CreatedAt,
	}
}

// toDecimal converts a NUMERIC value. NULL becomes zero.
func toDecimal(n spanner.NullNumeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(spanner.NumericString(&n.Numeric))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
