package m_product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Data represents the database model for the products table.
// List columns are never NULL; empty lists are stored as empty arrays.
type Data struct {
	ID          int64
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
	CreatedAt   time.Time
}
