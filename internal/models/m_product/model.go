package m_product

import (
	"github.com/light-bringer/storefront-catalog/internal/app/product/domain"
)

// Model provides a facade for type-safe operations on the products table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// ReadColumns returns the columns selected for a product row, in scan order.
func (m *Model) ReadColumns() []string {
	return append([]string{ID}, m.WriteColumns()...)
}

// WriteColumns returns the columns written on insert and update.
// id is generated by storage and never written.
func (m *Model) WriteColumns() []string {
	return []string{
		Name,
		Description,
		Price,
		OldPrice,
		Discount,
		Rating,
		Colors,
		BrandIDs,
		Gender,
		Occasions,
		ImageURL,
		CreatedAt,
	}
}

// WriteValues returns data's values in WriteColumns order.
func (m *Model) WriteValues(data *Data) []interface{} {
	return []interface{}{
		data.Name,
		data.Description,
		data.Price,
		data.OldPrice,
		data.Discount,
		data.Rating,
		data.Colors,
		data.BrandIDs,
		data.Gender,
		data.Occasions,
		data.ImageURL,
		data.CreatedAt,
	}
}

// FromDomain maps a product aggregate to its row.
func (m *Model) FromDomain(p *domain.Product) *Data {
	return &Data{
		ID:          p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		Price:       p.Price(),
		OldPrice:    p.OldPrice(),
		Discount:    p.Discount(),
		Rating:      p.Rating(),
		Colors:      p.Colors(),
		BrandIDs:    p.BrandIDs(),
		Gender:      p.Gender(),
		Occasions:   p.Occasions(),
		ImageURL:    p.ImageURL(),
		CreatedAt:   p.CreatedAt(),
	}
}

// ToDomain reconstructs the product aggregate from a row.
func (m *Model) ToDomain(data *Data) *domain.Product {
	return domain.ReconstructProduct(data.ID, domain.ProductInput{
		Name:        data.Name,
		Description: data.Description,
		Price:       data.Price,
		OldPrice:    data.OldPrice,
		Discount:    data.Discount,
		Rating:      data.Rating,
		Colors:      data.Colors,
		BrandIDs:    data.BrandIDs,
		Gender:      data.Gender,
		Occasions:   data.Occasions,
		ImageURL:    data.ImageURL,
	}, data.CreatedAt)
}
