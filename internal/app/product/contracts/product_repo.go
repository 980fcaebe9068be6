package contracts

import (
	"context"

	"github.com/light-bringer/storefront-catalog/internal/app/product/domain"
)

// ProductRepository defines the interface for product persistence.
type ProductRepository interface {
	// Insert persists a new product and returns it with the generated id.
	Insert(ctx context.Context, product *domain.Product) (*domain.Product, error)

	// Update replaces every attribute of an existing product.
	// Returns domain.ErrProductNotFound when the id has no row.
	Update(ctx context.Context, product *domain.Product) error

	// GetByID retrieves a product by ID, reconstructing the domain aggregate
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}
