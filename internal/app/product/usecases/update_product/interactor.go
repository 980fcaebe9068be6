package update_product

import (
	"context"
	"fmt"

	"github.com/light-bringer/storefront-catalog/internal/app/product/contracts"
	"github.com/light-bringer/storefront-catalog/internal/app/product/domain"
)

// Request contains the full replacement attribute set for a product.
type Request struct {
	ProductID int64
	Input     domain.ProductInput
}

// Interactor handles the update product use case.
type Interactor struct {
	repo contracts.ProductRepository
}

// NewInteractor creates a new update product interactor.
func NewInteractor(repo contracts.ProductRepository) *Interactor {
	return &Interactor{
		repo: repo,
	}
}

// Execute replaces every attribute of an existing product and returns the
// row as stored.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Product, error) {
	// 1. Validate before touching storage
	if err := req.Input.Normalize().Validate(); err != nil {
		return nil, err
	}

	// 2. Load aggregate
	product, err := i.repo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	// 3. Replace attributes
	if err := product.Replace(req.Input); err != nil {
		return nil, err
	}

	// 4. Persist
	if err := i.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	// 5. Read back the stored row
	return i.repo.GetByID(ctx, req.ProductID)
}
