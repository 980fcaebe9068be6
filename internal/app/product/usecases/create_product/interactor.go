package create_product

import (
	"context"
	"fmt"

	"github.com/light-bringer/storefront-catalog/internal/app/product/contracts"
	"github.com/light-bringer/storefront-catalog/internal/app/product/domain"
	"github.com/light-bringer/storefront-catalog/internal/pkg/clock"
)

// Request contains the data needed to create a product.
type Request struct {
	Input domain.ProductInput
}

// Interactor handles the create product use case.
type Interactor struct {
	repo  contracts.ProductRepository
	clock clock.Clock
}

// NewInteractor creates a new create product interactor.
func NewInteractor(repo contracts.ProductRepository, clock clock.Clock) *Interactor {
	return &Interactor{
		repo:  repo,
		clock: clock,
	}
}

// Execute validates the input and persists a new product.
// The returned product is read back from storage, so it carries the
// generated id and values as the store keeps them.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Product, error) {
	// 1. Create domain aggregate (validates)
	product, err := domain.NewProduct(0, req.Input, i.clock.Now())
	if err != nil {
		return nil, err
	}

	// 2. Persist
	saved, err := i.repo.Insert(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	// 3. Read back the stored row
	stored, err := i.repo.GetByID(ctx, saved.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to reload product %d: %w", saved.ID(), err)
	}

	return stored, nil
}
