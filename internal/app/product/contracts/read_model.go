package contracts

import (
	"context"

	"github.com/light-bringer/storefront-catalog/internal/app/product/domain"
	"github.com/light-bringer/storefront-catalog/internal/pkg/query"
)

// ReadModel defines the interface for product queries.
// Count and Fetch receive builders derived from one base builder so both
// see the same predicates.
type ReadModel interface {
	// Count runs b as a COUNT(*) query.
	Count(ctx context.Context, b *query.Builder) (int64, error)

	// Fetch runs b and returns the matching products in query order.
	// The builder's select list is replaced with the product columns.
	Fetch(ctx context.Context, b *query.Builder) ([]*domain.Product, error)

	// GetByID returns domain.ErrProductNotFound when no row matches.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

// LookupStore resolves foreign identifiers in bulk. Each call is one round
// trip; ids are already deduplicated and bounded by the caller. Ids with no
// match are simply absent from the returned map.
type LookupStore interface {
	BrandNames(ctx context.Context, ids []int64) (map[int64]string, error)
	ProductCategories(ctx context.Context, productIDs []int64) (map[int64][]domain.Category, error)
}
