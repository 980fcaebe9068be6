package get_product

import (
	"context"
	"strconv"

	"github.com/light-bringer/storefront-catalog/internal/app/product/contracts"
	"github.com/light-bringer/storefront-catalog/internal/app/product/domain"
	"github.com/light-bringer/storefront-catalog/internal/pkg/reqscope"
)

// Request contains the product ID to retrieve.
type Request struct {
	ProductID int64
}

// Query handles the get product query use case.
type Query struct {
	readModel contracts.ReadModel
}

// NewQuery creates a new get product query.
func NewQuery(readModel contracts.ReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves a product by ID. Within one request scope repeated
// lookups of the same id hit storage once.
func (q *Query) Execute(ctx context.Context, req *Request) (*domain.Product, error) {
	if req.ProductID <= 0 {
		return nil, domain.ErrProductNotFound
	}
	return reqscope.Memo(ctx, "product:"+strconv.FormatInt(req.ProductID, 10), func(ctx context.Context) (*domain.Product, error) {
		return q.readModel.GetByID(ctx, req.ProductID)
	})
}
