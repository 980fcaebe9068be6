package list_products

import (
	"context"
	"fmt"

	"github.com/light-bringer/storefront-catalog/internal/app/product/contracts"
	"github.com/light-bringer/storefront-catalog/internal/app/product/domain"
	"github.com/light-bringer/storefront-catalog/internal/app/product/filter"
	"github.com/light-bringer/storefront-catalog/internal/app/product/pagination"
	"github.com/light-bringer/storefront-catalog/internal/app/product/sorting"
	"github.com/light-bringer/storefront-catalog/internal/models/m_product"
	"github.com/light-bringer/storefront-catalog/internal/pkg/query"
)

// Request contains filtering, sorting and pagination parameters.
type Request struct {
	PageNo   int
	PageSize int
	SortBy   string
	Filter   *filter.Request
}

// Result is one page of products plus pagination metadata.
type Result struct {
	Items                 []*domain.Product
	TotalCount            int64
	LastPage              int64
	NumOfResultsOnCurPage int
	PageNo                int
	PageSize              int
}

// Query handles the list products query use case.
type Query struct {
	readModel       contracts.ReadModel
	defaultPageSize int
	maxPageSize     int
}

// NewQuery creates a new list products query.
// Non-positive sizes fall back to the pagination package defaults.
func NewQuery(readModel contracts.ReadModel, defaultPageSize, maxPageSize int) *Query {
	return &Query{
		readModel:       readModel,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// Execute retrieves a page of products.
//
// Filter and sort are both validated before any query runs. The count and
// the page fetch are derived from one base builder, so the reported total
// always matches the rows reachable through paging.
func (q *Query) Execute(ctx context.Context, req *Request) (*Result, error) {
	if req == nil {
		req = &Request{}
	}

	predicates, err := filter.Build(req.Filter)
	if err != nil {
		return nil, err
	}
	directive, err := sorting.Parse(req.SortBy)
	if err != nil {
		return nil, err
	}

	base := predicates.Apply(query.From(m_product.TableName))

	total, err := q.readModel.Count(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	size := pagination.NormalizePageSize(req.PageSize, q.defaultPageSize, q.maxPageSize)
	page := pagination.Compute(req.PageNo, size, total)

	result := &Result{
		Items:      []*domain.Product{},
		TotalCount: total,
		LastPage:   page.LastPage,
		PageNo:     page.PageNo,
		PageSize:   page.PageSize,
	}
	if page.Beyond() {
		return result, nil
	}

	items, err := q.readModel.Fetch(ctx, directive.Apply(base).
		Limit(int64(page.PageSize)).
		Offset(page.Offset))
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}

	if items != nil {
		result.Items = items
	}
	result.NumOfResultsOnCurPage = len(result.Items)
	return result, nil
}
