// Package lookup resolves foreign identifiers for a result page in a
// bounded number of round trips.
package lookup

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/light-bringer/storefront-catalog/internal/app/product/contracts"
	"github.com/light-bringer/storefront-catalog/internal/app/product/domain"
)

// MaxBatch is the largest id set sent to storage in one query.
const MaxBatch = 500

// Resolved is the outcome for one requested id. Found is false when storage
// has no match, so an absent value is distinguishable from an id that was
// never requested.
type Resolved[T any] struct {
	Value T
	Found bool
}

// BrandNameCache is a read-through cache for brand names.
type BrandNameCache interface {
	// GetNames returns the cached subset of ids.
	GetNames(ctx context.Context, ids []int64) (map[int64]string, error)
	// SetNames stores names.
	SetNames(ctx context.Context, names map[int64]string) error
}

// Query handles brand-name and product-category lookups.
type Query struct {
	store    contracts.LookupStore
	cache    BrandNameCache
	maxBatch int
	logger   *slog.Logger
}

// Option configures a Query.
type Option func(*Query)

// WithBrandCache puts cache in front of brand-name lookups.
func WithBrandCache(cache BrandNameCache) Option {
	return func(q *Query) { q.cache = cache }
}

// WithMaxBatch overrides MaxBatch. Used by tests.
func WithMaxBatch(n int) Option {
	return func(q *Query) {
		if n > 0 {
			q.maxBatch = n
		}
	}
}

// WithLogger sets the logger used for degraded cache paths.
func WithLogger(logger *slog.Logger) Option {
	return func(q *Query) { q.logger = logger }
}

// NewQuery creates a new lookup query.
func NewQuery(store contracts.LookupStore, opts ...Option) *Query {
	q := &Query{
		store:    store,
		maxBatch: MaxBatch,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// ResolveBrandNames maps every requested brand id to its display name.
func (q *Query) ResolveBrandNames(ctx context.Context, ids []int64) (map[int64]Resolved[string], error) {
	distinct := dedupe(ids)
	result := make(map[int64]Resolved[string], len(distinct))
	if len(distinct) == 0 {
		return result, nil
	}

	missing := distinct
	if q.cache != nil {
		cached, err := q.cache.GetNames(ctx, distinct)
		if err != nil {
			q.logger.WarnContext(ctx, "brand cache read failed", "error", err)
		} else {
			missing = missing[:0:0]
			for _, id := range distinct {
				if name, ok := cached[id]; ok {
					result[id] = Resolved[string]{Value: name, Found: true}
					continue
				}
				missing = append(missing, id)
			}
		}
	}

	fetched := make(map[int64]string, len(missing))
	for _, chunk := range chunks(missing, q.maxBatch) {
		names, err := q.store.BrandNames(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("resolve brand names: %w", err)
		}
		for id, name := range names {
			fetched[id] = name
		}
	}

	for _, id := range missing {
		name, ok := fetched[id]
		result[id] = Resolved[string]{Value: name, Found: ok}
	}

	if q.cache != nil && len(fetched) > 0 {
		if err := q.cache.SetNames(ctx, fetched); err != nil {
			q.logger.WarnContext(ctx, "brand cache write failed", "error", err)
		}
	}

	return result, nil
}

// ResolveProductCategories maps every requested product id to its
// categories. A product with no category rows is reported as not found.
func (q *Query) ResolveProductCategories(ctx context.Context, productIDs []int64) (map[int64]Resolved[[]domain.Category], error) {
	distinct := dedupe(productIDs)
	result := make(map[int64]Resolved[[]domain.Category], len(distinct))

	for _, chunk := range chunks(distinct, q.maxBatch) {
		categories, err := q.store.ProductCategories(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("resolve product categories: %w", err)
		}
		for _, id := range chunk {
			list, ok := categories[id]
			result[id] = Resolved[[]domain.Category]{Value: list, Found: ok && len(list) > 0}
		}
	}

	return result, nil
}

// dedupe returns the distinct ids in ascending order.
func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func chunks(ids []int64, size int) [][]int64 {
	var out [][]int64
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		out = append(out, ids[start:end])
	}
	return out
}
