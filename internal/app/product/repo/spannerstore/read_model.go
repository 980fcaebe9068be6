package spannerstore

import (
	"context"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/storefront-catalog/internal/app/product/domain"
	"github.com/light-bringer/storefront-catalog/internal/models/m_product"
	"github.com/light-bringer/storefront-catalog/internal/pkg/query"
)

// Count runs b as a COUNT(*) query.
func (s *Store) Count(ctx context.Context, b *query.Builder) (int64, error) {
	var total int64
	err := s.query(ctx, b.Count().Build(query.Spanner), func(row *spanner.Row) error {
		return row.Columns(&total)
	})
	if err != nil {
		return 0, wrap("count products", err)
	}
	return total, nil
}

// Fetch runs b with the product columns selected.
func (s *Store) Fetch(ctx context.Context, b *query.Builder) ([]*domain.Product, error) {
	stmt := b.Select(s.model.ReadColumns()...).Build(query.Spanner)
	s.logger.DebugContext(ctx, "fetch products", "sql", stmt.SQL)

	products := []*domain.Product{}
	err := s.query(ctx, stmt, func(row *spanner.Row) error {
		data, err := decodeProduct(row)
		if err != nil {
			return err
		}
		products = append(products, s.model.ToDomain(data))
		return nil
	})
	if err != nil {
		return nil, wrap("query products", err)
	}
	return products, nil
}

// GetByID retrieves a product by id.
func (s *Store) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	row, err := s.client.Single().ReadRow(ctx, m_product.TableName, spanner.Key{id}, s.model.ReadColumns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrProductNotFound
		}
		return nil, wrap("read product", classify(err))
	}

	data, err := decodeProduct(row)
	if err != nil {
		return nil, err
	}
	return s.model.ToDomain(data), nil
}
