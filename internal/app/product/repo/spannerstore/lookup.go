package spannerstore

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/storefront-catalog/internal/app/product/domain"
	"github.com/light-bringer/storefront-catalog/internal/models/m_brand"
	"github.com/light-bringer/storefront-catalog/internal/models/m_category"
	"github.com/light-bringer/storefront-catalog/internal/models/m_product_category"
	"github.com/light-bringer/storefront-catalog/internal/pkg/query"
)

// BrandNames resolves brand ids in one query.
func (s *Store) BrandNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	stmt := query.From(m_brand.TableName).
		Select(m_brand.ID, m_brand.Name).
		Where(query.In(m_brand.ID, ids)).
		Build(query.Spanner)

	err := s.query(ctx, stmt, func(row *spanner.Row) error {
		var (
			id   int64
			name string
		)
		if err := row.Columns(&id, &name); err != nil {
			return err
		}
		names[id] = name
		return nil
	})
	if err != nil {
		return nil, wrap("query brands", err)
	}
	return names, nil
}

// ProductCategories resolves the categories of every product id in one
// join query.
func (s *Store) ProductCategories(ctx context.Context, productIDs []int64) (map[int64][]domain.Category, error) {
	out := make(map[int64][]domain.Category, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}

	table := fmt.Sprintf("%s pc JOIN %s c ON c.%s = pc.%s",
		m_product_category.TableName, m_category.TableName, m_category.ID, m_product_category.CategoryID)
	stmt := query.From(table).
		Select("pc."+m_product_category.ProductID, "c."+m_category.ID, "c."+m_category.Name).
		Where(query.In("pc."+m_product_category.ProductID, productIDs)).
		OrderBy("pc."+m_product_category.ProductID, query.Asc).
		OrderBy("c."+m_category.ID, query.Asc).
		Build(query.Spanner)

	err := s.query(ctx, stmt, func(row *spanner.Row) error {
		var (
			productID int64
			category  domain.Category
		)
		if err := row.Columns(&productID, &category.ID, &category.Name); err != nil {
			return err
		}
		out[productID] = append(out[productID], category)
		return nil
	})
	if err != nil {
		return nil, wrap("query product categories", err)
	}
	return out, nil
}
