package sqlstore

import (
	"context"
	"fmt"

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
		Build(s.dialect)

	rows, err := s.db.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query brands: %w", classify(err))
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan brand: %w", classify(err))
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate brands: %w", classify(err))
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
		Build(s.dialect)

	rows, err := s.db.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query product categories: %w", classify(err))
	}
	defer rows.Close()

	for rows.Next() {
		var (
			productID int64
			category  domain.Category
		)
		if err := rows.Scan(&productID, &category.ID, &category.Name); err != nil {
			return nil, fmt.Errorf("failed to scan product category: %w", classify(err))
		}
		out[productID] = append(out[productID], category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate product categories: %w", classify(err))
	}

	return out, nil
}
