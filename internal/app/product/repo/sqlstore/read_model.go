package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/light-bringer/storefront-catalog/internal/app/product/domain"
	"github.com/light-bringer/storefront-catalog/internal/models/m_product"
	"github.com/light-bringer/storefront-catalog/internal/pkg/query"
)

// Count runs b as a COUNT(*) query.
func (s *Store) Count(ctx context.Context, b *query.Builder) (int64, error) {
	stmt := b.Count().Build(s.dialect)

	var total int64
	if err := s.db.QueryRowContext(ctx, stmt.SQL, stmt.Args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", classify(err))
	}
	return total, nil
}

// Fetch runs b with the product columns selected.
func (s *Store) Fetch(ctx context.Context, b *query.Builder) ([]*domain.Product, error) {
	stmt := b.Select(s.model.ReadColumns()...).Build(s.dialect)
	s.logger.DebugContext(ctx, "fetch products", "sql", stmt.SQL)

	rows, err := s.db.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", classify(err))
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		data, err := s.scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, s.model.ToDomain(data))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", classify(err))
	}

	return products, nil
}

// GetByID retrieves a product by id.
func (s *Store) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	stmt := query.From(m_product.TableName).
		Select(s.model.ReadColumns()...).
		Where(query.Eq(m_product.ID, id)).
		Build(s.dialect)

	data, err := s.scanProduct(s.db.QueryRowContext(ctx, stmt.SQL, stmt.Args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}

	return s.model.ToDomain(data), nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanProduct reads one row selected with ReadColumns.
func (s *Store) scanProduct(row rowScanner) (*m_product.Data, error) {
	var data m_product.Data
	err := row.Scan(
		&data.ID,
		&data.Name,
		&data.Description,
		&data.Price,
		&data.OldPrice,
		&data.Discount,
		&data.Rating,
		s.stringListDest(&data.Colors),
		s.int64ListDest(&data.BrandIDs),
		&data.Gender,
		s.stringListDest(&data.Occasions),
		&data.ImageURL,
		&data.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan product: %w", classify(err))
	}
	return &data, nil
}
