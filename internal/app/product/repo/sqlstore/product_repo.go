package sqlstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/light-bringer/storefront-catalog/internal/app/product/domain"
	"github.com/light-bringer/storefront-catalog/internal/models/m_product"
	"github.com/light-bringer/storefront-catalog/internal/pkg/query"
)

// Insert persists a new product and returns it with the generated id.
func (s *Store) Insert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	data := s.model.FromDomain(product)

	p := query.NewParams(s.dialect)
	markers := make([]string, 0, len(s.model.WriteColumns()))
	for _, v := range s.model.WriteValues(data) {
		markers = append(markers, p.Bind(v))
	}
	stmt := p.Statement(fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		m_product.TableName,
		strings.Join(s.model.WriteColumns(), ", "),
		strings.Join(markers, ", "),
		m_product.ID,
	))

	var id int64
	if err := s.db.QueryRowContext(ctx, stmt.SQL, stmt.Args...).Scan(&id); err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", classify(err))
	}

	return product.WithID(id), nil
}

// Update replaces every attribute of an existing product. created_at is
// left as stored.
func (s *Store) Update(ctx context.Context, product *domain.Product) error {
	data := s.model.FromDomain(product)

	p := query.NewParams(s.dialect)
	columns := s.model.WriteColumns()
	values := s.model.WriteValues(data)
	assignments := make([]string, 0, len(columns))
	for i, col := range columns {
		if col == m_product.CreatedAt {
			continue
		}
		assignments = append(assignments, col+" = "+p.Bind(values[i]))
	}
	stmt := p.Statement(fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s",
		m_product.TableName,
		strings.Join(assignments, ", "),
		query.Eq(m_product.ID, data.ID).SQL(p),
	))

	res, err := s.db.ExecContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update product: %w", classify(err))
	}
	if n == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
