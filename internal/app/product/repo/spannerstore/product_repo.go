package spannerstore

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/storefront-catalog/internal/app/product/domain"
	"github.com/light-bringer/storefront-catalog/internal/models/m_product"
	"github.com/light-bringer/storefront-catalog/internal/pkg/committer"
	"github.com/light-bringer/storefront-catalog/internal/pkg/query"
)

// Insert persists a new product. The id comes from the table's
// bit-reversed sequence and is read back with THEN RETURN.
func (s *Store) Insert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	data := s.model.FromDomain(product)

	p := query.NewParams(query.Spanner)
	markers := make([]string, 0, len(s.model.WriteColumns()))
	for _, v := range s.model.WriteValues(data) {
		markers = append(markers, p.Bind(v))
	}
	stmt := p.Statement(fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) THEN RETURN %s",
		m_product.TableName,
		strings.Join(s.model.WriteColumns(), ", "),
		strings.Join(markers, ", "),
		m_product.ID,
	))

	var id int64
	_, err := s.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		iter := txn.Query(ctx, stmt.Spanner())
		defer iter.Stop()

		row, err := iter.Next()
		if err == iterator.Done {
			return fmt.Errorf("insert returned no id")
		}
		if err != nil {
			return err
		}
		return row.Columns(&id)
	})
	if err != nil {
		return nil, wrap("insert product", classify(err))
	}

	return product.WithID(id), nil
}

// UpdateMut builds the mutation replacing every attribute of product except
// created_at. Applying it fails with NotFound when the row is gone.
func (s *Store) UpdateMut(product *domain.Product) *spanner.Mutation {
	data := s.model.FromDomain(product)

	columns := []string{m_product.ID}
	vals := []interface{}{data.ID}
	for i, col := range s.model.WriteColumns() {
		if col == m_product.CreatedAt {
			continue
		}
		columns = append(columns, col)
		vals = append(vals, s.model.WriteValues(data)[i])
	}

	return spanner.Update(m_product.TableName, columns, values(vals))
}

// Update replaces every attribute of an existing product.
func (s *Store) Update(ctx context.Context, product *domain.Product) error {
	plan := committer.NewPlan()
	plan.Add(s.UpdateMut(product))

	if err := s.committer.Apply(ctx, plan); err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return domain.ErrProductNotFound
		}
		return wrap("update product", classify(err))
	}
	return nil
}
