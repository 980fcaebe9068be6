package spannerstore

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/storefront-catalog/internal/app/product/contracts"
	"github.com/light-bringer/storefront-catalog/internal/models/m_product"
	"github.com/light-bringer/storefront-catalog/internal/pkg/query"
)

// InCascadeTx runs fn inside a read-write transaction. Spanner may abort and
// re-run the function, so fn must be safe to repeat.
//
// Spanner checks foreign keys at commit, after every statement of the
// transaction has run, so relaxing and restoring constraints are no-ops.
func (s *Store) InCascadeTx(ctx context.Context, fn func(context.Context, contracts.CascadeTx) error) error {
	_, err := s.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		return fn(ctx, &cascadeTx{store: s, txn: txn})
	})
	return classify(err)
}

type cascadeTx struct {
	store *Store
	txn   *spanner.ReadWriteTransaction
}

func (c *cascadeTx) RelaxConstraints(ctx context.Context) error {
	c.store.logger.DebugContext(ctx, "foreign keys checked at commit")
	return nil
}

func (c *cascadeTx) RestoreConstraints(context.Context) error {
	return nil
}

func (c *cascadeTx) DeleteDependents(ctx context.Context, table, column string, productID int64) (int64, error) {
	return c.exec(ctx, query.From(table).Where(query.Eq(column, productID)).Delete())
}

func (c *cascadeTx) DeleteProduct(ctx context.Context, id int64) (int64, error) {
	return c.exec(ctx, query.From(m_product.TableName).Where(query.Eq(m_product.ID, id)).Delete())
}

func (c *cascadeTx) exec(ctx context.Context, b *query.Builder) (int64, error) {
	n, err := c.txn.Update(ctx, b.Build(query.Spanner).Spanner())
	if err != nil {
		return 0, err
	}
	return n, nil
}
