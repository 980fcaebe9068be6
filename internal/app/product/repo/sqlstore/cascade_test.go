package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-catalog/internal/app/product/contracts"
	"github.com/light-bringer/storefront-catalog/internal/app/product/domain"
	"github.com/light-bringer/storefront-catalog/internal/app/product/usecases/delete_product"
)

// faultyStore fails the dependent delete for one table.
type faultyStore struct {
	*Store
	failTable string
}

func (f *faultyStore) InCascadeTx(ctx context.Context, fn func(context.Context, contracts.CascadeTx) error) error {
	return f.Store.InCascadeTx(ctx, func(ctx context.Context, tx contracts.CascadeTx) error {
		return fn(ctx, &faultyTx{CascadeTx: tx, failTable: f.failTable})
	})
}

type faultyTx struct {
	contracts.CascadeTx
	failTable string
}

func (f *faultyTx) DeleteDependents(ctx context.Context, table, column string, id int64) (int64, error) {
	if table == f.failTable {
		return 0, fmt.Errorf("simulated lock conflict: %w", domain.ErrTransaction)
	}
	return f.CascadeTx.DeleteDependents(ctx, table, column, id)
}

func seedWithDependents(t *testing.T, s *Store) (*domain.Product, *domain.Product) {
	t.Helper()

	target := seedProduct(t, s, domain.ProductInput{Name: "target"})
	other := seedProduct(t, s, domain.ProductInput{Name: "other"})
	mustExec(t, s, "INSERT INTO categories (id, name) VALUES (1, 'A'), (2, 'B')")
	for _, id := range []int64{target.ID(), other.ID()} {
		mustExec(t, s, "INSERT INTO product_categories (product_id, category_id) VALUES (?, 1), (?, 2)", id, id)
		mustExec(t, s, "INSERT INTO reviews (product_id, author, rating, body) VALUES (?, 'ann', 5, 'great')", id)
		mustExec(t, s, "INSERT INTO comments (product_id, author, body) VALUES (?, 'bob', 'nice')", id)
	}
	return target, other
}

func deferFlag(t *testing.T, s *Store) int {
	t.Helper()
	var v int
	require.NoError(t, s.DB().QueryRow("PRAGMA defer_foreign_keys").Scan(&v))
	return v
}

func newDeleter(store contracts.CascadeStore) *delete_product.Interactor {
	return delete_product.NewInteractor(store, 5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCascadeDelete_RemovesEverything(t *testing.T) {
	s := newTestStore(t)
	target, other := seedWithDependents(t, s)

	require.NoError(t, newDeleter(s).Execute(context.Background(), &delete_product.Request{ProductID: target.ID()}))

	_, err := s.GetByID(context.Background(), target.ID())
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	for _, table := range []string{"product_categories", "reviews", "comments"} {
		assert.Equal(t, 0, countRows(t, s, table, target.ID()), table)
		assert.Equal(t, map[string]int{"product_categories": 2, "reviews": 1, "comments": 1}[table], countRows(t, s, table, other.ID()), table)
	}
	assert.Equal(t, 0, deferFlag(t, s))
}

func TestCascadeDelete_MissingProduct(t *testing.T) {
	s := newTestStore(t)
	seedWithDependents(t, s)

	err := newDeleter(s).Execute(context.Background(), &delete_product.Request{ProductID: 4242})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, deferFlag(t, s))
}

func TestCascadeDelete_MidCascadeFailureRollsBack(t *testing.T) {
	s := newTestStore(t)
	target, _ := seedWithDependents(t, s)

	err := newDeleter(&faultyStore{Store: s, failTable: "reviews"}).
		Execute(context.Background(), &delete_product.Request{ProductID: target.ID()})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransaction)

	var cerr *domain.CascadeError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, domain.CascadeConstraintsRelaxed, cerr.State)

	// product_categories were deleted inside the transaction and must be back.
	assert.Equal(t, 2, countRows(t, s, "product_categories", target.ID()))
	assert.Equal(t, 1, countRows(t, s, "reviews", target.ID()))
	assert.Equal(t, 1, countRows(t, s, "comments", target.ID()))
	_, err = s.GetByID(context.Background(), target.ID())
	assert.NoError(t, err)
	assert.Equal(t, 0, deferFlag(t, s))
}

func TestCascadeTx_RestoreDetectsDanglingRows(t *testing.T) {
	s := newTestStore(t)
	target, _ := seedWithDependents(t, s)

	err := s.InCascadeTx(context.Background(), func(ctx context.Context, tx contracts.CascadeTx) error {
		require.NoError(t, tx.RelaxConstraints(ctx))
		n, err := tx.DeleteProduct(ctx, target.ID())
		require.NoError(t, err)
		require.Equal(t, int64(1), n)
		return tx.RestoreConstraints(ctx)
	})
	assert.ErrorIs(t, err, domain.ErrConstraint)

	_, err = s.GetByID(context.Background(), target.ID())
	assert.NoError(t, err)
}

func TestForeignKeysEnforcedOutsideCascade(t *testing.T) {
	s := newTestStore(t)
	target, _ := seedWithDependents(t, s)

	_, err := s.DB().Exec("DELETE FROM products WHERE id = ?", target.ID())
	require.Error(t, err)
	assert.ErrorIs(t, classify(err), domain.ErrConstraint)
}
