package delete_product

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
)

// memoryStore keeps rows per table as product ids and applies a
// transaction's deletes only when the body succeeds.
type memoryStore struct {
	tables   map[string][]int64
	relaxed  bool
	calls    []string
	failOn   string
	failErr  error
	restores int
	onBegin  func()
	ctxErr   error
	deadline bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{tables: map[string][]int64{
		"products":           {42, 43},
		"product_categories": {42, 42, 43},
		"reviews":            {42, 43},
		"comments":           {42},
	}}
}

func (s *memoryStore) InCascadeTx(ctx context.Context, fn func(context.Context, contracts.CascadeTx) error) error {
	if s.onBegin != nil {
		s.onBegin()
	}
	s.ctxErr = ctx.Err()
	_, s.deadline = ctx.Deadline()
	tx := &memoryTx{store: s, staged: make(map[string][]int64)}
	for table, rows := range s.tables {
		tx.staged[table] = append([]int64(nil), rows...)
	}
	if err := fn(ctx, tx); err != nil {
		s.relaxed = false
		return err
	}
	s.tables = tx.staged
	s.relaxed = false
	return nil
}

type memoryTx struct {
	store  *memoryStore
	staged map[string][]int64
}

func (t *memoryTx) record(call string) error {
	t.store.calls = append(t.store.calls, call)
	if t.store.failOn == call {
		return t.store.failErr
	}
	return nil
}

func (t *memoryTx) RelaxConstraints(context.Context) error {
	if err := t.record("relax"); err != nil {
		return err
	}
	t.store.relaxed = true
	return nil
}

func (t *memoryTx) RestoreConstraints(context.Context) error {
	t.store.restores++
	t.store.relaxed = false
	return t.record("restore")
}

func (t *memoryTx) remove(table string, id int64) int64 {
	var kept []int64
	var n int64
	for _, row := range t.staged[table] {
		if row == id {
			n++
			continue
		}
		kept = append(kept, row)
	}
	t.staged[table] = kept
	return n
}

func (t *memoryTx) DeleteDependents(_ context.Context, table, _ string, id int64) (int64, error) {
	if err := t.record("delete " + table); err != nil {
		return 0, err
	}
	return t.remove(table, id), nil
}

func (t *memoryTx) DeleteProduct(_ context.Context, id int64) (int64, error) {
	if err := t.record("delete products"); err != nil {
		return 0, err
	}
	return t.remove("products", id), nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInteractor_Execute(t *testing.T) {
	t.Run("removes product and dependents in order", func(t *testing.T) {
		store := newMemoryStore()
		interactor := NewInteractor(store, time.Second, quietLogger())

		require.NoError(t, interactor.Execute(context.Background(), &Request{ProductID: 42}))

		assert.Equal(t, []string{
			"relax",
			"delete product_categories",
			"delete reviews",
			"delete comments",
			"delete products",
			"restore",
		}, store.calls)
		assert.Equal(t, []int64{43}, store.tables["products"])
		assert.Equal(t, []int64{43}, store.tables["product_categories"])
		assert.Equal(t, []int64{43}, store.tables["reviews"])
		assert.Empty(t, store.tables["comments"])
		assert.False(t, store.relaxed)
	})

	t.Run("missing product rolls back with not found", func(t *testing.T) {
		store := newMemoryStore()
		interactor := NewInteractor(store, time.Second, quietLogger())

		err := interactor.Execute(context.Background(), &Request{ProductID: 7})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		var cerr *domain.CascadeError
		require.True(t, errors.As(err, &cerr))
		assert.Equal(t, domain.CascadeDependentsCleared, cerr.State)
		assert.Equal(t, 1, store.restores)
	})

	t.Run("mid-cascade failure restores and leaves rows untouched", func(t *testing.T) {
		store := newMemoryStore()
		store.failOn = "delete reviews"
		store.failErr = fmt.Errorf("lock timeout: %w", domain.ErrTransaction)
		before := map[string][]int64{}
		for k, v := range store.tables {
			before[k] = append([]int64(nil), v...)
		}

		err := NewInteractor(store, time.Second, quietLogger()).Execute(context.Background(), &Request{ProductID: 42})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrTransaction)

		var cerr *domain.CascadeError
		require.True(t, errors.As(err, &cerr))
		assert.Equal(t, int64(42), cerr.ProductID)
		assert.Equal(t, domain.CascadeConstraintsRelaxed, cerr.State)

		assert.Equal(t, 1, store.restores)
		assert.False(t, store.relaxed)
		assert.Equal(t, before, store.tables)
		assert.NotContains(t, store.calls, "delete products")
	})

	t.Run("restore failure aborts an otherwise successful cascade", func(t *testing.T) {
		store := newMemoryStore()
		store.failOn = "restore"
		store.failErr = fmt.Errorf("deferred check: %w", domain.ErrConstraint)

		err := NewInteractor(store, time.Second, quietLogger()).Execute(context.Background(), &Request{ProductID: 42})
		assert.ErrorIs(t, err, domain.ErrConstraint)
		assert.Equal(t, []int64{42, 43}, store.tables["products"])
	})

	t.Run("relax failure never restores", func(t *testing.T) {
		store := newMemoryStore()
		store.failOn = "relax"
		store.failErr = domain.ErrTransientStorage

		err := NewInteractor(store, time.Second, quietLogger()).Execute(context.Background(), &Request{ProductID: 42})

		var cerr *domain.CascadeError
		require.True(t, errors.As(err, &cerr))
		assert.Equal(t, domain.CascadeStart, cerr.State)
		assert.Equal(t, 0, store.restores)
	})

	t.Run("cancellation is detached once the transaction begins", func(t *testing.T) {
		store := newMemoryStore()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		store.onBegin = cancel

		err := NewInteractor(store, time.Second, quietLogger()).Execute(ctx, &Request{ProductID: 42})

		require.NoError(t, err)
		assert.NoError(t, store.ctxErr)
		assert.True(t, store.deadline)
		assert.Equal(t, []int64{43}, store.tables["products"])
	})

	t.Run("already cancelled request never begins", func(t *testing.T) {
		store := newMemoryStore()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := NewInteractor(store, time.Second, quietLogger()).Execute(ctx, &Request{ProductID: 42})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, store.calls)
	})

	t.Run("invalid id", func(t *testing.T) {
		err := NewInteractor(newMemoryStore(), 0, nil).Execute(context.Background(), &Request{ProductID: 0})
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})
}
