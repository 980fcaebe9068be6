package delete_product

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/light-bringer/storefront-catalog/internal/app/product/contracts"
	"github.com/light-bringer/storefront-catalog/internal/app/product/domain"
	"github.com/light-bringer/storefront-catalog/internal/models/m_comment"
	"github.com/light-bringer/storefront-catalog/internal/models/m_product_category"
	"github.com/light-bringer/storefront-catalog/internal/models/m_review"
)

// DefaultTimeout bounds a cascade once its transaction has begun.
const DefaultTimeout = 30 * time.Second

type dependent struct {
	table  string
	column string
}

// Tables holding a foreign key to products, in deletion order.
var dependents = []dependent{
	{table: m_product_category.TableName, column: m_product_category.ProductID},
	{table: m_review.TableName, column: m_review.ProductID},
	{table: m_comment.TableName, column: m_comment.ProductID},
}

// Request identifies the product to delete.
type Request struct {
	ProductID int64
}

// Interactor handles the cascade delete use case.
type Interactor struct {
	store   contracts.CascadeStore
	timeout time.Duration
	logger  *slog.Logger
}

// NewInteractor creates a new delete product interactor.
func NewInteractor(store contracts.CascadeStore, timeout time.Duration, logger *slog.Logger) *Interactor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Interactor{
		store:   store,
		timeout: timeout,
		logger:  logger,
	}
}

// Execute removes a product and every row that references it in one
// transaction.
//
// Foreign key enforcement is relaxed for that transaction only and is
// restored on every exit path. A caller that cancels ctx after the
// transaction has begun still waits for commit or rollback.
// Failures are returned as *domain.CascadeError.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	if req.ProductID <= 0 {
		return &domain.CascadeError{ProductID: req.ProductID, State: domain.CascadeStart, Err: domain.ErrProductNotFound}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	txCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), i.timeout)
	defer cancel()

	run := &cascade{
		productID: req.ProductID,
		state:     domain.CascadeStart,
		logger:    i.logger.With("product_id", req.ProductID),
	}

	if err := i.store.InCascadeTx(txCtx, run.execute); err != nil {
		failedAt := run.state
		run.logger.WarnContext(ctx, "cascade delete aborted", "state", failedAt, "error", err)
		run.state = domain.CascadeAborted
		return &domain.CascadeError{ProductID: req.ProductID, State: failedAt, Err: err}
	}

	run.transition(ctx, domain.CascadeDone)
	return nil
}

// cascade tracks one run of the state machine.
type cascade struct {
	productID int64
	state     domain.CascadeState
	logger    *slog.Logger
}

func (c *cascade) transition(ctx context.Context, next domain.CascadeState) {
	c.logger.DebugContext(ctx, "cascade transition", "from", c.state, "to", next)
	c.state = next
}

// execute is the transaction body. It may run more than once when the
// storage engine retries an aborted transaction, so it starts from Start.
func (c *cascade) execute(ctx context.Context, tx contracts.CascadeTx) (err error) {
	c.state = domain.CascadeStart

	if err := tx.RelaxConstraints(ctx); err != nil {
		return fmt.Errorf("relax constraints: %w", err)
	}
	c.transition(ctx, domain.CascadeConstraintsRelaxed)

	defer func() {
		restoreErr := tx.RestoreConstraints(ctx)
		switch {
		case restoreErr == nil && err == nil:
			c.transition(ctx, domain.CascadeConstraintsRestored)
		case restoreErr != nil && err == nil:
			err = fmt.Errorf("restore constraints: %w", restoreErr)
		case restoreErr != nil:
			// Rollback ends the transaction-scoped setting either way.
			c.logger.DebugContext(ctx, "restore after failure", "error", restoreErr)
		}
	}()

	for _, d := range dependents {
		n, err := tx.DeleteDependents(ctx, d.table, d.column, c.productID)
		if err != nil {
			return fmt.Errorf("delete %s: %w", d.table, err)
		}
		c.logger.DebugContext(ctx, "dependents deleted", "table", d.table, "rows", n)
	}
	c.transition(ctx, domain.CascadeDependentsCleared)

	n, err := tx.DeleteProduct(ctx, c.productID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if n == 0 {
		return domain.ErrProductNotFound
	}
	c.transition(ctx, domain.CascadeProductRemoved)

	return nil
}
