package contracts

import "context"

// CascadeStore runs a cascade delete on one exclusive transaction.
type CascadeStore interface {
	// InCascadeTx binds a single connection, begins a transaction and runs fn
	// on it. The transaction commits when fn returns nil and rolls back
	// otherwise. Errors are classified into the domain error taxonomy.
	InCascadeTx(ctx context.Context, fn func(ctx context.Context, tx CascadeTx) error) error
}

// CascadeTx is the set of statements a cascade delete may issue. Every
// method runs inside the transaction opened by InCascadeTx.
type CascadeTx interface {
	// RelaxConstraints defers foreign key enforcement for this transaction only.
	RelaxConstraints(ctx context.Context) error

	// RestoreConstraints re-enables immediate enforcement, checking any
	// deferred constraints.
	RestoreConstraints(ctx context.Context) error

	// DeleteDependents removes rows of table whose product_id column equals
	// productID and returns the number of rows removed.
	DeleteDependents(ctx context.Context, table, column string, productID int64) (int64, error)

	// DeleteProduct removes the product row and returns the number of rows removed.
	DeleteProduct(ctx context.Context, id int64) (int64, error)
}
