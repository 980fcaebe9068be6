package sqlstore

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/mattn/go-sqlite3"

	"github.com/light-bringer/storefront-catalog/internal/app/product/domain"
)

// PostgreSQL SQLSTATE codes that map onto the domain taxonomy.
const (
	pgForeignKeyViolation  = "23503"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
	pgAdminShutdown        = "57P01"
	pgTooManyConnections   = "53300"
)

var errForeignKey = fmt.Errorf("%w: deferred foreign key check failed", domain.ErrConstraint)

// classify wraps driver errors with the matching domain sentinel. The
// original error stays in the chain.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgForeignKeyViolation:
			return fmt.Errorf("%w: %w", domain.ErrConstraint, err)
		case pgErr.Code == pgSerializationFailure, pgErr.Code == pgDeadlockDetected, pgErr.Code == pgLockNotAvailable:
			return fmt.Errorf("%w: %w", domain.ErrTransaction, err)
		case pgErr.Code == pgAdminShutdown, pgErr.Code == pgTooManyConnections, len(pgErr.Code) == 5 && pgErr.Code[:2] == "08":
			return fmt.Errorf("%w: %w", domain.ErrTransientStorage, err)
		}
		return err
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch {
		case liteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%w: %w", domain.ErrConstraint, err)
		case liteErr.Code == sqlite3.ErrBusy, liteErr.Code == sqlite3.ErrLocked:
			return fmt.Errorf("%w: %w", domain.ErrTransaction, err)
		case liteErr.Code == sqlite3.ErrIoErr, liteErr.Code == sqlite3.ErrCantOpen:
			return fmt.Errorf("%w: %w", domain.ErrTransientStorage, err)
		}
		return err
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrTransientStorage, err)
	}

	return err
}
