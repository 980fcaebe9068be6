package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/light-bringer/storefront-catalog/internal/app/product/contracts"
	"github.com/light-bringer/storefront-catalog/internal/models/m_product"
	"github.com/light-bringer/storefront-catalog/internal/pkg/query"
)

// Transaction-scoped constraint toggles. Both settings end with the
// transaction, so a rollback also restores enforcement.
var constraintSQL = map[string]struct{ relax, restore string }{
	DriverPostgres: {
		relax:   "SET CONSTRAINTS ALL DEFERRED",
		restore: "SET CONSTRAINTS ALL IMMEDIATE",
	},
	DriverSQLite: {
		relax:   "PRAGMA defer_foreign_keys = ON",
		restore: "PRAGMA defer_foreign_keys = OFF",
	},
}

// InCascadeTx runs fn on a dedicated connection inside one transaction.
func (s *Store) InCascadeTx(ctx context.Context, fn func(context.Context, contracts.CascadeTx) error) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", classify(err))
	}
	defer conn.Close()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", classify(err))
	}

	if err := fn(ctx, &cascadeTx{store: s, tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.WarnContext(ctx, "rollback failed", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", classify(err))
	}
	return nil
}

type cascadeTx struct {
	store *Store
	tx    *sql.Tx
}

func (c *cascadeTx) RelaxConstraints(ctx context.Context) error {
	if _, err := c.tx.ExecContext(ctx, constraintSQL[c.store.driver].relax); err != nil {
		return classify(err)
	}
	return nil
}

// RestoreConstraints returns enforcement to immediate. PostgreSQL checks
// pending deferred constraints on the switch; SQLite only checks them at
// commit, so violations are looked up explicitly first.
func (c *cascadeTx) RestoreConstraints(ctx context.Context) error {
	if c.store.driver == DriverSQLite {
		if err := c.checkForeignKeys(ctx); err != nil {
			return err
		}
	}
	if _, err := c.tx.ExecContext(ctx, constraintSQL[c.store.driver].restore); err != nil {
		return classify(err)
	}
	return nil
}

func (c *cascadeTx) checkForeignKeys(ctx context.Context) error {
	rows, err := c.tx.QueryContext(ctx, "PRAGMA foreign_key_check")
	if err != nil {
		return classify(err)
	}
	defer rows.Close()

	if rows.Next() {
		var (
			table  string
			rowID  sql.NullInt64
			parent string
			fkid   int64
		)
		if err := rows.Scan(&table, &rowID, &parent, &fkid); err != nil {
			return classify(err)
		}
		return fmt.Errorf("%w: %s row %d references missing %s", errForeignKey, table, rowID.Int64, parent)
	}
	return classify(rows.Err())
}

func (c *cascadeTx) DeleteDependents(ctx context.Context, table, column string, productID int64) (int64, error) {
	return c.exec(ctx, query.From(table).Where(query.Eq(column, productID)).Delete())
}

func (c *cascadeTx) DeleteProduct(ctx context.Context, id int64) (int64, error) {
	return c.exec(ctx, query.From(m_product.TableName).Where(query.Eq(m_product.ID, id)).Delete())
}

func (c *cascadeTx) exec(ctx context.Context, b *query.Builder) (int64, error) {
	stmt := b.Build(c.store.dialect)
	res, err := c.tx.ExecContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return 0, classify(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, classify(err)
	}
	return n, nil
}
