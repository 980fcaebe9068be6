// Package sqlstore implements the catalog storage contracts on database/sql
// for PostgreSQL (pgx) and SQLite (go-sqlite3).
package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/jackc/pgx/v4/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/light-bringer/storefront-catalog/internal/models/m_product"
	"github.com/light-bringer/storefront-catalog/internal/pkg/query"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Store provides catalog persistence on a *sql.DB.
type Store struct {
	db      *sql.DB
	driver  string
	dialect query.Dialect
	model   *m_product.Model
	logger  *slog.Logger
}

// Open connects to the database for driver ("postgres" or "sqlite").
//
// SQLite connections are limited to one so that an in-memory database
// survives for the life of the Store and foreign key enforcement, which is a
// per-connection setting, is always on.
func Open(ctx context.Context, driver, dsn string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		sqlDriver string
		dialect   query.Dialect
	)
	switch driver {
	case DriverPostgres:
		sqlDriver, dialect = "pgx", query.Postgres
	case DriverSQLite:
		sqlDriver, dialect = "sqlite3", query.SQLite
		dsn = withSQLiteParams(dsn)
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == DriverSQLite {
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	return &Store{
		db:      db,
		driver:  driver,
		dialect: dialect,
		model:   m_product.NewModel(),
		logger:  logger.With("store", driver),
	}, nil
}

// withSQLiteParams adds the connection parameters the store relies on.
func withSQLiteParams(dsn string) string {
	params := []string{"_foreign_keys=on", "_busy_timeout=5000"}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	for _, p := range params {
		key := p[:strings.IndexByte(p, '=')+1]
		if strings.Contains(dsn, key) {
			continue
		}
		dsn += sep + p
		sep = "&"
	}
	return dsn
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying sql.DB. Used by migrations and tests.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Driver returns the driver name the store was opened with.
func (s *Store) Driver() string {
	return s.driver
}

// Ping verifies the connection.
func (s *Store) Ping(ctx context.Context) error {
	return classify(s.db.PingContext(ctx))
}

// Migrate applies the embedded schema. It is idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	schema, err := schemaFS.ReadFile("schema/" + s.driver + ".sql")
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, string(schema)); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	s.logger.InfoContext(ctx, "schema applied")
	return nil
}

// Schema returns the embedded schema for driver.
func Schema(driver string) (string, error) {
	b, err := schemaFS.ReadFile("schema/" + driver + ".sql")
	if err != nil {
		return "", fmt.Errorf("no schema for driver %q: %w", driver, err)
	}
	return string(b), nil
}
