package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"github.com/spf13/cobra"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/storefront-catalog/internal/app/product/repo/sqlstore"
	"github.com/light-bringer/storefront-catalog/internal/config"
	"github.com/light-bringer/storefront-catalog/internal/pkg/logging"
)

type migrateOptions struct {
	configPath    string
	driver        string
	projectID     string
	instanceID    string
	databaseID    string
	migrationsDir string

	logger *slog.Logger
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &migrateOptions{}

	cmd := &cobra.Command{
		Use:   "catalog-migrate",
		Short: "Create the catalog schema",
		Long: `Create the catalog schema.

For Spanner the instance and database are created when missing and every
*.sql file in --migrations is applied as DDL. Postgres and SQLite apply the
schema embedded in the binary.

Example:
  catalog-migrate --driver spanner --migrations migrations/spanner
  catalog-migrate --driver sqlite`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to YAML config file")
	cmd.Flags().StringVar(&opts.driver, "driver", "", "storage driver (spanner|postgres|sqlite)")
	cmd.Flags().StringVar(&opts.projectID, "project", getEnvOrDefault("SPANNER_PROJECT_ID", "test-project"), "GCP project ID")
	cmd.Flags().StringVar(&opts.instanceID, "instance", getEnvOrDefault("SPANNER_INSTANCE_ID", "dev-instance"), "Spanner instance ID")
	cmd.Flags().StringVar(&opts.databaseID, "database", getEnvOrDefault("SPANNER_DATABASE_ID", "catalog-db"), "Spanner database ID")
	cmd.Flags().StringVar(&opts.migrationsDir, "migrations", "migrations/spanner", "directory containing Spanner DDL files")

	return cmd
}

func (o *migrateOptions) run(ctx context.Context) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.driver != "" {
		cfg.Driver = o.driver
	}

	o.logger, err = logging.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	switch cfg.Driver {
	case config.DriverSpanner:
		if host := os.Getenv("SPANNER_EMULATOR_HOST"); host != "" {
			o.logger.Info("using Spanner emulator", "host", host)
		}
		if err := o.ensureInstance(ctx); err != nil {
			return fmt.Errorf("failed to ensure instance: %w", err)
		}
		if err := o.ensureDatabase(ctx); err != nil {
			return fmt.Errorf("failed to ensure database: %w", err)
		}
		if err := o.applyMigrations(ctx); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}

	case config.DriverPostgres, config.DriverSQLite:
		store, err := sqlstore.Open(ctx, cfg.Driver, cfg.DSN(), o.logger)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}

	default:
		return fmt.Errorf("unsupported driver %q", cfg.Driver)
	}

	o.logger.Info("migrations completed successfully", "driver", cfg.Driver)
	return nil
}

func (o *migrateOptions) instancePath() string {
	return fmt.Sprintf("projects/%s/instances/%s", o.projectID, o.instanceID)
}

func (o *migrateOptions) databasePath() string {
	return fmt.Sprintf("%s/databases/%s", o.instancePath(), o.databaseID)
}

func (o *migrateOptions) ensureInstance(ctx context.Context) error {
	logger := o.logger.With("instance", o.instanceID)

	instanceAdmin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer instanceAdmin.Close()

	_, err = instanceAdmin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: o.instancePath()})
	if err == nil {
		logger.Info("instance already exists")
		return nil
	}

	if status.Code(err) != codes.NotFound {
		logger.Warn("unexpected error checking instance", "error", err)
		return nil
	}

	logger.Info("creating instance")
	op, err := instanceAdmin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     fmt.Sprintf("projects/%s", o.projectID),
		InstanceId: o.instanceID,
		Instance: &instancepb.Instance{
			Config:      fmt.Sprintf("projects/%s/instanceConfigs/emulator-config", o.projectID),
			DisplayName: "Catalog Instance",
			NodeCount:   1,
		},
	})
	if err != nil {
		if status.Code(err) != codes.AlreadyExists {
			return fmt.Errorf("failed to create instance: %w", err)
		}
		logger.Info("instance already exists")
		return nil
	}

	// The emulator may finish before Wait is called.
	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		logger.Warn("instance creation did not settle cleanly", "error", err)
	}

	logger.Info("instance created")
	return nil
}

func (o *migrateOptions) ensureDatabase(ctx context.Context) error {
	logger := o.logger.With("database", o.databaseID)

	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	_, err = adminClient.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: o.databasePath()})
	if err == nil {
		logger.Info("database already exists")
		return nil
	}

	if status.Code(err) == codes.NotFound {
		logger.Info("creating database")
		op, err := adminClient.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
			Parent:          o.instancePath(),
			CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", o.databaseID),
		})
		if err != nil {
			if status.Code(err) != codes.AlreadyExists {
				return fmt.Errorf("failed to create database: %w", err)
			}
			logger.Info("database already exists")
			return nil
		}

		if _, err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to wait for database creation: %w", err)
		}

		logger.Info("database created")
		return nil
	}

	if os.Getenv("SPANNER_EMULATOR_HOST") != "" {
		logger.Warn("proceeding with database in emulator mode", "error", err)
		return nil
	}

	return fmt.Errorf("failed to check database: %w", err)
}

func (o *migrateOptions) applyMigrations(ctx context.Context) error {
	o.logger.Info("applying migrations", "dir", o.migrationsDir)

	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	files, err := filepath.Glob(filepath.Join(o.migrationsDir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migration files: %w", err)
	}
	if len(files) == 0 {
		o.logger.Warn("no migration files found")
		return nil
	}

	for _, file := range files {
		name := filepath.Base(file)

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		op, err := adminClient.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
			Database:   o.databasePath(),
			Statements: splitDDLStatements(string(content)),
		})
		if err != nil {
			return fmt.Errorf("failed to start DDL update for %s: %w", name, err)
		}
		if err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to apply DDL for %s: %w", name, err)
		}

		o.logger.Info("applied migration", "file", name)
	}

	return nil
}

// splitDDLStatements drops "--" comment lines and splits on ';'.
func splitDDLStatements(content string) []string {
	var cleaned []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	var result []string
	for _, stmt := range strings.Split(strings.Join(cleaned, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			result = append(result, stmt)
		}
	}
	return result
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
