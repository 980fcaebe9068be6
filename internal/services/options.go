// Package services wires storage, use cases and transports together.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/spanner"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/light-bringer/storefront-catalog/internal/app/product/contracts"
	"github.com/light-bringer/storefront-catalog/internal/app/product/queries/get_product"
	"github.com/light-bringer/storefront-catalog/internal/app/product/queries/list_products"
	"github.com/light-bringer/storefront-catalog/internal/app/product/queries/lookup"
	"github.com/light-bringer/storefront-catalog/internal/app/product/repo/brandcache"
	"github.com/light-bringer/storefront-catalog/internal/app/product/repo/spannerstore"
	"github.com/light-bringer/storefront-catalog/internal/app/product/repo/sqlstore"
	"github.com/light-bringer/storefront-catalog/internal/app/product/usecases/create_product"
	"github.com/light-bringer/storefront-catalog/internal/app/product/usecases/delete_product"
	"github.com/light-bringer/storefront-catalog/internal/app/product/usecases/update_product"
	"github.com/light-bringer/storefront-catalog/internal/config"
	"github.com/light-bringer/storefront-catalog/internal/pkg/clock"
	grpccatalog "github.com/light-bringer/storefront-catalog/internal/transport/grpc/catalog"
	httphandler "github.com/light-bringer/storefront-catalog/internal/transport/http"
)

// Store is everything the catalog needs from storage. Both spannerstore and
// sqlstore implement it.
type Store interface {
	contracts.ReadModel
	contracts.LookupStore
	contracts.ProductRepository
	contracts.CascadeStore
	Ping(ctx context.Context) error
}

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	Store       Store
	HTTPApp     *fiber.App
	GRPCServer  *grpccatalog.Server
	RedisClient *redis.Client

	closers []func() error
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg config.Config, logger *slog.Logger) (*ServiceOptions, error) {
	if logger == nil {
		logger = slog.Default()
	}
	opts := &ServiceOptions{}

	// 1. Initialize storage
	store, err := opts.openStore(ctx, cfg, logger)
	if err != nil {
		opts.Close()
		return nil, err
	}
	opts.Store = store

	// 2. Create infrastructure components
	clk := clock.NewRealClock()
	lookupOpts := []lookup.Option{lookup.WithLogger(logger)}
	if cfg.Redis.Addr != "" {
		opts.RedisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		opts.closers = append(opts.closers, opts.RedisClient.Close)
		lookupOpts = append(lookupOpts, lookup.WithBrandCache(brandcache.New(opts.RedisClient, cfg.Redis.TTL)))
		logger.Info("brand cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
	}

	// 3. Create command use cases (write operations)
	createProductUseCase := create_product.NewInteractor(store, clk)
	updateProductUseCase := update_product.NewInteractor(store)
	deleteProductUseCase := delete_product.NewInteractor(store, cfg.Catalog.CascadeTimeout, logger)

	// 4. Create query use cases (read operations)
	getProductQuery := get_product.NewQuery(store)
	listProductsQuery := list_products.NewQuery(store, cfg.Catalog.DefaultPageSize, cfg.Catalog.MaxPageSize)
	lookupQuery := lookup.NewQuery(store, lookupOpts...)

	// 5. Create transports
	opts.GRPCServer = grpccatalog.NewServer(
		createProductUseCase,
		updateProductUseCase,
		deleteProductUseCase,
		getProductQuery,
		listProductsQuery,
		lookupQuery,
		logger,
	)
	opts.HTTPApp = httphandler.NewApp(httphandler.NewHandler(
		createProductUseCase,
		updateProductUseCase,
		deleteProductUseCase,
		getProductQuery,
		listProductsQuery,
		lookupQuery,
		store.Ping,
		logger,
	), logger)

	return opts, nil
}

func (s *ServiceOptions) openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (Store, error) {
	switch cfg.Driver {
	case config.DriverSpanner:
		client, err := spanner.NewClient(ctx, cfg.Spanner.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to create Spanner client: %w", err)
		}
		s.closers = append(s.closers, func() error { client.Close(); return nil })
		return spannerstore.New(client, logger), nil

	case config.DriverPostgres, config.DriverSQLite:
		store, err := sqlstore.Open(ctx, cfg.Driver, cfg.DSN(), logger)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, store.Close)
		// The embedded SQLite schema is applied on start so a fresh file is usable.
		if cfg.Driver == config.DriverSQLite {
			if err := store.Migrate(ctx); err != nil {
				return nil, err
			}
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
}

// Close closes all resources in reverse order of creation.
func (s *ServiceOptions) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			slog.Warn("close failed", "error", err)
		}
	}
	s.closers = nil
}
