package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/light-bringer/storefront-catalog/internal/config"
	"github.com/light-bringer/storefront-catalog/internal/pkg/logging"
	"github.com/light-bringer/storefront-catalog/internal/services"
	grpccatalog "github.com/light-bringer/storefront-catalog/internal/transport/grpc/catalog"
)

type serverOptions struct {
	configPath string
	driver     string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to run server: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &serverOptions{}

	cmd := &cobra.Command{
		Use:   "catalog-server",
		Short: "Serve the storefront catalog over HTTP and gRPC",
		Long: `Serve the storefront catalog.

Configuration is read from an optional YAML file, then .env, then the
environment. The --driver flag overrides the configured storage driver.

Example:
  catalog-server --config config.yaml
  catalog-server --driver sqlite`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to YAML config file")
	cmd.Flags().StringVar(&opts.driver, "driver", "", "storage driver (spanner|postgres|sqlite)")

	return cmd
}

func run(ctx context.Context, opts *serverOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// 1. Load configuration
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.driver != "" {
		cfg.Driver = opts.driver
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, err := logging.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	logger.Info("starting catalog service",
		"driver", cfg.Driver,
		"grpc_port", cfg.GRPC.Port,
		"http_port", cfg.HTTP.Port)

	// 2. Initialize service dependencies (DI container)
	serviceOpts, err := services.NewServiceOptions(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	// 3. Create gRPC server and register services
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(grpccatalog.RequestScopeInterceptor(logger)))
	grpccatalog.RegisterCatalogServiceServer(grpcServer, serviceOpts.GRPCServer)

	// Enable reflection (for grpcurl and debugging)
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", ":"+cfg.GRPC.Port)
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC port: %w", err)
	}

	errCh := make(chan error, 2)

	go func() {
		logger.Info("gRPC server listening", "addr", lis.Addr().String())
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errCh <- fmt.Errorf("gRPC server: %w", err)
		}
	}()

	// 4. Start HTTP server
	go func() {
		logger.Info("HTTP server listening", "port", cfg.HTTP.Port)
		if err := serviceOpts.HTTPApp.Listen(":" + cfg.HTTP.Port); err != nil {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	// 5. Graceful shutdown handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-sigCh:
		logger.Info("shutting down gracefully", "signal", sig.String())
	case runErr = <-errCh:
		logger.Error("server failed, shutting down", "error", runErr)
	}

	if err := serviceOpts.HTTPApp.Shutdown(); err != nil {
		logger.Warn("HTTP server shutdown error", "error", err)
	}
	grpcServer.GracefulStop()

	return runErr
}
