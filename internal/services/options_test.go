package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-catalog/internal/config"
	"github.com/light-bringer/storefront-catalog/internal/pkg/logging"
)

func TestNewServiceOptions_SQLite(t *testing.T) {
	cfg := config.Default()
	cfg.Driver = config.DriverSQLite
	cfg.SQLite.Path = filepath.Join(t.TempDir(), "catalog.db")

	opts, err := NewServiceOptions(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	defer opts.Close()

	assert.NotNil(t, opts.GRPCServer)
	assert.Nil(t, opts.RedisClient)

	resp, err := opts.HTTPApp.Test(httptest.NewRequest(http.MethodGet, "/api/v1/products", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNewServiceOptions_RedisCacheWired(t *testing.T) {
	cfg := config.Default()
	cfg.Driver = config.DriverSQLite
	cfg.SQLite.Path = filepath.Join(t.TempDir(), "catalog.db")
	cfg.Redis.Addr = "127.0.0.1:0"

	opts, err := NewServiceOptions(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	defer opts.Close()

	assert.NotNil(t, opts.RedisClient)
}

func TestNewServiceOptions_UnsupportedDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Driver = "oracle"

	_, err := NewServiceOptions(context.Background(), cfg, logging.Discard())
	assert.ErrorContains(t, err, "unsupported driver")
}
