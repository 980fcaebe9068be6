package sqlstore

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-catalog/internal/app/product/domain"
)

var fixedTime = time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := Open(ctx, DriverSQLite, filepath.Join(t.TempDir(), "catalog.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.Migrate(ctx))
	return s
}

func seedProduct(t *testing.T, s *Store, in domain.ProductInput) *domain.Product {
	t.Helper()

	if in.Name == "" {
		in.Name = "product"
	}
	p, err := domain.NewProduct(0, in, fixedTime)
	require.NoError(t, err)

	saved, err := s.Insert(context.Background(), p)
	require.NoError(t, err)
	return saved
}

func mustExec(t *testing.T, s *Store, sql string, args ...interface{}) {
	t.Helper()
	_, err := s.DB().ExecContext(context.Background(), sql, args...)
	require.NoError(t, err)
}

func countRows(t *testing.T, s *Store, table string, productID int64) int {
	t.Helper()
	var n int
	err := s.DB().QueryRowContext(context.Background(),
		"SELECT COUNT(*) FROM "+table+" WHERE product_id = ?", productID).Scan(&n)
	require.NoError(t, err)
	return n
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "", nil)
	assert.Error(t, err)
}

func TestMigrate_Idempotent(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Migrate(context.Background()))
	for _, table := range []string{"products", "brands", "categories", "product_categories", "reviews", "comments"} {
		var name string
		err := s.DB().QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		assert.NoError(t, err, table)
	}
}

func TestWithSQLiteParams(t *testing.T) {
	assert.Equal(t, "a.db?_foreign_keys=on&_busy_timeout=5000", withSQLiteParams("a.db"))
	assert.Equal(t, "a.db?mode=rwc&_foreign_keys=on&_busy_timeout=5000", withSQLiteParams("a.db?mode=rwc"))
	assert.Equal(t, "a.db?_foreign_keys=off&_busy_timeout=5000", withSQLiteParams("a.db?_foreign_keys=off"))
}

func TestSchema(t *testing.T) {
	pg, err := Schema(DriverPostgres)
	require.NoError(t, err)
	assert.Contains(t, pg, "DEFERRABLE INITIALLY IMMEDIATE")
	assert.Contains(t, pg, "brand_ids   BIGINT[]")

	_, err = Schema("mysql")
	assert.Error(t, err)
}

func TestProductRepo_InsertAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	saved := seedProduct(t, s, domain.ProductInput{
		Name:        "Leather Belt",
		Description: "Full grain",
		Price:       decimal.RequireFromString("35.50"),
		OldPrice:    decimal.RequireFromString("40"),
		Discount:    11,
		Rating:      4.2,
		Colors:      []string{"brown", "black"},
		BrandIDs:    []int64{3, 9},
		Gender:      "men",
		Occasions:   []string{"office"},
		ImageURL:    "belt.jpg",
	})
	require.Positive(t, saved.ID())

	got, err := s.GetByID(ctx, saved.ID())
	require.NoError(t, err)

	assert.Equal(t, "Leather Belt", got.Name())
	assert.True(t, got.Price().Equal(decimal.RequireFromString("35.5")))
	assert.True(t, got.OldPrice().Equal(decimal.NewFromInt(40)))
	assert.Equal(t, int64(11), got.Discount())
	assert.InDelta(t, 4.2, got.Rating(), 1e-9)
	assert.Equal(t, []string{"brown", "black"}, got.Colors())
	assert.Equal(t, []int64{3, 9}, got.BrandIDs())
	assert.Equal(t, []string{"office"}, got.Occasions())
	assert.True(t, fixedTime.Equal(got.CreatedAt()))
}

func TestProductRepo_EmptyListsStayEmpty(t *testing.T) {
	s := newTestStore(t)
	saved := seedProduct(t, s, domain.ProductInput{Name: "Plain"})

	var brandIDs, occasions string
	err := s.DB().QueryRow("SELECT brand_ids, occasions FROM products WHERE id = ?", saved.ID()).Scan(&brandIDs, &occasions)
	require.NoError(t, err)
	assert.Equal(t, "[]", brandIDs)
	assert.Equal(t, "[]", occasions)

	got, err := s.GetByID(context.Background(), saved.ID())
	require.NoError(t, err)
	assert.NotNil(t, got.BrandIDs())
	assert.Empty(t, got.BrandIDs())
}

func TestProductRepo_GetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetByID(context.Background(), 12345)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductRepo_Update(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	saved := seedProduct(t, s, domain.ProductInput{Name: "Before", BrandIDs: []int64{1}})

	require.NoError(t, saved.Replace(domain.ProductInput{Name: "After", Discount: 40}))
	require.NoError(t, s.Update(ctx, saved))

	got, err := s.GetByID(ctx, saved.ID())
	require.NoError(t, err)
	assert.Equal(t, "After", got.Name())
	assert.Equal(t, int64(40), got.Discount())
	assert.Empty(t, got.BrandIDs())
	assert.True(t, fixedTime.Equal(got.CreatedAt()))

	missing := domain.ReconstructProduct(999, domain.ProductInput{Name: "Ghost"}, fixedTime)
	assert.ErrorIs(t, s.Update(ctx, missing), domain.ErrProductNotFound)
}
