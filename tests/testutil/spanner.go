package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-catalog/internal/models/m_brand"
	"github.com/light-bringer/storefront-catalog/internal/models/m_category"
	"github.com/light-bringer/storefront-catalog/internal/models/m_comment"
	"github.com/light-bringer/storefront-catalog/internal/models/m_product"
	"github.com/light-bringer/storefront-catalog/internal/models/m_product_category"
	"github.com/light-bringer/storefront-catalog/internal/models/m_review"
)

// SetupSpannerTest creates a test Spanner client and returns a cleanup function.
func SetupSpannerTest(t *testing.T) (*spanner.Client, func()) {
	t.Helper()

	ctx := context.Background()
	client, err := spanner.NewClient(ctx, GetTestSpannerDB())
	require.NoError(t, err, "failed to create Spanner client")

	// Clean database before test
	CleanDatabase(t, client)

	cleanup := func() {
		CleanDatabase(t, client)
		client.Close()
	}

	return client, cleanup
}

// GetTestSpannerDB returns the test Spanner database string.
func GetTestSpannerDB() string {
	if db := os.Getenv("SPANNER_TEST_DATABASE"); db != "" {
		return db
	}
	return "projects/test-project/instances/test-instance/databases/catalog-test"
}

// CleanDatabase truncates all tables, children first.
func CleanDatabase(t *testing.T, client *spanner.Client) {
	t.Helper()

	mutations := []*spanner.Mutation{
		spanner.Delete(m_comment.TableName, spanner.AllKeys()),
		spanner.Delete(m_review.TableName, spanner.AllKeys()),
		spanner.Delete(m_product_category.TableName, spanner.AllKeys()),
		spanner.Delete(m_product.TableName, spanner.AllKeys()),
		spanner.Delete(m_category.TableName, spanner.AllKeys()),
		spanner.Delete(m_brand.TableName, spanner.AllKeys()),
	}

	_, err := client.Apply(context.Background(), mutations)
	require.NoError(t, err, "failed to clean database")
}

// AssertRowCount asserts the number of rows in a table.
func AssertRowCount(t *testing.T, client *spanner.Client, table string, expectedCount int) {
	t.Helper()

	ctx := context.Background()
	stmt := spanner.Statement{
		SQL: fmt.Sprintf("SELECT COUNT(*) FROM %s", table),
	}

	iter := client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	require.NoError(t, err, "failed to query row count")

	var count int64
	require.NoError(t, row.Columns(&count), "failed to parse count")

	require.Equal(t, int64(expectedCount), count, "unexpected row count in table %s", table)
}
