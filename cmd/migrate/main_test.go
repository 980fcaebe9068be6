package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitDDLStatements(t *testing.T) {
	content := `-- products table
CREATE TABLE products (
  id INT64 NOT NULL,
) PRIMARY KEY (id);

-- index
CREATE INDEX idx_products_gender ON products(gender);
`
	stmts := splitDDLStatements(content)

	require.Len(t, stmts, 2)
	assert.Equal(t, "CREATE TABLE products (\nid INT64 NOT NULL,\n) PRIMARY KEY (id)", stmts[0])
	assert.Equal(t, "CREATE INDEX idx_products_gender ON products(gender)", stmts[1])
}

func TestSplitDDLStatements_SpannerSchema(t *testing.T) {
	content, err := os.ReadFile("../../migrations/spanner/001_init.sql")
	require.NoError(t, err)

	stmts := splitDDLStatements(string(content))

	require.NotEmpty(t, stmts)
	assert.Contains(t, stmts[0], "CREATE SEQUENCE product_id_seq")
	for _, stmt := range stmts {
		assert.NotContains(t, stmt, "--")
	}
}

func TestDatabasePath(t *testing.T) {
	o := &migrateOptions{projectID: "p", instanceID: "i", databaseID: "d"}

	assert.Equal(t, "projects/p/instances/i", o.instancePath())
	assert.Equal(t, "projects/p/instances/i/databases/d", o.databasePath())
}
