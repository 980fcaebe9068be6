package spannerstore

import (
	"math/big"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-catalog/internal/models/m_product"
)

func TestDecodeProduct(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	row, err := spanner.NewRow(m_product.NewModel().ReadColumns(), []interface{}{
		int64(9),
		"Silk Scarf",
		spanner.NullString{StringVal: "hand rolled", Valid: true},
		spanner.NullNumeric{Numeric: *big.NewRat(2999, 100), Valid: true},
		spanner.NullNumeric{},
		int64(10),
		4.5,
		[]string{"red"},
		[]int64{3, 4},
		spanner.NullString{},
		[]string(nil),
		spanner.NullString{StringVal: "https://img/scarf.png", Valid: true},
		created,
	})
	require.NoError(t, err)

	data, err := decodeProduct(row)
	require.NoError(t, err)

	assert.Equal(t, int64(9), data.ID)
	assert.Equal(t, "hand rolled", data.Description)
	assert.True(t, data.Price.Equal(decimal.RequireFromString("29.99")))
	assert.True(t, data.OldPrice.IsZero())
	assert.Equal(t, []int64{3, 4}, data.BrandIDs)
	assert.Equal(t, "", data.Gender)
	assert.NotNil(t, data.Occasions)
	assert.Empty(t, data.Occasions)
	assert.Equal(t, created, data.CreatedAt)
}

func TestValues_ConvertsDecimals(t *testing.T) {
	out := values([]interface{}{decimal.RequireFromString("1.50"), "x", []int64{1}})

	numeric, ok := out[0].(spanner.NullNumeric)
	require.True(t, ok)
	assert.Equal(t, 0, numeric.Numeric.Cmp(big.NewRat(3, 2)))
	assert.Equal(t, "x", out[1])
	assert.Equal(t, []int64{1}, out[2])
}

func TestUpdateMut_SkipsCreatedAt(t *testing.T) {
	s := &Store{model: m_product.NewModel()}
	product := m_product.NewModel().ToDomain(&m_product.Data{ID: 5, Name: "Tote"})

	require.NotNil(t, s.UpdateMut(product))
}
