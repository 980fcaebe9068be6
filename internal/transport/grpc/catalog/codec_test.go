package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/storefront-catalog/internal/app/product/domain"
)

func TestEncode_LargeIntegersBecomeStrings(t *testing.T) {
	out, err := encode(map[string]interface{}{
		"small": int64(42),
		"large": int64(4611686018427387905),
		"price": 1.5,
	})
	require.NoError(t, err)

	assert.Equal(t, 42.0, out.Fields["small"].GetNumberValue())
	assert.Equal(t, "4611686018427387905", out.Fields["large"].GetStringValue())
	assert.Equal(t, 1.5, out.Fields["price"].GetNumberValue())
}

func TestID_Unmarshal(t *testing.T) {
	var req struct {
		IDs []id `json:"ids"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"ids":[7,"4611686018427387905"]}`), &req))
	assert.Equal(t, []int64{7, 4611686018427387905}, ids(req.IDs))

	err := json.Unmarshal([]byte(`{"ids":[1.5]}`), &req)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDecode_InvalidShape(t *testing.T) {
	in, err := structpb.NewStruct(map[string]interface{}{"ids": "not-a-list"})
	require.NoError(t, err)

	var req idsRequest
	assert.ErrorIs(t, decode(in, &req), domain.ErrValidation)
}
