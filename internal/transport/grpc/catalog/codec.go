package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/storefront-catalog/internal/app/product/domain"
)

// Struct numbers are doubles. Integers beyond this bound are sent as
// strings so ids survive the round trip.
const maxExactInt = 1 << 53

// decode unmarshals a request Struct into v.
func decode(in *structpb.Struct, v interface{}) error {
	data, err := in.MarshalJSON()
	if err != nil {
		return domain.NewValidationError("request", "", err.Error())
	}
	if err := json.Unmarshal(data, v); err != nil {
		return domain.NewValidationError("request", "", err.Error())
	}
	return nil
}

// encode converts v into a reply Struct.
func encode(v interface{}) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode reply: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]interface{}
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to encode reply: %w", err)
	}

	out, err := structpb.NewStruct(normalize(m).(map[string]interface{}))
	if err != nil {
		return nil, fmt.Errorf("failed to encode reply: %w", err)
	}
	return out, nil
}

func normalize(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		for k, item := range val {
			val[k] = normalize(item)
		}
		return val
	case []interface{}:
		for i, item := range val {
			val[i] = normalize(item)
		}
		return val
	case json.Number:
		if n, err := val.Int64(); err == nil {
			if n > maxExactInt || n < -maxExactInt {
				return val.String()
			}
			return float64(n)
		}
		f, _ := val.Float64()
		return f
	default:
		return v
	}
}

// id accepts a JSON number or a decimal string.
type id int64

func (i *id) UnmarshalJSON(b []byte) error {
	s := string(bytes.Trim(b, `"`))
	if s == "" || s == "null" {
		*i = 0
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*i = id(n)
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int64(f)) {
		return domain.NewValidationError("id", s, "must be an integer")
	}
	*i = id(int64(f))
	return nil
}

func ids(in []id) []int64 {
	out := make([]int64, len(in))
	for i, v := range in {
		out[i] = int64(v)
	}
	return out
}
