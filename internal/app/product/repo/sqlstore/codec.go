package sqlstore

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
)

// jsonList scans a JSON array column (SQLite) into a slice.
type jsonList[T any] struct {
	dst *[]T
}

// Scan implements sql.Scanner.
func (l jsonList[T]) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l.dst = []T{}
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into list", src)
	}

	out := []T{}
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("decode list: %w", err)
	}
	*l.dst = out
	return nil
}

// Value implements driver.Valuer.
func (l jsonList[T]) Value() (driver.Value, error) {
	if l.dst == nil || len(*l.dst) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(*l.dst)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// listDest returns the scan target for a list column on this store's driver.
func (s *Store) int64ListDest(dst *[]int64) sql.Scanner {
	if s.driver == DriverPostgres {
		return (*pq.Int64Array)(dst)
	}
	return jsonList[int64]{dst: dst}
}

func (s *Store) stringListDest(dst *[]string) sql.Scanner {
	if s.driver == DriverPostgres {
		return (*pq.StringArray)(dst)
	}
	return jsonList[string]{dst: dst}
}
