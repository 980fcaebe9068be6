package query

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"cloud.google.com/go/spanner"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Dialect renders the parts of a statement that differ between SQL engines:
// parameter markers, list-column operators and value encoding.
type Dialect interface {
	// Name identifies the dialect in logs and golden files.
	Name() string

	// Placeholder returns the marker for the n-th (zero-based) bound parameter.
	// name is only used by dialects with named parameters.
	Placeholder(n int, name string) string

	// Value converts a Go value into the form the driver expects.
	Value(v any) any

	// In renders "column is one of values". values is a typed slice.
	In(p *Params, column string, values any) string

	// Contains renders "list column contains value".
	Contains(p *Params, column string, value any) string

	// Overlaps renders "list column shares at least one element with values".
	Overlaps(p *Params, column string, values any) string
}

var (
	// Spanner renders GoogleSQL for Cloud Spanner (@name parameters, ARRAY columns).
	Spanner Dialect = spannerDialect{}
	// Postgres renders PostgreSQL ($n parameters, native array columns).
	Postgres Dialect = postgresDialect{}
	// SQLite renders SQLite (? parameters, JSON text list columns).
	SQLite Dialect = sqliteDialect{}
)

type spannerDialect struct{}

func (spannerDialect) Name() string { return "spanner" }

func (spannerDialect) Placeholder(_ int, name string) string { return "@" + name }

func (spannerDialect) Value(v any) any {
	switch val := v.(type) {
	case decimal.Decimal:
		return spanner.NullNumeric{Numeric: *val.Rat(), Valid: true}
	case int:
		return int64(val)
	default:
		return v
	}
}

func (spannerDialect) In(p *Params, column string, values any) string {
	return fmt.Sprintf("%s IN UNNEST(%s)", column, p.Bind(values))
}

func (spannerDialect) Contains(p *Params, column string, value any) string {
	return fmt.Sprintf("%s IN UNNEST(%s)", p.Bind(value), column)
}

func (spannerDialect) Overlaps(p *Params, column string, values any) string {
	return fmt.Sprintf("EXISTS (SELECT 1 FROM UNNEST(%s) AS elem WHERE elem IN UNNEST(%s))", column, p.Bind(values))
}

type postgresDialect struct{}

func (postgresDialect) Name() string { return "postgres" }

func (postgresDialect) Placeholder(n int, _ string) string { return fmt.Sprintf("$%d", n+1) }

func (postgresDialect) Value(v any) any {
	switch val := v.(type) {
	case []int64, []string:
		return pq.Array(val)
	default:
		return v
	}
}

func (postgresDialect) In(p *Params, column string, values any) string {
	return fmt.Sprintf("%s = ANY(%s)", column, p.Bind(values))
}

func (postgresDialect) Contains(p *Params, column string, value any) string {
	return fmt.Sprintf("%s = ANY(%s)", p.Bind(value), column)
}

func (postgresDialect) Overlaps(p *Params, column string, values any) string {
	return fmt.Sprintf("%s && %s", column, p.Bind(values))
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string { return "sqlite" }

func (sqliteDialect) Placeholder(int, string) string { return "?" }

// Value stores list values as JSON text and decimals as REAL so that
// comparisons against NUMERIC columns stay numeric.
func (sqliteDialect) Value(v any) any {
	switch val := v.(type) {
	case []int64:
		return jsonText(val, len(val))
	case []string:
		return jsonText(val, len(val))
	case decimal.Decimal:
		f, _ := val.Float64()
		return f
	default:
		return v
	}
}

func jsonText(v any, n int) string {
	if n == 0 {
		return "[]"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func (sqliteDialect) In(p *Params, column string, values any) string {
	list := bindEach(p, values)
	if list == "" {
		return "0"
	}
	return fmt.Sprintf("%s IN (%s)", column, list)
}

func (sqliteDialect) Contains(p *Params, column string, value any) string {
	return fmt.Sprintf("EXISTS (SELECT 1 FROM json_each(%s) WHERE json_each.value = %s)", column, p.Bind(value))
}

func (sqliteDialect) Overlaps(p *Params, column string, values any) string {
	list := bindEach(p, values)
	if list == "" {
		return "0"
	}
	return fmt.Sprintf("EXISTS (SELECT 1 FROM json_each(%s) WHERE json_each.value IN (%s))", column, list)
}

// bindEach binds every element of a slice as its own parameter and returns
// the comma-separated markers. SQLite has no array parameters.
func bindEach(p *Params, values any) string {
	rv := reflect.ValueOf(values)
	if rv.Kind() != reflect.Slice {
		return p.Bind(values)
	}
	markers := make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		markers = append(markers, p.Bind(rv.Index(i).Interface()))
	}
	return strings.Join(markers, ", ")
}
