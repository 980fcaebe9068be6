package query

import (
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/davecgh/go-spew/spew"
)

// Params collects bound values while a statement is rendered.
type Params struct {
	dialect Dialect
	names   []string
	args    []interface{}
}

// NewParams creates an empty parameter set for the dialect.
func NewParams(d Dialect) *Params {
	return &Params{dialect: d}
}

// Bind registers value under the next positional name (p0, p1, ...) and
// returns its marker.
func (p *Params) Bind(value interface{}) string {
	return p.BindNamed(fmt.Sprintf("p%d", len(p.args)), value)
}

// BindNamed registers value under name and returns its marker.
func (p *Params) BindNamed(name string, value interface{}) string {
	marker := p.dialect.Placeholder(len(p.args), name)
	p.names = append(p.names, name)
	p.args = append(p.args, p.dialect.Value(value))
	return marker
}

// Statement pairs sql with the values bound so far. Used for statements the
// Builder does not produce (INSERT, UPDATE).
func (p *Params) Statement(sql string) Statement {
	return Statement{SQL: sql, Names: p.names, Args: p.args}
}

// Statement is a rendered SQL statement with its parameters in bind order.
type Statement struct {
	SQL   string
	Names []string
	Args  []interface{}
}

// Spanner converts the statement into a spanner.Statement with named params.
func (s Statement) Spanner() spanner.Statement {
	params := make(map[string]interface{}, len(s.Args))
	for i, name := range s.Names {
		params[name] = s.Args[i]
	}
	return spanner.Statement{
		SQL:    s.SQL,
		Params: params,
	}
}

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// String returns a human-readable representation for debugging.
func (s Statement) String() string {
	return fmt.Sprintf("SQL: %s\nParams: %s", s.SQL, dumper.Sdump(s.Args))
}
