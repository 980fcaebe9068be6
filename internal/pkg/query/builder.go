package query

import (
	"strings"
)

// Direction represents ORDER BY direction.
type Direction int

const (
	// Asc represents ascending order.
	Asc Direction = iota
	// Desc represents descending order.
	Desc
)

// String returns the SQL keyword for the direction.
func (d Direction) String() string {
	if d == Desc {
		return "DESC"
	}
	return "ASC"
}

type mode int

const (
	modeSelect mode = iota
	modeDelete
)

type orderKey struct {
	column    string
	direction Direction
}

// Builder constructs SQL statements for any supported Dialect.
// It provides a fluent API for building queries with WHERE clauses,
// ORDER BY, LIMIT, and OFFSET. Every method returns a new Builder, so a
// base builder can be shared between a count query and a page query.
type Builder struct {
	table        string
	mode         mode
	selectCols   []string
	whereClauses []Condition
	orderBy      []orderKey
	limitVal     int64
	offsetVal    int64
}

// From creates a new Builder for the specified table.
func From(table string) *Builder {
	return &Builder{
		table:        table,
		selectCols:   []string{},
		whereClauses: []Condition{},
	}
}

// Select specifies the columns to retrieve.
func (b *Builder) Select(columns ...string) *Builder {
	newBuilder := b.clone()
	newBuilder.selectCols = append(newBuilder.selectCols, columns...)
	return newBuilder
}

// Where adds a WHERE condition.
// Multiple calls are combined with AND logic.
func (b *Builder) Where(conditions ...Condition) *Builder {
	newBuilder := b.clone()
	newBuilder.whereClauses = append(newBuilder.whereClauses, conditions...)
	return newBuilder
}

// OrderBy appends a sort key. Keys are applied in the order they were added.
func (b *Builder) OrderBy(column string, direction Direction) *Builder {
	newBuilder := b.clone()
	newBuilder.orderBy = append(newBuilder.orderBy, orderKey{column: column, direction: direction})
	return newBuilder
}

// Limit sets the maximum number of rows to return.
func (b *Builder) Limit(limit int64) *Builder {
	newBuilder := b.clone()
	newBuilder.limitVal = limit
	return newBuilder
}

// Offset sets the number of rows to skip.
func (b *Builder) Offset(offset int64) *Builder {
	newBuilder := b.clone()
	newBuilder.offsetVal = offset
	return newBuilder
}

// Count returns a new builder that generates a COUNT(*) query
// with the same FROM and WHERE clauses.
func (b *Builder) Count() *Builder {
	newBuilder := b.clone()
	newBuilder.selectCols = []string{"COUNT(*)"}
	newBuilder.limitVal = 0
	newBuilder.offsetVal = 0
	newBuilder.orderBy = nil
	return newBuilder
}

// Delete returns a new builder that generates a DELETE statement
// with the same FROM and WHERE clauses.
func (b *Builder) Delete() *Builder {
	newBuilder := b.Count()
	newBuilder.selectCols = []string{}
	newBuilder.mode = modeDelete
	return newBuilder
}

// Build constructs the final Statement for the given dialect.
func (b *Builder) Build(d Dialect) Statement {
	p := NewParams(d)
	sql := b.render(p)
	return Statement{
		SQL:   sql,
		Names: p.names,
		Args:  p.args,
	}
}

// render writes the statement, binding parameters into p.
func (b *Builder) render(p *Params) string {
	var sql strings.Builder

	if b.mode == modeDelete {
		sql.WriteString("DELETE FROM ")
		sql.WriteString(b.table)
		sql.WriteString(" WHERE ")
		if len(b.whereClauses) == 0 {
			// Spanner rejects DELETE without WHERE.
			sql.WriteString("TRUE")
		} else {
			sql.WriteString(b.renderWhere(p))
		}
		return sql.String()
	}

	sql.WriteString("SELECT ")
	if len(b.selectCols) == 0 {
		sql.WriteString("*")
	} else {
		sql.WriteString(strings.Join(b.selectCols, ", "))
	}

	sql.WriteString(" FROM ")
	sql.WriteString(b.table)

	if len(b.whereClauses) > 0 {
		sql.WriteString(" WHERE ")
		sql.WriteString(b.renderWhere(p))
	}

	if len(b.orderBy) > 0 {
		keys := make([]string, 0, len(b.orderBy))
		for _, key := range b.orderBy {
			keys = append(keys, key.column+" "+key.direction.String())
		}
		sql.WriteString(" ORDER BY ")
		sql.WriteString(strings.Join(keys, ", "))
	}

	if b.limitVal > 0 {
		sql.WriteString(" LIMIT ")
		sql.WriteString(p.BindNamed("limit", b.limitVal))
	}

	if b.offsetVal > 0 {
		sql.WriteString(" OFFSET ")
		sql.WriteString(p.BindNamed("offset", b.offsetVal))
	}

	return sql.String()
}

func (b *Builder) renderWhere(p *Params) string {
	whereParts := make([]string, 0, len(b.whereClauses))
	for _, condition := range b.whereClauses {
		whereParts = append(whereParts, condition.SQL(p))
	}
	return strings.Join(whereParts, " AND ")
}

// clone creates a shallow copy of the builder for immutability.
func (b *Builder) clone() *Builder {
	newBuilder := &Builder{
		table:        b.table,
		mode:         b.mode,
		selectCols:   make([]string, len(b.selectCols)),
		whereClauses: make([]Condition, len(b.whereClauses)),
		orderBy:      make([]orderKey, len(b.orderBy)),
		limitVal:     b.limitVal,
		offsetVal:    b.offsetVal,
	}
	copy(newBuilder.selectCols, b.selectCols)
	copy(newBuilder.whereClauses, b.whereClauses)
	copy(newBuilder.orderBy, b.orderBy)
	return newBuilder
}

// String returns a human-readable representation for debugging.
func (b *Builder) String() string {
	return b.Build(Spanner).String()
}
