package query

import (
	"fmt"
	"strings"
)

// Condition represents a WHERE clause condition.
// Implementations bind their values through Params so the same condition
// renders correctly for every Dialect.
type Condition interface {
	// SQL returns the SQL fragment for this condition.
	SQL(p *Params) string
}

// comparison implements binary comparisons (field op value).
type comparison struct {
	field string
	op    string
	value interface{}
}

// Eq creates a WHERE condition for equality comparison.
// Example: Eq("gender", "women") generates "gender = @p0" for Spanner.
func Eq(field string, value interface{}) Condition {
	return &comparison{field: field, op: "=", value: value}
}

// Lte creates a WHERE condition for "field <= value".
func Lte(field string, value interface{}) Condition {
	return &comparison{field: field, op: "<=", value: value}
}

// Gte creates a WHERE condition for "field >= value".
func Gte(field string, value interface{}) Condition {
	return &comparison{field: field, op: ">=", value: value}
}

// SQL generates the SQL fragment for the comparison.
func (c *comparison) SQL(p *Params) string {
	return fmt.Sprintf("%s %s %s", c.field, c.op, p.Bind(c.value))
}

// betweenCondition implements an inclusive range check.
type betweenCondition struct {
	field    string
	from, to interface{}
}

// Between creates an inclusive range condition: from <= field <= to.
func Between(field string, from, to interface{}) Condition {
	return &betweenCondition{field: field, from: from, to: to}
}

// SQL generates the SQL fragment for the range check.
func (c *betweenCondition) SQL(p *Params) string {
	from := p.Bind(c.from)
	to := p.Bind(c.to)
	return fmt.Sprintf("%s BETWEEN %s AND %s", c.field, from, to)
}

// inCondition implements set membership for a scalar column.
type inCondition struct {
	field  string
	values interface{}
}

// In creates a condition matching rows whose field is one of values.
// values must be a typed slice ([]int64, []string).
func In(field string, values interface{}) Condition {
	return &inCondition{field: field, values: values}
}

// SQL generates the SQL fragment for set membership.
func (c *inCondition) SQL(p *Params) string {
	return p.dialect.In(p, c.field, c.values)
}

// containsCondition implements containment on a list column.
type containsCondition struct {
	field string
	value interface{}
}

// Contains creates a condition matching rows whose list column holds value.
func Contains(field string, value interface{}) Condition {
	return &containsCondition{field: field, value: value}
}

// SQL generates the SQL fragment for containment.
func (c *containsCondition) SQL(p *Params) string {
	return p.dialect.Contains(p, c.field, c.value)
}

// overlapsCondition implements "any element in common" on a list column.
type overlapsCondition struct {
	field  string
	values interface{}
}

// Overlaps creates a condition matching rows whose list column shares at
// least one element with values.
func Overlaps(field string, values interface{}) Condition {
	return &overlapsCondition{field: field, values: values}
}

// SQL generates the SQL fragment for the overlap check.
func (c *overlapsCondition) SQL(p *Params) string {
	return p.dialect.Overlaps(p, c.field, c.values)
}

// orCondition joins conditions with OR.
type orCondition struct {
	conditions []Condition
}

// Or combines conditions with OR logic. A single condition is returned as is.
func Or(conditions ...Condition) Condition {
	if len(conditions) == 1 {
		return conditions[0]
	}
	return &orCondition{conditions: conditions}
}

// SQL generates the parenthesized disjunction.
func (c *orCondition) SQL(p *Params) string {
	if len(c.conditions) == 0 {
		return "FALSE"
	}
	parts := make([]string, 0, len(c.conditions))
	for _, cond := range c.conditions {
		parts = append(parts, cond.SQL(p))
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

// subqueryCondition implements "field IN (SELECT ...)".
type subqueryCondition struct {
	field string
	sub   *Builder
}

// InSubquery creates a condition matching rows whose field appears in the
// single-column result of sub.
func InSubquery(field string, sub *Builder) Condition {
	return &subqueryCondition{field: field, sub: sub}
}

// SQL generates the SQL fragment, binding the subquery's parameters in order.
func (c *subqueryCondition) SQL(p *Params) string {
	return fmt.Sprintf("%s IN (%s)", c.field, c.sub.render(p))
}

// IsNull creates a WHERE condition for NULL checks.
// Example: IsNull("image_url") generates "image_url IS NULL"
func IsNull(field string) Condition {
	return &isNullCondition{field: field}
}

// isNullCondition implements IS NULL comparison.
type isNullCondition struct {
	field string
}

// SQL generates the SQL fragment for IS NULL comparison.
func (c *isNullCondition) SQL(*Params) string {
	return fmt.Sprintf("%s IS NULL", c.field)
}

// IsNotNull creates a WHERE condition for NOT NULL checks.
// Example: IsNotNull("image_url") generates "image_url IS NOT NULL"
func IsNotNull(field string) Condition {
	return &isNotNullCondition{field: field}
}

// isNotNullCondition implements IS NOT NULL comparison.
type isNotNullCondition struct {
	field string
}

// SQL generates the SQL fragment for IS NOT NULL comparison.
func (c *isNotNullCondition) SQL(*Params) string {
	return fmt.Sprintf("%s IS NOT NULL", c.field)
}
