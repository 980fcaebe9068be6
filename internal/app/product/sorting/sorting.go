// Package sorting parses and allow-lists "<column>-<direction>" sort
// directives.
package sorting

import (
	"sort"
	"strings"

	"github.com/light-bringer/storefront-catalog/internal/app/product/domain"
	"github.com/light-bringer/storefront-catalog/internal/models/m_product"
	"github.com/light-bringer/storefront-catalog/internal/pkg/query"
)

// sortable maps client-facing names to column references. Nothing outside
// this table ever reaches an ORDER BY clause.
var sortable = map[string]string{
	"price":      m_product.Price,
	"rating":     m_product.Rating,
	"discount":   m_product.Discount,
	"created_at": m_product.CreatedAt,
}

// Directive is a validated ordering. The zero value means default order.
type Directive struct {
	Column    string
	Direction query.Direction
}

// IsZero reports whether the directive leaves the default order in place.
func (d Directive) IsZero() bool {
	return d.Column == ""
}

// String returns the directive in its client form.
func (d Directive) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Column + "-" + strings.ToLower(d.Direction.String())
}

// Parse validates a sort expression.
//
// An empty string, a missing direction, or a direction other than exactly
// "asc" or "desc" yields the zero Directive and no error. A column that is
// not sortable is always rejected, even when the direction is invalid.
func Parse(raw string) (Directive, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Directive{}, nil
	}

	parts := strings.SplitN(raw, "-", 2)
	column, ok := sortable[parts[0]]
	if !ok {
		verr := domain.NewValidationError("sortBy", raw,
			"column is not sortable, expected one of "+strings.Join(Columns(), ", "))
		verr.Err = domain.ErrInvalidSortColumn
		return Directive{}, verr
	}
	if len(parts) != 2 {
		return Directive{}, nil
	}

	switch parts[1] {
	case "asc":
		return Directive{Column: column, Direction: query.Asc}, nil
	case "desc":
		return Directive{Column: column, Direction: query.Desc}, nil
	default:
		return Directive{}, nil
	}
}

// Apply adds the ordering to b, followed by the id tiebreaker so that
// pages never overlap or skip rows between requests.
func (d Directive) Apply(b *query.Builder) *query.Builder {
	if !d.IsZero() {
		b = b.OrderBy(d.Column, d.Direction)
	}
	return b.OrderBy(m_product.ID, query.Asc)
}

// Columns lists the client names accepted by Parse, sorted.
func Columns() []string {
	names := make([]string, 0, len(sortable))
	for name := range sortable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
