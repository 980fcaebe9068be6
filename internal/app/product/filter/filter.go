// Package filter turns a raw catalog filter request into a predicate set
// shared by the count query and the page query.
package filter

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/light-bringer/storefront-catalog/internal/app/product/domain"
	"github.com/light-bringer/storefront-catalog/internal/models/m_product"
	"github.com/light-bringer/storefront-catalog/internal/models/m_product_category"
	"github.com/light-bringer/storefront-catalog/internal/pkg/query"
)

// Request holds the recognized filter fields exactly as the client sent them.
// Empty fields are ignored.
type Request struct {
	BrandID      string
	CategoryID   string
	Gender       string
	Occasions    string
	Discount     string
	PriceRangeTo string
}

// PredicateSet is a conjunction of validated conditions.
type PredicateSet struct {
	conditions []query.Condition
}

// Len returns the number of conjoined predicates.
func (s PredicateSet) Len() int {
	return len(s.conditions)
}

// Apply adds every predicate to b. Count and fetch paths both go through
// here so they always see the same WHERE clause.
func (s PredicateSet) Apply(b *query.Builder) *query.Builder {
	if len(s.conditions) == 0 {
		return b
	}
	return b.Where(s.conditions...)
}

// Build validates req and composes its predicates. A nil request matches
// every product.
func Build(req *Request) (PredicateSet, error) {
	var set PredicateSet
	if req == nil {
		return set, nil
	}

	if raw := strings.TrimSpace(req.BrandID); raw != "" {
		ids, err := parseIDList("brandId", raw)
		if err != nil {
			return PredicateSet{}, err
		}
		alternatives := make([]query.Condition, 0, len(ids))
		for _, id := range ids {
			alternatives = append(alternatives, query.Contains(m_product.BrandIDs, id))
		}
		set.conditions = append(set.conditions, query.Or(alternatives...))
	}

	if raw := strings.TrimSpace(req.CategoryID); raw != "" {
		ids, err := parseIDList("categoryId", raw)
		if err != nil {
			return PredicateSet{}, err
		}
		linked := query.From(m_product_category.TableName).
			Select(m_product_category.ProductID).
			Where(query.In(m_product_category.CategoryID, ids))
		set.conditions = append(set.conditions, query.InSubquery(m_product.ID, linked))
	}

	if gender := normalize(req.Gender); gender != "" {
		set.conditions = append(set.conditions, query.Eq(m_product.Gender, gender))
	}

	if raw := strings.TrimSpace(req.Occasions); raw != "" {
		occasions := splitList(raw)
		if len(occasions) > 0 {
			set.conditions = append(set.conditions, query.Overlaps(m_product.Occasions, occasions))
		}
	}

	if raw := strings.TrimSpace(req.Discount); raw != "" {
		from, to, err := parseRange("discount", raw)
		if err != nil {
			return PredicateSet{}, err
		}
		set.conditions = append(set.conditions, query.Between(m_product.Discount, from, to))
	}

	if raw := strings.TrimSpace(req.PriceRangeTo); raw != "" {
		limit, err := decimal.NewFromString(raw)
		if err != nil {
			return PredicateSet{}, domain.NewValidationError("priceRangeTo", raw, "must be a number")
		}
		if limit.IsNegative() {
			return PredicateSet{}, domain.NewValidationError("priceRangeTo", raw, "must not be negative")
		}
		set.conditions = append(set.conditions, query.Lte(m_product.Price, limit))
	}

	return set, nil
}

// parseIDList parses a comma separated list of integer ids. Duplicates are
// dropped; the first occurrence keeps its position.
func parseIDList(field, raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	seen := make(map[int64]struct{}, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, domain.NewValidationError(field, raw, "entries must be integers")
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseRange parses "from-to" into an inclusive integer range.
func parseRange(field, raw string) (int64, int64, error) {
	bounds := strings.SplitN(raw, "-", 2)
	if len(bounds) != 2 {
		return 0, 0, domain.NewValidationError(field, raw, `must have the form "from-to"`)
	}
	from, err := strconv.ParseInt(strings.TrimSpace(bounds[0]), 10, 64)
	if err != nil {
		return 0, 0, domain.NewValidationError(field, raw, "from must be an integer")
	}
	to, err := strconv.ParseInt(strings.TrimSpace(bounds[1]), 10, 64)
	if err != nil {
		return 0, 0, domain.NewValidationError(field, raw, "to must be an integer")
	}
	if from > to {
		return 0, 0, domain.NewValidationError(field, raw, "from must not exceed to")
	}
	return from, to, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if v := normalize(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func normalize(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}
