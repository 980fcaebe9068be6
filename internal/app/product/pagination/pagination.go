// Package pagination derives offsets and page counts from a total row count.
package pagination

import "strconv"

// Page size bounds.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page is the resolved position of a page within a result set.
type Page struct {
	PageNo   int
	PageSize int
	Offset   int64
	LastPage int64
}

// ParsePageNo reads a client page number. Absent, non-integer and
// non-positive values all mean the first page.
func ParsePageNo(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// NormalizePageSize applies the default to non-positive sizes and clamps
// anything above max. max <= 0 means MaxPageSize.
func NormalizePageSize(size, def, max int) int {
	if def <= 0 {
		def = DefaultPageSize
	}
	if max <= 0 {
		max = MaxPageSize
	}
	if size <= 0 {
		size = def
	}
	if size > max {
		size = max
	}
	return size
}

// Compute resolves pageNo and pageSize against total rows. pageSize is used
// as given; callers clamp it with NormalizePageSize against their own bounds.
// A non-positive size falls back to DefaultPageSize.
// offset = (max(pageNo,1)-1) * pageSize; lastPage = ceil(total/pageSize),
// which is 0 when total is 0.
func Compute(pageNo, pageSize int, total int64) Page {
	if pageNo < 1 {
		pageNo = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	size := int64(pageSize)
	var last int64
	if total > 0 {
		last = (total + size - 1) / size
	}

	return Page{
		PageNo:   pageNo,
		PageSize: pageSize,
		Offset:   int64(pageNo-1) * size,
		LastPage: last,
	}
}

// Beyond reports whether the page lies past the last page. Such pages are
// valid and simply hold no items.
func (p Page) Beyond() bool {
	return int64(p.PageNo) > p.LastPage
}
