// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

// Pagination defines page-based list options shared by every repository.
type Pagination struct {
	Page  int
	Limit int
}

// Pagination bounds applied to every list endpoint.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Normalized returns the pagination with defaults applied and the limit
// capped.
func (p Pagination) Normalized() Pagination {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset returns the row offset for the current page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages returns how many pages the total row count spans, never less
// than one.
func TotalPages(total int64, limit int) int {
	if limit < 1 {
		return 1
	}
	pages := int((total + int64(limit) - 1) / int64(limit))
	if pages == 0 {
		pages = 1
	}
	return pages
}
