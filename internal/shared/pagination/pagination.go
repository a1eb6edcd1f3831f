package pagination

import "strconv"

// Every list endpoint shares this contract: a 1-based page and a page size,
// read from the _page and _limit query parameters. Absent or non-numeric
// values fall back to page 1 / size 10. A page past the last one simply
// yields an empty item list.

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Params is a parsed page request.
type Params struct {
	Page  int
	Limit int
}

// FromQuery parses the raw _page/_limit query values.
func FromQuery(pageStr, limitStr string) Params {
	p := Params{Page: DefaultPage, Limit: DefaultLimit}

	if page, err := strconv.Atoi(pageStr); err == nil && page >= 1 {
		p.Page = page
	}
	if limit, err := strconv.Atoi(limitStr); err == nil && limit >= 1 {
		p.Limit = limit
	}

	return p
}

// Offset returns the number of items to skip.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages returns ceil(total/limit).
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
