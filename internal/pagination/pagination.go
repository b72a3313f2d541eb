// Package pagination slices an ordered result set into fixed-size pages.
// Listings count rows first, resolve the requested page number here, and
// query with the resulting limit/offset.
package pagination

import "strconv"

type Paginator struct {
	totalItems int
	pageSize   int
}

type Page struct {
	Number     int  `json:"number"`
	Offset     int  `json:"offset"`
	Limit      int  `json:"limit"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
	// Neighbor numbers for pagination links; templates cannot do the
	// arithmetic themselves.
	NextNumber int `json:"next_number"`
	PrevNumber int `json:"prev_number"`
}

func New(totalItems, pageSize int) Paginator {
	if totalItems < 0 {
		totalItems = 0
	}
	if pageSize < 1 {
		pageSize = 1
	}
	return Paginator{totalItems: totalItems, pageSize: pageSize}
}

func (p Paginator) TotalPages() int {
	if p.totalItems == 0 {
		return 1
	}
	return (p.totalItems + p.pageSize - 1) / p.pageSize
}

// Resolve maps a raw "page" query value to a concrete page. Missing or
// non-numeric values resolve to the first page; numeric values outside
// 1..TotalPages, below as well as above, resolve to the last page. It
// never fails.
func (p Paginator) Resolve(raw string) Page {
	last := p.TotalPages()
	number, err := strconv.Atoi(raw)
	switch {
	case err != nil:
		number = 1
	case number < 1 || number > last:
		number = last
	}
	return p.page(number)
}

func (p Paginator) page(number int) Page {
	offset := (number - 1) * p.pageSize
	limit := p.pageSize
	if remaining := p.totalItems - offset; remaining < limit {
		limit = remaining
	}
	if limit < 0 {
		limit = 0
	}
	return Page{
		Number:     number,
		Offset:     offset,
		Limit:      limit,
		TotalItems: p.totalItems,
		TotalPages: p.TotalPages(),
		HasNext:    number < p.TotalPages(),
		HasPrev:    number > 1,
		NextNumber: number + 1,
		PrevNumber: number - 1,
	}
}
