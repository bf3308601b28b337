package params

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// NumPerPage is the fixed page size for collection listings.
const NumPerPage = 10

// URL: /businesses?page=3
// → ParsePagination() → Pagination{Page:3, Limit:10, Offset:20}
// → SQL: SELECT ... LIMIT 10 OFFSET 20, plus total count
// → ComputeMeta(total) → clamps page, fills Total/TotalPages
// → Links(path) → nextPage/lastPage/prevPage/firstPage
type Pagination struct {
	Page       int
	Limit      int
	Offset     int
	Total      int
	TotalPages int
}

// ParsePagination parses ?page=... safely. Missing, malformed, and
// non-positive values all resolve to page 1.
func ParsePagination(q url.Values) Pagination {
	p := Pagination{
		Page:  1,
		Limit: NumPerPage,
	}

	if pageStr := strings.TrimSpace(q.Get("page")); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			p.Page = page
		}
	}

	p.Offset = (p.Page - 1) * p.Limit
	return p
}

// ComputeMeta fills in the totals once the collection's row count is known
// and clamps the page into [1, TotalPages]. It reports whether the page (and
// therefore the offset) moved, in which case rows fetched with the previous
// offset are stale and must be re-fetched.
func (p *Pagination) ComputeMeta(total int) bool {
	p.Total = total
	p.TotalPages = int(math.Ceil(float64(total) / float64(p.Limit)))

	page := p.Page
	if page > p.TotalPages {
		page = p.TotalPages
	}
	if page < 1 {
		page = 1
	}

	clamped := page != p.Page
	p.Page = page
	p.Offset = (page - 1) * p.Limit
	return clamped
}

// Links is the navigation link set attached to a collection page.
type Links struct {
	NextPage  string `json:"nextPage,omitempty"`
	LastPage  string `json:"lastPage,omitempty"`
	PrevPage  string `json:"prevPage,omitempty"`
	FirstPage string `json:"firstPage,omitempty"`
}

// Links builds relative navigation links for the collection mounted at path.
// Forward links appear only while pages remain, backward links only off the
// first page.
func (p *Pagination) Links(path string) Links {
	var l Links
	if p.Page < p.TotalPages {
		l.NextPage = fmt.Sprintf("%s?page=%d", path, p.Page+1)
		l.LastPage = fmt.Sprintf("%s?page=%d", path, p.TotalPages)
	}
	if p.Page > 1 {
		l.PrevPage = fmt.Sprintf("%s?page=%d", path, p.Page-1)
		l.FirstPage = fmt.Sprintf("%s?page=1", path)
	}
	return l
}
