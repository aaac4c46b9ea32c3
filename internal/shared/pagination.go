package shared

import (
	"math"
	"net/url"
	"strconv"
)

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

// Page is a limit/offset window over a listing.
type Page struct {
	Number int
	Size   int
}

// PageFromQuery reads page and per_page query parameters, clamping to
// sane bounds. Absent or garbage values fall back to the defaults.
func PageFromQuery(q url.Values) Page {
	number, _ := strconv.Atoi(q.Get("page"))
	if number <= 0 {
		number = 1
	}
	size, _ := strconv.Atoi(q.Get("per_page"))
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return Page{Number: number, Size: size}
}

// Limit is the SQL row limit for the page.
func (p Page) Limit() int { return p.Size }

// Offset is the SQL row offset for the page.
func (p Page) Offset() int { return (p.Number - 1) * p.Size }

// PageMeta describes a page of results in a list response.
type PageMeta struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// MetaFor computes response metadata for a page over total rows.
func MetaFor(p Page, total int) PageMeta {
	return PageMeta{
		Page:       p.Number,
		PerPage:    p.Size,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(p.Size))),
	}
}
