package models

import (
	"net/url"
	"strconv"
)

// ListQuery drives the product list fetch.
type ListQuery struct {
	Search   string
	Category string
	Page     int
	PageSize int
}

// Values encodes q as the query string of GET /products. Empty search and
// category are sent as empty parameters, like the original web client did.
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	v.Set("search", q.Search)
	v.Set("category", q.Category)
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.PageSize))
	return v
}

// Pagination is mirrored verbatim from the server.
type Pagination struct {
	Current int `json:"current"`
	Limit   int `json:"limit"`
	Total   int `json:"total"`
	Pages   int `json:"pages"`
}

// Range returns the 1-based positions of the first and last item on the
// current page, e.g. 11..20 of 35. Both are zero when there is nothing to show.
func (p Pagination) Range() (from, to int) {
	if p.Total <= 0 || p.Current < 1 || p.Limit < 1 {
		return 0, 0
	}
	from = (p.Current-1)*p.Limit + 1
	to = min(p.Current*p.Limit, p.Total)
	if from > to {
		return 0, 0
	}
	return from, to
}

// ProductPage is one page of the product list.
type ProductPage struct {
	Products   []Product   `json:"products"`
	Pagination *Pagination `json:"pagination"`
}
