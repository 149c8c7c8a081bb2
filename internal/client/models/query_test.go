package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListQuery_Values(t *testing.T) {
	q := ListQuery{Search: "widget", Category: "Electronics", Page: 3, PageSize: 10}
	v := q.Values()

	assert.Equal(t, "widget", v.Get("search"))
	assert.Equal(t, "Electronics", v.Get("category"))
	assert.Equal(t, "3", v.Get("page"))
	assert.Equal(t, "10", v.Get("limit"))
	assert.Equal(t, "category=Electronics&limit=10&page=3&search=widget", v.Encode())
}

func TestPagination_Range(t *testing.T) {
	tests := []struct {
		name     string
		p        Pagination
		from, to int
	}{
		{"first page", Pagination{Current: 1, Limit: 10, Total: 35, Pages: 4}, 1, 10},
		{"middle page", Pagination{Current: 2, Limit: 10, Total: 35, Pages: 4}, 11, 20},
		{"last partial page", Pagination{Current: 4, Limit: 10, Total: 35, Pages: 4}, 31, 35},
		{"empty", Pagination{Current: 1, Limit: 10, Total: 0, Pages: 0}, 0, 0},
		{"past the end", Pagination{Current: 9, Limit: 10, Total: 35, Pages: 4}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := tt.p.Range()
			assert.Equal(t, tt.from, from)
			assert.Equal(t, tt.to, to)
		})
	}
}
