// Package listing owns the product list state: the current query, the page of
// products last received and the pagination reported by the server.
//
// Every fetch is numbered. A response is applied only while its number is
// still the latest issued, so a slow response to an older query never
// overwrites the result of a newer one.
package listing

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
	"github.com/dmitrijs2005/stockkeeper/internal/logging"
)

var (
	// ErrPageOutOfRange is returned by SetPage for pages the server did not report.
	ErrPageOutOfRange = errors.New("page out of range")
	// ErrSuperseded is returned by a fetch whose result was discarded because
	// a newer fetch was issued meanwhile.
	ErrSuperseded = errors.New("superseded by a newer request")
)

// Fetcher loads one page of products.
type Fetcher interface {
	ListProducts(ctx context.Context, q models.ListQuery) (models.ProductPage, error)
}

// State is a snapshot of the list for rendering.
type State struct {
	Query      models.ListQuery
	Products   []models.Product
	Pagination models.Pagination
	Loading    bool
	Err        error
}

// Controller is safe for concurrent use.
type Controller struct {
	api      Fetcher
	log      logging.Logger
	pageSize int

	mu     sync.Mutex
	state  State
	seq    uint64
	cancel context.CancelFunc
}

func NewController(api Fetcher, pageSize int, log logging.Logger) *Controller {
	c := &Controller{api: api, log: log, pageSize: pageSize}
	c.state = c.initialState()
	return c
}

func (c *Controller) initialState() State {
	return State{
		Query:      models.ListQuery{Page: 1, PageSize: c.pageSize},
		Pagination: models.Pagination{Current: 1, Limit: c.pageSize},
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Products = slices.Clone(c.state.Products)
	return s
}

// Load performs the initial fetch.
func (c *Controller) Load(ctx context.Context) error {
	return c.Refresh(ctx)
}

// Refresh re-fetches with the current query.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.fetch(ctx, func(q *models.ListQuery) {})
}

// SetSearch changes the search term and goes back to the first page.
func (c *Controller) SetSearch(ctx context.Context, term string) error {
	return c.fetch(ctx, func(q *models.ListQuery) {
		q.Search = term
		q.Page = 1
	})
}

// SetFilter changes the category filter and goes back to the first page.
func (c *Controller) SetFilter(ctx context.Context, category string) error {
	return c.fetch(ctx, func(q *models.ListQuery) {
		q.Category = category
		q.Page = 1
	})
}

// ClearFilters drops both the search term and the category.
func (c *Controller) ClearFilters(ctx context.Context) error {
	return c.fetch(ctx, func(q *models.ListQuery) {
		q.Search = ""
		q.Category = ""
		q.Page = 1
	})
}

// SetPage fetches page n. Pages outside 1..pages are rejected without a fetch.
func (c *Controller) SetPage(ctx context.Context, n int) error {
	c.mu.Lock()
	last := max(c.state.Pagination.Pages, 1)
	c.mu.Unlock()

	if n < 1 || n > last {
		return ErrPageOutOfRange
	}
	return c.fetch(ctx, func(q *models.ListQuery) { q.Page = n })
}

func (c *Controller) NextPage(ctx context.Context) error {
	return c.SetPage(ctx, c.currentPage()+1)
}

func (c *Controller) PrevPage(ctx context.Context) error {
	return c.SetPage(ctx, c.currentPage()-1)
}

func (c *Controller) currentPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Query.Page
}

// Reset forgets all state and discards any fetch in flight.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.state = c.initialState()
}

// fetch applies change to the query, issues the request and applies its
// result if no newer fetch was issued meanwhile.
func (c *Controller) fetch(ctx context.Context, change func(q *models.ListQuery)) error {
	c.mu.Lock()
	change(&c.state.Query)
	q := c.state.Query
	c.seq++
	seq := c.seq
	if c.cancel != nil {
		c.cancel()
	}
	fctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.state.Loading = true
	c.mu.Unlock()

	page, err := c.api.ListProducts(fctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	cancel()

	if seq != c.seq {
		c.log.Debug(ctx, "discarding stale product page", "page", q.Page, "seq", seq)
		return ErrSuperseded
	}
	c.cancel = nil
	c.state.Loading = false

	if err != nil {
		c.state.Err = err
		return err
	}

	c.state.Err = nil
	c.state.Products = page.Products
	if page.Pagination != nil {
		c.state.Pagination = *page.Pagination
	} else {
		c.state.Pagination.Current = q.Page
	}
	return nil
}
