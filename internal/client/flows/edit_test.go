package flows

import (
	"context"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/stockkeeper/internal/client/client"
	"github.com/dmitrijs2005/stockkeeper/internal/client/listing"
	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
	"github.com/dmitrijs2005/stockkeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var widget = models.Product{ID: "p1", Name: "Widget", Unit: "pcs", Category: "Tools", Brand: "Acme", Stock: 5, Status: "In Stock"}

func TestEditFlow_BeginSnapshotsRow(t *testing.T) {
	e := NewEditFlow(&fakeAPI{}, nil)

	_, ok := e.Editing()
	assert.False(t, ok)
	assert.ErrorIs(t, e.Set("name", "x"), ErrNotEditing)

	e.Begin(widget)
	id, ok := e.Editing()
	require.True(t, ok)
	assert.Equal(t, "p1", id)
	assert.Equal(t, Form{"name": "Widget", "unit": "pcs", "category": "Tools", "brand": "Acme", "stock": "5"}, e.Draft())

	other := models.Product{ID: "p2", Name: "Gadget"}
	e.Begin(other)
	id, _ = e.Editing()
	assert.Equal(t, "p2", id, "only one row is editable at a time")
	assert.Equal(t, "Gadget", e.Draft()["name"])
}

// Cancelling an edit makes no call and leaves the list exactly as it was.
func TestEditFlow_CancelLeavesListUntouched(t *testing.T) {
	ctx := context.Background()
	calls := 0
	list := listing.NewController(fetchFunc(func(_ context.Context, q models.ListQuery) (models.ProductPage, error) {
		calls++
		return models.ProductPage{
			Products:   []models.Product{widget},
			Pagination: &models.Pagination{Current: 1, Limit: 10, Total: 1, Pages: 1},
		}, nil
	}), 10, logging.Discard())
	require.NoError(t, list.Load(ctx))
	before := list.Snapshot()

	api := &fakeAPI{}
	e := NewEditFlow(api, list.Refresh)
	e.Begin(before.Products[0])
	require.NoError(t, e.Set("name", "Renamed"))
	require.NoError(t, e.Set("stock", "99"))
	e.Cancel()

	_, ok := e.Editing()
	assert.False(t, ok)
	assert.Empty(t, api.Updated)
	assert.Equal(t, 1, calls)
	assert.Equal(t, before, list.Snapshot())
}

func TestEditFlow_Save(t *testing.T) {
	api := &fakeAPI{}
	r := &refreshCounter{}
	e := NewEditFlow(api, r.Refresh)
	e.Begin(widget)
	require.NoError(t, e.Set("stock", "8"))

	require.NoError(t, e.Save(context.Background()))

	assert.Equal(t, models.ProductInput{Name: "Widget", Unit: "pcs", Category: "Tools", Brand: "Acme", Stock: 8}, api.Updated["p1"])
	assert.Equal(t, 1, r.count())
	_, ok := e.Editing()
	assert.False(t, ok)
}

func TestEditFlow_SaveErrors(t *testing.T) {
	t.Run("local validation", func(t *testing.T) {
		api := &fakeAPI{}
		e := NewEditFlow(api, nil)
		e.Begin(widget)
		require.NoError(t, e.Set("stock", "-1"))

		assert.ErrorIs(t, e.Save(context.Background()), ErrInvalidForm)
		assert.Equal(t, "Stock cannot be negative", e.Errors()["stock"])
		assert.Empty(t, api.Updated)
	})

	t.Run("server message", func(t *testing.T) {
		api := &fakeAPI{UpdateErr: &client.APIError{Status: 404, Message: "Product not found"}}
		r := &refreshCounter{}
		e := NewEditFlow(api, r.Refresh)
		e.Begin(widget)

		assert.Error(t, e.Save(context.Background()))
		assert.Equal(t, "Error updating product: Product not found", e.Errors().General())
		_, ok := e.Editing()
		assert.True(t, ok, "row stays in edit mode")
		assert.Zero(t, r.count())
	})

	t.Run("network", func(t *testing.T) {
		netErr := fmt.Errorf("%w: dial tcp 127.0.0.1:5000: connection refused", client.ErrUnavailable)
		e := NewEditFlow(&fakeAPI{UpdateErr: netErr}, nil)
		e.Begin(widget)

		assert.ErrorIs(t, e.Save(context.Background()), client.ErrUnavailable)
		assert.Equal(t, "Error updating product: "+MsgNetwork, e.Errors().General())
		_, ok := e.Editing()
		assert.True(t, ok)
	})

	t.Run("authorization", func(t *testing.T) {
		e := NewEditFlow(&fakeAPI{UpdateErr: client.ErrUnauthorized}, nil)
		e.Begin(widget)

		assert.ErrorIs(t, e.Save(context.Background()), client.ErrUnauthorized)
		assert.Empty(t, e.Errors())
	})

	t.Run("not editing", func(t *testing.T) {
		e := NewEditFlow(&fakeAPI{}, nil)
		assert.ErrorIs(t, e.Save(context.Background()), ErrNotEditing)
	})
}
