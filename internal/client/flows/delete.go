package flows

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/stockkeeper/internal/client/client"
	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
)

var ErrNothingPending = errors.New("no deletion awaiting confirmation")

// ProductDeleter is the remote call used by DeleteFlow.
type ProductDeleter interface {
	DeleteProduct(ctx context.Context, id string) error
}

// DeleteFlow is a two-step delete: Request, then Confirm or Cancel.
type DeleteFlow struct {
	api  ProductDeleter
	done Completion

	mu      sync.Mutex
	pending *models.Product
	busy    bool
	errMsg  string
}

func NewDeleteFlow(api ProductDeleter, done Completion) *DeleteFlow {
	return &DeleteFlow{api: api, done: done}
}

// Request asks for confirmation to delete p.
func (d *DeleteFlow) Request(p models.Product) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = &p
	d.errMsg = ""
}

// Pending returns the product awaiting confirmation.
func (d *DeleteFlow) Pending() (models.Product, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending == nil {
		return models.Product{}, false
	}
	return *d.pending, true
}

func (d *DeleteFlow) Busy() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.busy
}

// Err is the message of the last failed attempt.
func (d *DeleteFlow) Err() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.errMsg
}

func (d *DeleteFlow) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = nil
	d.errMsg = ""
}

// Confirm deletes the pending product. A failed attempt keeps the
// confirmation open.
func (d *DeleteFlow) Confirm(ctx context.Context) error {
	d.mu.Lock()
	if d.pending == nil {
		d.mu.Unlock()
		return ErrNothingPending
	}
	if d.busy {
		d.mu.Unlock()
		return ErrBusy
	}
	id := d.pending.ID
	d.busy = true
	d.errMsg = ""
	d.mu.Unlock()

	err := d.api.DeleteProduct(ctx, id)

	d.mu.Lock()
	d.busy = false
	if err != nil {
		switch client.Classify(err) {
		case client.KindAuthorization:
		case client.KindNetwork:
			d.errMsg = "Error deleting product: " + MsgNetwork
		default:
			d.errMsg = "Error deleting product: " + serverMessage(err, err.Error())
		}
		d.mu.Unlock()
		return err
	}
	d.mu.Unlock()

	complete(ctx, d.done)

	d.mu.Lock()
	if d.pending != nil && d.pending.ID == id {
		d.pending = nil
	}
	d.mu.Unlock()
	return nil
}
