package flows

import (
	"context"
	"errors"
	"maps"
	"sync"

	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
)

// MsgCreateFailed is the summary shown when the server gives no reason.
const MsgCreateFailed = "Failed to create product"

var ErrNotOpen = errors.New("form is not open")

// ProductCreator is the remote call used by AddFlow.
type ProductCreator interface {
	CreateProduct(ctx context.Context, in models.ProductInput) (models.Product, error)
}

// AddFlow collects a new product and submits it.
type AddFlow struct {
	api  ProductCreator
	done Completion

	mu   sync.Mutex
	open bool
	busy bool
	form Form
	errs FormErrors
}

func NewAddFlow(api ProductCreator, done Completion) *AddFlow {
	return &AddFlow{api: api, done: done, form: emptyForm(), errs: FormErrors{}}
}

// Open shows an empty form. Stock defaults to 0.
func (a *AddFlow) Open() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.open = true
	a.form = emptyForm()
	a.errs = FormErrors{}
}

func (a *AddFlow) IsOpen() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.open
}

func (a *AddFlow) Busy() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.busy
}

// Set updates one field and clears its error.
func (a *AddFlow) Set(field, value string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.open {
		return ErrNotOpen
	}
	if err := a.form.set(field, value); err != nil {
		return err
	}
	delete(a.errs, field)
	return nil
}

func (a *AddFlow) Form() Form {
	a.mu.Lock()
	defer a.mu.Unlock()
	return maps.Clone(a.form)
}

func (a *AddFlow) Errors() FormErrors {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.errs.clone()
}

// Close discards the form.
func (a *AddFlow) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.open = false
	a.form = emptyForm()
	a.errs = FormErrors{}
}

// Submit creates the product. On success the list is refreshed and the
// form closed; on failure the form stays open with its errors set.
func (a *AddFlow) Submit(ctx context.Context) error {
	a.mu.Lock()
	if !a.open {
		a.mu.Unlock()
		return ErrNotOpen
	}
	if a.busy {
		a.mu.Unlock()
		return ErrBusy
	}
	in, errs := Validate(a.form)
	if len(errs) > 0 {
		a.errs = errs
		a.mu.Unlock()
		return ErrInvalidForm
	}
	a.busy = true
	a.errs = FormErrors{}
	a.mu.Unlock()

	_, err := a.api.CreateProduct(ctx, in)

	a.mu.Lock()
	a.busy = false
	if err != nil {
		a.errs = errorsFromRemote(err, MsgCreateFailed)
		a.mu.Unlock()
		return err
	}
	a.mu.Unlock()

	complete(ctx, a.done)
	a.Close()
	return nil
}
