package flows

import (
	"context"
	"errors"
	"maps"
	"sync"

	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
)

var ErrNotEditing = errors.New("no row is being edited")

// ProductUpdater is the remote call used by EditFlow.
type ProductUpdater interface {
	UpdateProduct(ctx context.Context, id string, in models.ProductInput) (models.Product, error)
}

// EditFlow edits at most one row at a time.
type EditFlow struct {
	api  ProductUpdater
	done Completion

	mu      sync.Mutex
	editing bool
	busy    bool
	id      string
	draft   Form
	errs    FormErrors
}

func NewEditFlow(api ProductUpdater, done Completion) *EditFlow {
	return &EditFlow{api: api, done: done, errs: FormErrors{}}
}

// Begin starts editing p, replacing any other draft.
func (e *EditFlow) Begin(p models.Product) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.editing = true
	e.id = p.ID
	e.draft = formFromInput(p.Input())
	e.errs = FormErrors{}
}

// Editing returns the id of the row being edited.
func (e *EditFlow) Editing() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.id, e.editing
}

func (e *EditFlow) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.busy
}

func (e *EditFlow) Draft() Form {
	e.mu.Lock()
	defer e.mu.Unlock()
	return maps.Clone(e.draft)
}

func (e *EditFlow) Errors() FormErrors {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errs.clone()
}

func (e *EditFlow) Set(field, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.editing {
		return ErrNotEditing
	}
	if err := e.draft.set(field, value); err != nil {
		return err
	}
	delete(e.errs, field)
	return nil
}

// Cancel leaves edit mode without contacting the server.
func (e *EditFlow) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset()
}

func (e *EditFlow) reset() {
	e.editing = false
	e.id = ""
	e.draft = nil
	e.errs = FormErrors{}
}

// Save sends the draft of the edited row.
func (e *EditFlow) Save(ctx context.Context) error {
	e.mu.Lock()
	if !e.editing {
		e.mu.Unlock()
		return ErrNotEditing
	}
	if e.busy {
		e.mu.Unlock()
		return ErrBusy
	}
	in, errs := Validate(e.draft)
	if len(errs) > 0 {
		e.errs = errs
		e.mu.Unlock()
		return ErrInvalidForm
	}
	id := e.id
	e.busy = true
	e.errs = FormErrors{}
	e.mu.Unlock()

	_, err := e.api.UpdateProduct(ctx, id, in)

	e.mu.Lock()
	e.busy = false
	if err != nil {
		errs := errorsFromRemote(err, err.Error())
		if msg, ok := errs[GeneralKey]; ok {
			errs[GeneralKey] = "Error updating product: " + msg
		}
		e.errs = errs
		e.mu.Unlock()
		return err
	}
	e.mu.Unlock()

	complete(ctx, e.done)

	e.mu.Lock()
	if e.id == id {
		e.reset()
	}
	e.mu.Unlock()
	return nil
}
