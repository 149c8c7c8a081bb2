package flows

import (
	"context"
	"io"
	"sync"

	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
)

type fakeAPI struct {
	mu sync.Mutex

	CreateErr error
	UpdateErr error
	DeleteErr error

	HistoryRet []models.HistoryRecord
	HistoryErr error

	ImportRet models.ImportSummary
	ImportErr error
	ExportRet []byte
	ExportErr error

	Created      []models.ProductInput
	Updated      map[string]models.ProductInput
	Deleted      []string
	HistoryCalls int
	ImportedName string
	ImportedBody string
}

func (f *fakeAPI) CreateProduct(_ context.Context, in models.ProductInput) (models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Created = append(f.Created, in)
	return models.Product{ID: "new", Name: in.Name}, f.CreateErr
}

func (f *fakeAPI) UpdateProduct(_ context.Context, id string, in models.ProductInput) (models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Updated == nil {
		f.Updated = map[string]models.ProductInput{}
	}
	f.Updated[id] = in
	return models.Product{ID: id, Name: in.Name}, f.UpdateErr
}

func (f *fakeAPI) DeleteProduct(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Deleted = append(f.Deleted, id)
	return f.DeleteErr
}

func (f *fakeAPI) ProductHistory(_ context.Context, _ string) ([]models.HistoryRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.HistoryCalls++
	return f.HistoryRet, f.HistoryErr
}

func (f *fakeAPI) ImportProducts(_ context.Context, name string, r io.Reader) (models.ImportSummary, error) {
	b, _ := io.ReadAll(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ImportedName, f.ImportedBody = name, string(b)
	return f.ImportRet, f.ImportErr
}

func (f *fakeAPI) ExportProducts(context.Context) ([]byte, error) {
	return f.ExportRet, f.ExportErr
}

// refreshCounter stands in for the list controller.
type refreshCounter struct {
	mu sync.Mutex
	n  int
}

func (r *refreshCounter) Refresh(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.n++
	return nil
}

func (r *refreshCounter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.n
}
