package flows

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/stockkeeper/internal/client/client"
	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
	"github.com/dmitrijs2005/stockkeeper/internal/filex"
)

const (
	exportPrefix = "products_export"
	csvExt       = ".csv"
)

var (
	ErrOneFileRequired = errors.New("exactly one file must be selected")
	ErrNotCSV          = errors.New("only .csv files can be imported")
)

// TransferAPI is the remote side of Transfer.
type TransferAPI interface {
	ImportProducts(ctx context.Context, filename string, r io.Reader) (models.ImportSummary, error)
	ExportProducts(ctx context.Context) ([]byte, error)
}

// TransferError carries the message to show for a failed import or export.
type TransferError struct {
	Message string
	Err     error
}

func (e *TransferError) Error() string { return e.Message }
func (e *TransferError) Unwrap() error { return e.Err }

// Transfer imports products from and exports them to CSV files.
type Transfer struct {
	api       TransferAPI
	done      Completion
	exportDir string
	now       func() time.Time

	importing atomic.Bool
	exporting atomic.Bool
}

type TransferOption func(*Transfer)

// WithClock replaces time.Now for naming export files.
func WithClock(now func() time.Time) TransferOption {
	return func(t *Transfer) { t.now = now }
}

func NewTransfer(api TransferAPI, done Completion, exportDir string, opts ...TransferOption) *Transfer {
	t := &Transfer{api: api, done: done, exportDir: exportDir, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Transfer) Busy() bool {
	return t.importing.Load() || t.exporting.Load()
}

// Import uploads one CSV file. Any summary returned by the server counts as
// success and refreshes the list, even when some rows were rejected.
func (t *Transfer) Import(ctx context.Context, paths ...string) (models.ImportSummary, error) {
	if len(paths) != 1 {
		return models.ImportSummary{}, ErrOneFileRequired
	}
	path := paths[0]
	if !strings.EqualFold(filepath.Ext(path), csvExt) {
		return models.ImportSummary{}, ErrNotCSV
	}

	if !t.importing.CompareAndSwap(false, true) {
		return models.ImportSummary{}, ErrBusy
	}
	defer t.importing.Store(false)

	f, err := os.Open(path)
	if err != nil {
		return models.ImportSummary{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sum, err := t.api.ImportProducts(ctx, filepath.Base(path), f)
	if err != nil {
		return models.ImportSummary{}, &TransferError{
			Message: "Import failed: " + serverMessage(err, "Import failed"),
			Err:     err,
		}
	}

	complete(ctx, t.done)
	return sum, nil
}

// Export downloads all products as CSV into the export directory and
// returns the path written. The list is left untouched.
func (t *Transfer) Export(ctx context.Context) (string, error) {
	if !t.exporting.CompareAndSwap(false, true) {
		return "", ErrBusy
	}
	defer t.exporting.Store(false)

	data, err := t.api.ExportProducts(ctx)
	if err != nil {
		return "", &TransferError{Message: "Export failed: " + exportMessage(err), Err: err}
	}

	name := filex.DatedName(exportPrefix, csvExt, t.now())
	path, err := filex.WriteFile(t.exportDir, name, data)
	if err != nil {
		return "", &TransferError{Message: "Export failed: " + err.Error(), Err: err}
	}
	return path, nil
}

func exportMessage(err error) string {
	var (
		aerr *client.APIError
		verr *client.ValidationError
	)
	status := 0
	switch {
	case errors.As(err, &aerr):
		status = aerr.Status
	case errors.As(err, &verr):
		status = verr.Status
	case errors.Is(err, client.ErrUnavailable):
		return "No response from server. Check if backend is running."
	default:
		return err.Error()
	}

	msg := fmt.Sprintf("Server error (%d)", status)
	if status == http.StatusNotFound {
		msg += " - Export endpoint not found. Please check backend server."
	}
	return msg
}
