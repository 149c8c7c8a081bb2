package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/stockkeeper/internal/client/flows"
)

// Import uploads a CSV file and prints the server's summary.
func (a *App) Import(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		path, err := getSimpleText(a.reader, "Enter path to CSV file", a.out)
		if err != nil {
			return err
		}
		if path != "" {
			paths = []string{path}
		}
	}

	sum, err := a.transfer.Import(ctx, paths...)
	if err != nil {
		fmt.Fprintln(a.out, transferMessage(err))
		return err
	}

	renderSummary(a.out, sum)
	if a.isLoggedIn() {
		a.renderList()
	}
	return nil
}

// Export saves every product to a dated CSV file.
func (a *App) Export(ctx context.Context) error {
	path, err := a.transfer.Export(ctx)
	if err != nil {
		fmt.Fprintln(a.out, transferMessage(err))
		return err
	}
	fmt.Fprintln(a.out, "Exported to", path)
	return nil
}

func transferMessage(err error) string {
	var te *flows.TransferError
	switch {
	case errors.As(err, &te):
		return te.Message
	case errors.Is(err, flows.ErrOneFileRequired):
		return "Please select exactly one CSV file"
	case errors.Is(err, flows.ErrNotCSV):
		return "Please select a CSV file"
	case errors.Is(err, flows.ErrBusy):
		return "A transfer is already in progress"
	default:
		return "Error: " + err.Error()
	}
}
