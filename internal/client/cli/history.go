package cli

import (
	"context"
	"fmt"
)

// History shows the stock changes of one product, newest as sent by the server.
func (a *App) History(ctx context.Context, ref string) error {
	p, err := a.resolveProduct(ctx, ref)
	if err != nil {
		return err
	}

	err = a.history.Open(ctx, p)
	defer a.history.Close()

	if err != nil {
		if msg := a.history.Err(); msg != "" {
			fmt.Fprintln(a.out, msg)
		}
		return err
	}

	renderHistory(a.out, a.history.Product(), a.history.Records())
	return nil
}
