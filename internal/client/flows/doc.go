// Package flows implements the interactive operations around the product
// list: adding a product, editing a row in place, deleting with
// confirmation, viewing stock history and CSV import/export.
//
// A flow keeps its own error state and never hands a failure to the list or
// to another flow. On success the mutating flows call their Completion,
// which re-fetches the list with its current query.
package flows

import "context"

// Completion runs after a successful mutation, typically
// (*listing.Controller).Refresh. Its error is reported by the list itself.
type Completion func(ctx context.Context) error

func complete(ctx context.Context, done Completion) {
	if done != nil {
		_ = done(ctx)
	}
}
