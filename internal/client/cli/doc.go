// Package cli provides the interactive stockkeeper command-line client.
//
// It wires configuration, the local session database, the inventory API
// client and the product flows behind a line-oriented REPL. Typical flow:
// restore the previous session (or log in), load categories and the first
// page of products, then run user commands until exit.
//
// Key features:
//   - Register / Login / Logout
//   - Browse products: search, category filter, pagination
//   - Add, edit in place, delete with confirmation
//   - Stock history of a product
//   - CSV import and export
//
// When the server rejects the session, the App tears down all product state,
// prints a notice and falls back to the signed-out command set.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
