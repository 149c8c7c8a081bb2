// Package client talks to the stockkeeper inventory service.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface): Login,
//     Register, product CRUD, stock history, categories and CSV import/export.
//  2. A concrete HTTP/JSON implementation (see HTTPClient) that attaches the
//     session token as a bearer credential, tags every request with an
//     X-Request-ID and maps responses to the error taxonomy below.
//
// # Error Handling
//
// Failures fall into four kinds, reported by Classify:
//
//   - KindNetwork: no response was received (ErrUnavailable).
//   - KindAuthorization: the server answered 401 or 403, or an authenticated
//     call was attempted without a token (ErrUnauthorized). Before returning,
//     HTTPClient invokes the unauthorized handler so the session is torn down
//     no matter which call observed the failure.
//   - KindValidation: the server rejected individual fields (*ValidationError).
//   - KindGeneral: any other error status with a single message (*APIError).
//
// HTTPClient never retries.
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept a
// context.Context and abort when it is cancelled.
package client
