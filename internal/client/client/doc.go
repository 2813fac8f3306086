// Package client contains the client-side building blocks for talking to the
// fittrack backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface): SignUp,
//     SignIn, Me, the equipment and injury catalogs, and Ping.
//  2. A concrete HTTP/JSON implementation (see HTTPClient). Sign-up is sent as
//     JSON, sign-in as a form-url-encoded body, and authenticated calls carry
//     a bearer token read from a TokenSource on every request.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Rejections (status >= 400) are returned as *RequestError whose Detail holds
// the backend's "detail" message. Callers can also match the sentinel errors
// ErrUnauthorized (401/403) and ErrUnavailable (unreachable, 502-504) with
// errors.Is.
//
// All operations accept context.Context and honor cancellation.
package client
