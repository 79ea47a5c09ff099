// Package client contains the CLI's side of the GrowLog wire protocol.
//
// # Overview
//
// The package provides:
//  1. The Client interface: every server call the CLI makes.
//  2. HTTPClient, the net/http implementation. It attaches the bearer access
//     token, transparently refreshes an expired session once on 401 and maps
//     failures to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) that opens
//     the SQLite session store and applies the embedded goose migrations.
//
// # Error Handling
//
// Transport failures are reported as ErrUnavailable. Non-2xx responses are
// returned as *APIError, which matches ErrUnauthorized, ErrUnavailable and
// common.ErrorNotFound through errors.Is according to the status code.
package client
