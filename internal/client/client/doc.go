// Package client contains the remote side of the GameZone data layer and the
// bootstrap of the local one.
//
// # Overview
//
// The package provides:
//  1. The API contracts UsersAPI and ProductsAPI with their wire types
//     (UserDTO, ProductDTO) and mappers to the domain models.
//  2. HTTPClient, a JSON-over-HTTP implementation of both contracts against
//     the /usuarios and /productos resources. Every request carries an
//     X-Request-ID and is bounded only by the http.Client timeout.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations,
//     OpenRepositories) wiring SQLite and the embedded goose migrations.
//
// # Error Handling
//
// Failures are exposed as sentinel errors matched with errors.Is:
// ErrUnavailable (transport), ErrUnauthorized, ErrNotFound, ErrConflict and
// ErrBadResponse. Any other non-2xx answer is an *APIError.
//
// The gateway never retries; retry and fallback policy belongs to the
// services package.
package client
