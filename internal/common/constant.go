// Package common contains constants and byte helpers shared across the
// GameZone client packages.
package common

// RequestIDHeader carries a per-request correlation id on outbound API calls.
const RequestIDHeader = "X-Request-ID"

// DefaultDatabasePath is the SQLite file used when nothing else is configured.
const DefaultDatabasePath = "gamezone.db"
