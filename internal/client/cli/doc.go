// Package cli provides the GameZone command-line client.
//
// It wires configuration, the local store, the API client and the state
// holders behind a cobra command tree:
//
//	gamezone [shell]                                  interactive session
//	gamezone products [--category C] [--search S] [--offline]
//	gamezone product <id>
//
// The shell warms the caches in the background, prints catalogue banners as
// they change and runs runREPL until the user exits.
package cli
