// Package state holds the observable screen state of the client: the
// product listing and the user account. Holders are safe for concurrent use
// and publish a snapshot to subscribers after every change.
package state
