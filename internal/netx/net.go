// Package netx classifies outbound network failures.
package netx

import (
	"context"
	"errors"
	"net"
	"net/url"
	"syscall"
)

// IsUnavailable reports whether err means the remote end could not be
// reached at all: dial and DNS failures, refused or reset connections and
// timeouts. Caller-side cancellation is not a transport failure.
func IsUnavailable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}

	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
