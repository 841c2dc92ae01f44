package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable means the API could not be reached (dial failure,
	// timeout, reset connection).
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized is returned for 401/403, e.g. wrong login credentials.
	ErrUnauthorized = errors.New("unauthorized")

	ErrNotFound = errors.New("not found")

	// ErrConflict is returned for 409, e.g. an email that is already taken.
	ErrConflict = errors.New("conflict")

	// ErrBadResponse means a 2xx response whose body could not be decoded.
	ErrBadResponse = errors.New("bad response")
)

// APIError is a non-2xx answer from the API. It matches the sentinel for its
// status code with errors.Is.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api error: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	default:
		return nil
	}
}
