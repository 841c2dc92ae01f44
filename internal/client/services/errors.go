package services

import "errors"

var (
	// ErrEmailTaken is returned by registration when the local cache already
	// knows the email, or the API reports a conflict.
	ErrEmailTaken = errors.New("email already registered")

	ErrNoCurrentUser = errors.New("no current user")

	// ErrInvalidCredentials means the email/password pair was rejected,
	// online by the API or offline by the cached hash.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
