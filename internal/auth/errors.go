package auth

import "errors"

// Authentication errors.
var (
	// ErrMissingCredentials indicates no Authorization header was sent.
	ErrMissingCredentials = errors.New("authentication credentials were not provided")

	// ErrInvalidToken indicates the presented token is unknown or revoked.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidAuthorizationHeader indicates a malformed Authorization header.
	ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")

	// ErrNoIdentity indicates the request context carries no identity.
	ErrNoIdentity = errors.New("no authenticated identity in context")
)
