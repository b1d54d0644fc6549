package auth

import "errors"

var (
	// ErrInvalidToken indicates a malformed token or a bad signature.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken indicates a token past its expiry.
	ErrExpiredToken = errors.New("token expired")

	// ErrAuthRequired indicates a request that needs an authenticated
	// session but carried none.
	ErrAuthRequired = errors.New("authentication required")
)
