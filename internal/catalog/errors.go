package catalog

import "errors"

var (
	// ErrInvalidAlbumID is returned when no album ID can be found in the input.
	ErrInvalidAlbumID = errors.New("invalid album link or ID")

	// ErrUnauthorized is returned when the API rejects the access token.
	ErrUnauthorized = errors.New("catalog access token rejected")

	// ErrRateLimited is returned when the API still answers 429 after retrying.
	ErrRateLimited = errors.New("catalog rate limit exceeded")

	// ErrNotFound is returned when the requested object does not exist.
	ErrNotFound = errors.New("catalog object not found")

	// ErrUnavailable is returned while the circuit breaker is open.
	ErrUnavailable = errors.New("catalog temporarily unavailable")
)
