package cache

import "errors"

// Sentinel errors for caching operations.
var (
	// ErrClosed is returned by operations on a closed cache.
	ErrClosed = errors.New("cache closed")

	// ErrInvalidBackend is returned by [Open] for an unknown backend name.
	ErrInvalidBackend = errors.New("invalid cache backend")
)
