package carousel

import "errors"

var (
	// ErrInvalidConfiguration is returned by New for an empty item set or
	// negative timing options.
	ErrInvalidConfiguration = errors.New("invalid carousel configuration")
	// ErrDisposed is returned by every operation after Dispose.
	ErrDisposed = errors.New("carousel controller disposed")
)
