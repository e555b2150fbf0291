package channel

import "errors"

var (
	// ErrClosed is returned by sends on a closed channel and by the
	// context-aware receive once a closed channel has been drained.
	ErrClosed = errors.New("channel: closed")
	// ErrInvalidCapacity is returned by New for a capacity below 1.
	ErrInvalidCapacity = errors.New("channel: capacity must be > 0")
)
