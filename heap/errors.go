package heap

import "errors"

var (
	// ErrLimit indicates an Extend call would move the boundary past the configured limit.
	ErrLimit = errors.New("heap: growth limit reached")

	// ErrClosed indicates an operation on a region that has been closed.
	ErrClosed = errors.New("heap: region closed")

	// ErrBadExtend indicates a non-positive extension request.
	ErrBadExtend = errors.New("heap: extend size must be positive")
)

// ErrReadOnly indicates an Extend call on a Snapshot.
var ErrReadOnly = errors.New("heap: snapshot cannot grow")
