package alloc

import "errors"

var (
	// ErrZeroSize indicates a zero-byte allocation request.
	ErrZeroSize = errors.New("alloc: zero-size request")

	// ErrInvalidSize indicates a negative or unrepresentable size.
	ErrInvalidSize = errors.New("alloc: invalid size")

	// ErrOverflow indicates that count*elemSize overflowed in ZeroAllocate.
	ErrOverflow = errors.New("alloc: size overflow")

	// ErrOutOfMemory indicates that the region refused to grow.
	ErrOutOfMemory = errors.New("alloc: out of memory")

	// ErrBadPointer indicates a pointer that cannot belong to this arena.
	ErrBadPointer = errors.New("alloc: bad pointer")

	// ErrDoubleRelease indicates a release of a block that is already free.
	ErrDoubleRelease = errors.New("alloc: block already free")

	// ErrNotAllocated indicates an operation on a block that is not in use.
	ErrNotAllocated = errors.New("alloc: block not allocated")

	// ErrCorrupt indicates the block list violates a structural invariant.
	ErrCorrupt = errors.New("alloc: corrupt block list")

	// ErrUnknownFit indicates an unrecognised fit policy.
	ErrUnknownFit = errors.New("alloc: unknown fit policy")
)
