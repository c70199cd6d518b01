package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a header.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrMisaligned indicates a header declared a size that is not a multiple of Alignment.
	ErrMisaligned = errors.New("format: misaligned block size")
	// ErrBadLink indicates a prev/next link pointing outside the arena.
	ErrBadLink = errors.New("format: bad block link")
)
