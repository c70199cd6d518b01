package heap

import "fmt"

// Region is a contiguous, forward-growing arena.
type Region interface {
	// Bytes returns the whole arena. The slice is invalidated by Extend.
	Bytes() []byte

	// Len returns the current boundary: the number of bytes in the arena.
	Len() int

	// Extend moves the boundary forward by n bytes. The new bytes are zero.
	// On failure the region is left exactly as it was.
	Extend(n int) error

	// Close releases the region's resources.
	Close() error
}

// Memory is a Region backed by an in-process byte slice.
type Memory struct {
	data   []byte
	limit  int
	closed bool
}

// NewMemory creates an empty in-memory region.
//
// Parameters:
//   - limit: maximum arena size in bytes; 0 means unlimited
func NewMemory(limit int) *Memory {
	return &Memory{limit: limit}
}

func (m *Memory) Bytes() []byte { return m.data }

func (m *Memory) Len() int { return len(m.data) }

// Extend appends n zero bytes. Growth past the limit is refused with ErrLimit.
func (m *Memory) Extend(n int) error {
	if m.closed {
		return ErrClosed
	}
	if n <= 0 {
		return ErrBadExtend
	}
	if exceeds(len(m.data), n, m.limit) {
		return fmt.Errorf("extend %d bytes at %d (limit %d): %w", n, len(m.data), m.limit, ErrLimit)
	}
	m.data = append(m.data, make([]byte, n)...)
	return nil
}

// Close drops the arena.
func (m *Memory) Close() error {
	m.data = nil
	m.closed = true
	return nil
}

// exceeds reports whether growing cur by n would pass limit (0 = unlimited)
// or overflow int.
func exceeds(cur, n, limit int) bool {
	next := cur + n
	if next < cur {
		return true
	}
	return limit > 0 && next > limit
}

// Compile-time interface check
var _ Region = (*Memory)(nil)
