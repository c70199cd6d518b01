package format

import "fmt"

// Header is the decoded form of a block header.
type Header struct {
	Offset int  // Header offset within the arena
	Size   int  // Payload size (excludes header)
	Prev   int  // Previous header offset or NoBlock
	Next   int  // Next header offset or NoBlock
	Free   bool // True when the block is on the free list
}

// End returns the offset one past the block's payload.
func (h Header) End() int {
	return h.Offset + HeaderSize + h.Size
}

// Payload returns the offset of the first payload byte.
func (h Header) Payload() int {
	return h.Offset + HeaderSize
}

// DecodeHeader reads the header at off and performs the checks that do not
// need neighbouring blocks: bounds, alignment and link ranges.
func DecodeHeader(b []byte, off int) (Header, error) {
	if off < 0 || off+HeaderSize > len(b) {
		return Header{}, fmt.Errorf("header at %d: %w", off, ErrTruncated)
	}
	size := ReadU64(b, off+SizeOffset)
	if size > uint64(len(b)-off-HeaderSize) {
		return Header{}, fmt.Errorf("header at %d: size %d: %w", off, size, ErrTruncated)
	}
	h := Header{
		Offset: off,
		Size:   int(size),
		Prev:   int(ReadI64(b, off+PrevOffset)),
		Next:   int(ReadI64(b, off+NextOffset)),
		Free:   b[off+FreeOffset] != 0,
	}
	if !IsAligned(h.Size) {
		return Header{}, fmt.Errorf("header at %d: size %d: %w", off, h.Size, ErrMisaligned)
	}
	if h.Prev < NoBlock || h.Prev >= len(b) {
		return Header{}, fmt.Errorf("header at %d: prev %d: %w", off, h.Prev, ErrBadLink)
	}
	if h.Next < NoBlock || h.Next >= len(b) {
		return Header{}, fmt.Errorf("header at %d: next %d: %w", off, h.Next, ErrBadLink)
	}
	return h, nil
}

// EncodeHeader writes h at h.Offset, clearing the padding bytes.
func EncodeHeader(b []byte, h Header) {
	off := h.Offset
	PutU64(b, off+SizeOffset, uint64(h.Size))
	PutI64(b, off+PrevOffset, int64(h.Prev))
	PutI64(b, off+NextOffset, int64(h.Next))
	clear(b[off+FreeOffset : off+HeaderSize])
	if h.Free {
		b[off+FreeOffset] = 1
	}
}
