package alloc

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// Header field accessors. They read the arena afresh on every call because
// growth may remap it.

func (a *Allocator) size(b block) int {
	return int(format.ReadU64(a.r.Bytes(), int(b)+format.SizeOffset))
}

func (a *Allocator) setSize(b block, n int) {
	format.PutU64(a.r.Bytes(), int(b)+format.SizeOffset, uint64(n))
}

func (a *Allocator) prev(b block) block {
	return block(format.ReadI64(a.r.Bytes(), int(b)+format.PrevOffset))
}

func (a *Allocator) setPrev(b, p block) {
	format.PutI64(a.r.Bytes(), int(b)+format.PrevOffset, int64(p))
}

func (a *Allocator) next(b block) block {
	return block(format.ReadI64(a.r.Bytes(), int(b)+format.NextOffset))
}

func (a *Allocator) setNext(b, n block) {
	format.PutI64(a.r.Bytes(), int(b)+format.NextOffset, int64(n))
}

func (a *Allocator) isFree(b block) bool {
	return a.r.Bytes()[int(b)+format.FreeOffset] != 0
}

func (a *Allocator) setFree(b block, free bool) {
	var v byte
	if free {
		v = 1
	}
	a.r.Bytes()[int(b)+format.FreeOffset] = v
}

// fits reports whether b is free and can hold need bytes.
func (a *Allocator) fits(b block, need int) bool {
	return a.isFree(b) && a.size(b) >= need
}

func (a *Allocator) writeHeader(b block, size int, prev, next block, free bool) {
	format.EncodeHeader(a.r.Bytes(), format.Header{
		Offset: int(b),
		Size:   size,
		Prev:   int(prev),
		Next:   int(next),
		Free:   free,
	})
}

// linkAfter points b's successor back at b, or makes b the tail.
func (a *Allocator) linkAfter(b, next block) {
	a.setNext(b, next)
	if next != nilBlock {
		a.setPrev(next, b)
	} else {
		a.tail = b
	}
}

// blockOf recovers the header of payload p. Pointers that cannot lie inside
// the arena panic; other foreign pointers are not detected.
func (a *Allocator) blockOf(p Ptr) block {
	off := int(p) - format.HeaderSize
	if off < 0 || !format.IsAligned(off) || int(p) > a.r.Len() {
		panic(fmt.Errorf("pointer %#x: %w", int(p), ErrBadPointer))
	}
	b := block(off)
	if a.size(b) > a.r.Len()-int(p) {
		panic(fmt.Errorf("pointer %#x: %w", int(p), ErrBadPointer))
	}
	return b
}
