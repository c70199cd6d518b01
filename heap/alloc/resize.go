package alloc

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/joshuapare/heapkit/internal/format"
)

// ZeroAllocate allocates count*elemSize bytes and zeroes the first elemSize
// of them, or all of them under ZeroFull. A product that overflows int
// returns ErrOverflow.
func (a *Allocator) ZeroAllocate(count, elemSize int) (Ptr, error) {
	if count < 0 || elemSize < 0 {
		return Nil, fmt.Errorf("zero-allocate %d x %d: %w", count, elemSize, ErrInvalidSize)
	}
	hi, lo := bits.Mul64(uint64(count), uint64(elemSize))
	if hi != 0 || lo > math.MaxInt {
		return Nil, fmt.Errorf("zero-allocate %d x %d: %w", count, elemSize, ErrOverflow)
	}
	total := int(lo)

	p, err := a.Allocate(total)
	if err != nil {
		return Nil, err
	}

	fill := elemSize
	if a.cfg.ZeroFill == ZeroFull {
		fill = total
	}
	clear(a.r.Bytes()[int(p) : int(p)+fill])
	return p, nil
}

// Resize makes p hold at least n bytes.
//
// A request that already fits returns p unchanged; blocks never shrink. The
// tail block grows in place, and a block followed by a large enough free
// block takes the bytes from it. Otherwise the payload moves to a new block
// and p is released.
//
// The region is extended before any header is touched, so a refused growth
// leaves p valid and unchanged.
func (a *Allocator) Resize(p Ptr, n int) (Ptr, error) {
	if p == Nil {
		return a.Allocate(n)
	}

	b := a.blockOf(p)
	if a.isFree(b) {
		panic(fmt.Errorf("resize %#x: %w", int(p), ErrNotAllocated))
	}
	need := format.Align4(n)
	if n < 0 || need < n {
		return Nil, fmt.Errorf("resize to %d bytes: %w", n, ErrInvalidSize)
	}

	cur := a.size(b)
	if need <= cur {
		return p, nil
	}
	deficit := need - cur

	next := a.next(b)
	switch {
	case next == nilBlock:
		if err := a.r.Extend(deficit); err != nil {
			a.log.Debug("resize grow refused", "block", int(b), "deficit", deficit, "err", err)
			return Nil, fmt.Errorf("resize grow %d bytes: %w: %w", deficit, ErrOutOfMemory, err)
		}
		a.setSize(b, need)
		a.stats.Grows++
		a.noteHeap()
		a.log.Debug("resize in place", "block", int(b), "size", need)
		return p, nil

	case a.isFree(next) && format.HeaderSize+a.size(next) >= deficit:
		a.takeFromNext(b, next, deficit)
		return p, nil
	}

	return a.relocate(b, n)
}

// takeFromNext moves deficit bytes from the free successor next into b.
// When the leftover could not hold a header, next is absorbed whole.
func (a *Allocator) takeFromNext(b, next block, deficit int) {
	span := format.HeaderSize + a.size(next)
	after := a.next(next)

	if span-deficit > format.HeaderSize {
		moved := block(int(next) + deficit)
		a.writeHeader(moved, span-deficit-format.HeaderSize, b, nilBlock, true)
		a.linkAfter(moved, after)
		a.setNext(b, moved)
		a.setSize(b, a.size(b)+deficit)
		a.loc.retarget(next, moved)
		a.log.Debug("resize into successor", "block", int(b), "successor", int(moved))
		return
	}

	a.setSize(b, a.size(b)+span)
	a.linkAfter(b, after)
	a.loc.retarget(next, b)
	a.stats.Blocks--
	a.log.Debug("resize absorbed successor", "block", int(b), "size", a.size(b))
}

// relocate copies b's payload into a new block of n bytes and releases b.
func (a *Allocator) relocate(b block, n int) (Ptr, error) {
	old := b.payload()
	cur := a.size(b)

	q, err := a.Allocate(n)
	if err != nil {
		return Nil, err
	}

	data := a.r.Bytes()
	copy(data[int(q):int(q)+cur], data[int(old):int(old)+cur])
	a.Release(old)

	a.log.Debug("relocate", "from", int(old), "to", int(q), "bytes", cur)
	return q, nil
}
