package alloc

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// Release returns p's block to the free list and merges it with free
// neighbours. Releasing Nil is a no-op; releasing a free block panics.
func (a *Allocator) Release(p Ptr) {
	if p == Nil {
		return
	}

	b := a.blockOf(p)
	if a.isFree(b) {
		panic(fmt.Errorf("release %#x: %w", int(p), ErrDoubleRelease))
	}

	a.setFree(b, true)
	a.stats.Frees++
	a.stats.Blocks++

	for n := a.next(b); n != nilBlock && a.isFree(n); n = a.next(b) {
		a.absorb(b, n)
	}
	for pr := a.prev(b); pr != nilBlock && a.isFree(pr); pr = a.prev(b) {
		a.absorb(pr, b)
		b = pr
	}
}

// absorb merges the free block dead into its predecessor into.
func (a *Allocator) absorb(into, dead block) {
	a.setSize(into, a.size(into)+format.HeaderSize+a.size(dead))
	a.linkAfter(into, a.next(dead))
	a.loc.retarget(dead, into)

	a.stats.Blocks--
	a.stats.Coalesces++
	a.log.Debug("coalesce", "into", int(into), "absorbed", int(dead), "size", a.size(into))
}
