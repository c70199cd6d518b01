package alloc

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// walk decodes every block in address order, checking that the headers
// partition the arena and that prev/next links agree with the layout.
func (a *Allocator) walk(fn func(h format.Header) error) error {
	data := a.r.Bytes()
	end := len(data)

	prev := format.NoBlock
	prevFree := false
	for off := 0; off < end; {
		h, err := format.DecodeHeader(data, off)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		if h.Prev != prev {
			return fmt.Errorf("%w: block %d prev=%d, want %d", ErrCorrupt, off, h.Prev, prev)
		}

		wantNext := h.End()
		if wantNext == end {
			wantNext = format.NoBlock
		}
		if h.Next != wantNext {
			return fmt.Errorf("%w: block %d next=%d, want %d", ErrCorrupt, off, h.Next, wantNext)
		}
		if h.Free && prevFree {
			return fmt.Errorf("%w: adjacent free blocks at %d and %d", ErrCorrupt, prev, off)
		}

		if err := fn(h); err != nil {
			return err
		}

		prev = off
		prevFree = h.Free
		off = h.End()
	}
	return nil
}

// load rebuilds list state from a region that already holds blocks.
func (a *Allocator) load() error {
	a.head = 0
	free := 0
	err := a.walk(func(h format.Header) error {
		a.tail = block(h.Offset)
		if h.Free {
			free++
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("load arena: %w", err)
	}

	a.stats.Blocks = free
	a.noteHeap()
	a.log.Debug("loaded arena", "bytes", a.r.Len(), "free", free, "tail", int(a.tail))
	return nil
}

// Verify checks every structural invariant of the block list: the arena is
// fully partitioned, links are consistent, sizes are aligned, head and tail
// are correct, no two neighbours are both free, and the free-block counter
// matches the list.
func (a *Allocator) Verify() error {
	if a.r.Len() == 0 {
		if a.head != nilBlock || a.tail != nilBlock {
			return fmt.Errorf("%w: empty arena with head=%d tail=%d", ErrCorrupt, a.head, a.tail)
		}
		return nil
	}
	if a.head != 0 {
		return fmt.Errorf("%w: head=%d, want 0", ErrCorrupt, a.head)
	}

	last := nilBlock
	free := 0
	err := a.walk(func(h format.Header) error {
		last = block(h.Offset)
		if h.Free {
			free++
		}
		return nil
	})
	if err != nil {
		return err
	}

	if last != a.tail {
		return fmt.Errorf("%w: tail=%d, want %d", ErrCorrupt, a.tail, last)
	}
	if free != a.stats.Blocks {
		return fmt.Errorf("%w: %d free blocks, counter says %d", ErrCorrupt, free, a.stats.Blocks)
	}
	return nil
}

// Blocks lists every block in address order.
func (a *Allocator) Blocks() ([]BlockInfo, error) {
	var out []BlockInfo
	err := a.walk(func(h format.Header) error {
		out = append(out, BlockInfo{
			Offset: h.Offset,
			Ptr:    Ptr(h.Payload()),
			Size:   h.Size,
			Free:   h.Free,
		})
		return nil
	})
	return out, err
}
