package alloc

import "github.com/joshuapare/heapkit/internal/format"

// Ptr is the arena offset of a block's payload.
type Ptr int

// Nil is the null pointer. No payload starts at offset 0 because a header
// always precedes it.
const Nil Ptr = 0

// block is the arena offset of a block header.
type block int

const nilBlock block = format.NoBlock

func (b block) payload() Ptr {
	return Ptr(int(b) + format.HeaderSize)
}

// BlockInfo describes a single block in address order.
type BlockInfo struct {
	Offset int  // Header offset
	Ptr    Ptr  // Payload pointer
	Size   int  // Payload size
	Free   bool // True if on the free list
}
