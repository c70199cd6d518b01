// Package alloc implements a malloc-style allocator over a single growable
// heap.Region.
//
// # Overview
//
// Every block is a 32-byte header followed by its payload. Headers live inside
// the arena and link the blocks into an address-ordered doubly linked list that
// covers the arena with no gaps. A block is identified by its header offset,
// which never changes while the block exists, so links are plain integers
// rather than pointers.
//
// # Operations
//
//   - Allocate(n): align n to 4 bytes, find a free block with the configured
//     fit policy, split it when the slack exceeds two headers, or grow the
//     region by exactly n+32 bytes.
//   - ZeroAllocate(count, size): Allocate(count*size) and zero the first size
//     bytes (ZeroElement, the default) or all of them (ZeroFull).
//   - Resize(p, n): keep p when n fits, extend in place at the tail or into a
//     free successor, otherwise move the payload to a new block.
//   - Release(p): mark free and merge with free neighbours in both directions.
//
// # Fit Policies
//
//	FirstFit: first free block in address order that fits
//	NextFit:  like FirstFit, resuming after the last block handed out
//	BestFit:  smallest fitting block, first one on ties
//	WorstFit: largest fitting block, first one on ties
//
// # Usage Example
//
//	r := heap.NewMemory(0)
//	a, err := alloc.New(r, &alloc.Config{Fit: alloc.BestFit})
//	if err != nil {
//	    return err
//	}
//	defer a.Shutdown()
//
//	p, err := a.Allocate(128)
//	if err != nil {
//	    return err
//	}
//	copy(a.Bytes(p), "hello")
//	a.Release(p)
//
// # Contract Violations
//
// Releasing a block twice, resizing a released block, and passing a pointer
// outside the arena panic with an error wrapping ErrDoubleRelease,
// ErrNotAllocated or ErrBadPointer. Other foreign pointers are not detected.
//
// # Thread Safety
//
// Allocator instances are not thread-safe and not reentrant. Concurrent use
// from multiple goroutines is undefined; callers must not share an Allocator.
package alloc
