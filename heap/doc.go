// Package heap provides the backing arena for the heapkit allocator.
//
// # Overview
//
// A Region is one contiguous span of bytes whose boundary only ever moves
// forward. It stands in for the process break that sbrk(2) moves: Extend
// appends zeroed bytes at the end, and nothing is ever given back.
//
// # Implementations
//
// Memory: an in-process byte slice with an optional growth limit. The limit
// plays the part of the OS refusing to extend the heap.
//
// File: a file mapped into memory (mmap on linux/darwin, a plain buffer
// elsewhere). Extend grows the file with ftruncate and remaps it, so an arena
// survives process restarts.
//
// Snapshot: a private, fixed-size mapping of a heap file. An allocator can be
// attached to it to verify and list blocks without touching the file.
//
// # Stale slices
//
// Extend may move the arena. A slice obtained from Bytes before an Extend call
// must not be used afterwards; fetch a fresh one.
//
// # Thread Safety
//
// Regions are not thread-safe. The allocator that owns a region is
// single-threaded by contract.
package heap
