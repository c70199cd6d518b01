// Package format describes the on-arena layout of heap blocks. The allocator,
// the verifier and file-backed regions all read headers through it.
package format

// Block header layout (little-endian):
//
//	Offset  Size  Description
//	0x00    8     Payload size in bytes (excludes the header, always aligned).
//	0x08    8     Header offset of the previous block, or NoBlock.
//	0x10    8     Header offset of the next block, or NoBlock.
//	0x18    1     Free flag (1 => free, 0 => in use).
//	0x19    7     Padding.
const (
	HeaderSize = 32

	SizeOffset = 0x00
	PrevOffset = 0x08
	NextOffset = 0x10
	FreeOffset = 0x18
)

// Alignment is the unit every payload size is rounded up to.
const (
	Alignment     = 4
	AlignmentMask = Alignment - 1
)

// SplitThreshold is the slack a free block must exceed before it is split.
// Smaller leftovers stay inside the allocated block as internal fragmentation.
const SplitThreshold = 2 * HeaderSize

// NoBlock marks an absent prev/next link.
const NoBlock = -1
