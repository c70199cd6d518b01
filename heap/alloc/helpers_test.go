package alloc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/internal/format"
)

// hdr is the header size as an int, for offset arithmetic in tests.
const hdr = format.HeaderSize

// newTestAllocator builds an allocator over an in-memory region.
// limit 0 means the region may grow without bound.
func newTestAllocator(t testing.TB, fit Fit, limit int) (*Allocator, *heap.Memory) {
	t.Helper()

	r := heap.NewMemory(limit)
	a, err := New(r, &Config{Fit: fit, Report: &bytes.Buffer{}})
	require.NoError(t, err)
	return a, r
}

// assertInvariants fails the test if the block list is inconsistent.
func assertInvariants(t testing.TB, a *Allocator) {
	t.Helper()
	require.NoError(t, a.Verify())
}

// mustAlloc allocates n bytes and fails the test on error.
func mustAlloc(t testing.TB, a *Allocator, n int) Ptr {
	t.Helper()
	p, err := a.Allocate(n)
	require.NoError(t, err)
	require.NotEqual(t, Nil, p)
	return p
}

// layoutFree builds [free s0][used][free s1][used]... in address order and
// returns the payload pointers of the free blocks. The used separators keep
// the free blocks from coalescing.
func layoutFree(t testing.TB, a *Allocator, sizes ...int) []Ptr {
	t.Helper()

	free := make([]Ptr, 0, len(sizes))
	for _, sz := range sizes {
		free = append(free, mustAlloc(t, a, sz))
		mustAlloc(t, a, 4)
	}
	for _, p := range free {
		a.Release(p)
	}
	assertInvariants(t, a)
	return free
}

// fill writes a recognisable pattern into p's payload.
func fill(a *Allocator, p Ptr, seed byte) {
	buf := a.Bytes(p)
	for i := range buf {
		buf[i] = seed + byte(i)
	}
}

// requirePattern checks the first n bytes written by fill.
func requirePattern(t testing.TB, a *Allocator, p Ptr, seed byte, n int) {
	t.Helper()
	buf := a.Bytes(p)
	require.GreaterOrEqual(t, len(buf), n)
	for i := range n {
		require.Equal(t, seed+byte(i), buf[i], "payload byte %d", i)
	}
}

// freeSizes returns the sizes of free blocks in address order.
func freeSizes(t testing.TB, a *Allocator) []int {
	t.Helper()
	blocks, err := a.Blocks()
	require.NoError(t, err)

	var out []int
	for _, b := range blocks {
		if b.Free {
			out = append(out, b.Size)
		}
	}
	return out
}
