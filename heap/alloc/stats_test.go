package alloc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap"
)

func TestStats_Counters(t *testing.T) {
	a, _ := newTestAllocator(t, FirstFit, 0)

	p := mustAlloc(t, a, 100)
	mustAlloc(t, a, 200)
	a.Release(p)
	mustAlloc(t, a, 50)

	want := Stats{
		Mallocs:   3,
		Frees:     1,
		Reuses:    1,
		Grows:     2,
		Splits:    0,
		Coalesces: 0,
		Blocks:    0,
		Requested: 350,
		MaxHeap:   int64(2*hdr + 100 + 200),
	}
	assert.Equal(t, want, a.Stats())
}

func TestStats_RequestedCountsRejectedAndUnaligned(t *testing.T) {
	a, _ := newTestAllocator(t, FirstFit, 64)

	_, _ = a.Allocate(0)
	mustAlloc(t, a, 3)
	_, err := a.Allocate(500)
	require.ErrorIs(t, err, ErrOutOfMemory)

	s := a.Stats()
	assert.Equal(t, int64(503), s.Requested, "requested bytes are counted before alignment and before failure")
	assert.Equal(t, 1, s.Mallocs)
	assert.Equal(t, 1, s.Grows)
}

func TestStats_ReportFormat(t *testing.T) {
	s := Stats{
		Mallocs:   3,
		Frees:     2,
		Reuses:    1,
		Grows:     4,
		Splits:    5,
		Coalesces: 6,
		Blocks:    7,
		Requested: 1234,
		MaxHeap:   5678,
	}

	var buf bytes.Buffer
	require.NoError(t, s.WriteReport(&buf))

	want := "\nheap management statistics\n" +
		"mallocs:\t3\n" +
		"frees:\t\t2\n" +
		"reuses:\t\t1\n" +
		"grows:\t\t4\n" +
		"splits:\t\t5\n" +
		"coalesces:\t6\n" +
		"blocks:\t\t7\n" +
		"requested:\t1234\n" +
		"max heap:\t5678\n"
	assert.Equal(t, want, buf.String())
}

func TestShutdown_ReportsOnce(t *testing.T) {
	var out bytes.Buffer
	a, err := New(heap.NewMemory(0), &Config{Report: &out})
	require.NoError(t, err)

	// No allocation yet: the hook is not registered.
	require.NoError(t, a.Shutdown())
	assert.Empty(t, out.String())

	p := mustAlloc(t, a, 8)
	a.Release(p)
	mustAlloc(t, a, 8)

	require.NoError(t, a.Shutdown())
	first := out.String()
	assert.Contains(t, first, "heap management statistics")
	assert.Contains(t, first, "mallocs:\t2\n")
	assert.Contains(t, first, "frees:\t\t1\n")

	mustAlloc(t, a, 8)
	require.NoError(t, a.Shutdown())
	assert.Equal(t, first, out.String(), "report is emitted exactly once")
}

func TestStats_IndependentAllocators(t *testing.T) {
	a1, _ := newTestAllocator(t, FirstFit, 0)
	a2, _ := newTestAllocator(t, BestFit, 0)

	mustAlloc(t, a1, 16)
	mustAlloc(t, a1, 16)
	mustAlloc(t, a2, 16)

	assert.Equal(t, 2, a1.Stats().Mallocs)
	assert.Equal(t, 1, a2.Stats().Mallocs)
}

func TestStats_TailResizeCountsGrowNotMalloc(t *testing.T) {
	a, r := newTestAllocator(t, FirstFit, 0)
	p := mustAlloc(t, a, 100)

	q, err := a.Resize(p, 300)
	require.NoError(t, err)
	require.Equal(t, p, q)

	s := a.Stats()
	assert.Equal(t, 1, s.Mallocs)
	assert.Equal(t, 2, s.Grows)
	assert.Equal(t, int64(hdr+300), s.MaxHeap, "max heap includes the header")
	assert.Equal(t, int64(r.Len()), s.MaxHeap)
}
