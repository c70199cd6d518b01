package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBestFit_PicksSmallest: free blocks {64, 16, 256} in address order,
// a 10-byte request must land in the 16-byte block.
func TestBestFit_PicksSmallest(t *testing.T) {
	a, _ := newTestAllocator(t, BestFit, 0)
	free := layoutFree(t, a, 64, 16, 256)

	p := mustAlloc(t, a, 10)
	assert.Equal(t, free[1], p, "should allocate from the 16-byte block")
	assert.Equal(t, []int{64, 256}, freeSizes(t, a))
	assertInvariants(t, a)
}

func TestBestFit_TieKeepsFirst(t *testing.T) {
	a, _ := newTestAllocator(t, BestFit, 0)
	free := layoutFree(t, a, 128, 32, 32, 64)

	p := mustAlloc(t, a, 20)
	assert.Equal(t, free[1], p, "first of two equal best candidates wins")
}

func TestWorstFit_PicksLargest(t *testing.T) {
	a, _ := newTestAllocator(t, WorstFit, 0)
	free := layoutFree(t, a, 64, 16, 256)

	p := mustAlloc(t, a, 10)
	assert.Equal(t, free[2], p, "should allocate from the 256-byte block")
	assert.Equal(t, 1, a.Stats().Splits, "256-byte block is split")
	assertInvariants(t, a)
}

func TestWorstFit_TieKeepsFirst(t *testing.T) {
	a, _ := newTestAllocator(t, WorstFit, 0)
	free := layoutFree(t, a, 64, 256, 256)

	p := mustAlloc(t, a, 200)
	assert.Equal(t, free[1], p)
}

func TestFirstFit_PicksFirstInAddressOrder(t *testing.T) {
	a, _ := newTestAllocator(t, FirstFit, 0)
	free := layoutFree(t, a, 16, 64, 256)

	p := mustAlloc(t, a, 40)
	assert.Equal(t, free[1], p, "16-byte block is too small, 64 is the first fit")
	assertInvariants(t, a)
}

func TestLocators_NoFitGrows(t *testing.T) {
	for _, fit := range Fits {
		t.Run(fit.String(), func(t *testing.T) {
			a, r := newTestAllocator(t, fit, 0)
			layoutFree(t, a, 16, 32)
			before := r.Len()

			p := mustAlloc(t, a, 100)
			assert.Equal(t, Ptr(before+hdr), p, "new block is appended at the tail")
			assert.Equal(t, []int{16, 32}, freeSizes(t, a))
			assertInvariants(t, a)
		})
	}
}

func TestNextFit_ResumesAfterLastHanded(t *testing.T) {
	a, _ := newTestAllocator(t, NextFit, 0)
	free := layoutFree(t, a, 64, 64, 64)

	p1 := mustAlloc(t, a, 64)
	p2 := mustAlloc(t, a, 64)
	require.Equal(t, free[0], p1)
	require.Equal(t, free[1], p2)

	// First-fit would now return free[0]; next-fit continues past p2.
	a.Release(p1)
	p3 := mustAlloc(t, a, 64)
	assert.Equal(t, free[2], p3)
	assertInvariants(t, a)
}

func TestNextFit_WrapsToHead(t *testing.T) {
	a, r := newTestAllocator(t, NextFit, 0)
	free := layoutFree(t, a, 64, 64)

	mustAlloc(t, a, 64)
	last := mustAlloc(t, a, 64)
	require.Equal(t, free[1], last)

	a.Release(free[0])
	before := r.Len()
	p := mustAlloc(t, a, 64)
	assert.Equal(t, free[0], p, "scan wraps to the head before growing")
	assert.Equal(t, before, r.Len())
	assertInvariants(t, a)
}

func TestNextFit_CursorAtGrownTail(t *testing.T) {
	a, _ := newTestAllocator(t, NextFit, 0)
	free := layoutFree(t, a, 64)

	mustAlloc(t, a, 64)      // takes free[0]
	mustAlloc(t, a, 64)      // grows; cursor is now the tail
	a.Release(free[0])       // free[0] is the only free block
	p := mustAlloc(t, a, 64) // tail has no successor: start over at the head
	assert.Equal(t, free[0], p)
}

func TestNextFit_CursorSurvivesCoalesce(t *testing.T) {
	a, _ := newTestAllocator(t, NextFit, 0)

	x := mustAlloc(t, a, 64)
	b := mustAlloc(t, a, 64)
	c := mustAlloc(t, a, 64)
	mustAlloc(t, a, 4)
	a.Release(c)

	// Hand out c again so the cursor points at it, then free its neighbours
	// and c itself so that c is absorbed backwards into x.
	c2 := mustAlloc(t, a, 64)
	require.Equal(t, c, c2)
	a.Release(x)
	a.Release(b)
	assertInvariants(t, a)

	a.Release(c2)
	assertInvariants(t, a)
	require.Equal(t, []int{3*64 + 2*hdr}, freeSizes(t, a))

	blocks, err := a.Blocks()
	require.NoError(t, err)
	count := len(blocks)

	p := mustAlloc(t, a, 32)
	assert.Equal(t, x, p, "merged block is the only candidate after wrapping")
	assert.Equal(t, 4, a.Stats().Grows, "no growth for the final request")

	blocks, err = a.Blocks()
	require.NoError(t, err)
	assert.Len(t, blocks, count+1, "merged block was split")
	assertInvariants(t, a)
}

func TestParseFit(t *testing.T) {
	for _, f := range Fits {
		got, err := ParseFit(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	got, err := ParseFit(" Best-Fit ")
	require.NoError(t, err)
	assert.Equal(t, BestFit, got)

	_, err = ParseFit("buddy")
	require.ErrorIs(t, err, ErrUnknownFit)
	assert.Equal(t, "Fit(9)", Fit(9).String())
}
