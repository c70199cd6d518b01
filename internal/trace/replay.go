package trace

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/internal/logger"
)

// Result summarises a replay.
type Result struct {
	Ops    int // Operations executed
	Failed int // Allocations that returned no pointer
	Live   int // Ids still live at the end
	Stats  alloc.Stats
}

// Replay runs ops against a. Allocation failures (zero size, out of memory)
// are counted, not returned; trace errors such as freeing an unknown id stop
// the replay.
func Replay(a *alloc.Allocator, ops []Op) (Result, error) {
	var res Result
	live := make(map[string]alloc.Ptr)

	for _, op := range ops {
		res.Ops++
		var (
			p   alloc.Ptr
			err error
		)

		switch op.Kind {
		case Malloc, Calloc:
			if _, ok := live[op.ID]; ok {
				return res, opError(op, ErrDuplicateID)
			}
			if op.Kind == Malloc {
				p, err = a.Allocate(op.Size)
			} else {
				p, err = a.ZeroAllocate(op.Count, op.Size)
			}

		case Realloc:
			old := live[op.ID]
			p, err = a.Resize(old, op.Size)

		case Free:
			old, ok := live[op.ID]
			if !ok {
				return res, opError(op, ErrUnknownID)
			}
			a.Release(old)
			delete(live, op.ID)
			continue
		}

		if err != nil {
			if !isAllocFailure(err) {
				return res, opError(op, err)
			}
			res.Failed++
			logger.Debug("trace op failed", "op", op.String(), "err", err)
			continue
		}
		live[op.ID] = p
	}

	res.Live = len(live)
	res.Stats = a.Stats()
	return res, nil
}

func isAllocFailure(err error) bool {
	return errors.Is(err, alloc.ErrZeroSize) ||
		errors.Is(err, alloc.ErrOutOfMemory) ||
		errors.Is(err, alloc.ErrOverflow)
}

func opError(op Op, err error) error {
	if op.Line > 0 {
		return fmt.Errorf("line %d: %s: %w", op.Line, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Generate produces a random but well-formed trace of n operations. The same
// seed always yields the same trace.
func Generate(seed uint64, n int) []Op {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	ops := make([]Op, 0, n)
	var live []string
	next := 0

	for len(ops) < n {
		switch r := rng.IntN(10); {
		case r < 4 || len(live) == 0:
			id := "g" + strconv.Itoa(next)
			next++
			ops = append(ops, Op{Kind: Malloc, ID: id, Size: 1 + rng.IntN(2048)})
			live = append(live, id)
		case r < 5:
			id := "g" + strconv.Itoa(next)
			next++
			ops = append(ops, Op{Kind: Calloc, ID: id, Count: 1 + rng.IntN(32), Size: 1 + rng.IntN(64)})
			live = append(live, id)
		case r < 7:
			id := live[rng.IntN(len(live))]
			ops = append(ops, Op{Kind: Realloc, ID: id, Size: 1 + rng.IntN(4096)})
		default:
			i := rng.IntN(len(live))
			ops = append(ops, Op{Kind: Free, ID: live[i]})
			live[i] = live[len(live)-1]
			live = live[:len(live)-1]
		}
	}
	return ops
}
