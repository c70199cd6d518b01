package alloc

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/internal/format"
	"github.com/joshuapare/heapkit/internal/logger"
)

// Allocator manages the blocks of one heap.Region. List ends, counters and
// the shutdown hook are per allocator, so independent heaps do not interfere.
//
// An Allocator is not safe for concurrent use.
type Allocator struct {
	r   heap.Region
	cfg Config
	loc locator
	log *slog.Logger

	head block
	tail block

	stats Stats

	// Shutdown hook state: registered on the first Allocate, fired once.
	hooked   bool
	reported bool
}

// New creates an allocator over r.
//
// Parameters:
//   - r: the region to manage; if it already holds blocks (a reopened File),
//     the block list is rebuilt from the headers and verified
//   - config: allocator settings (use nil for DefaultConfig)
func New(r heap.Region, config *Config) (*Allocator, error) {
	if config == nil {
		config = &DefaultConfig
	}
	cfg := *config
	if cfg.Report == nil {
		cfg.Report = os.Stdout
	}

	loc, err := newLocator(cfg.Fit)
	if err != nil {
		return nil, fmt.Errorf("fit %v: %w", cfg.Fit, err)
	}

	a := &Allocator{
		r:    r,
		cfg:  cfg,
		loc:  loc,
		log:  cfg.Logger,
		head: nilBlock,
		tail: nilBlock,
	}
	if a.log == nil {
		a.log = logger.L
	}

	if r.Len() > 0 {
		if err := a.load(); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Fit returns the active fit policy.
func (a *Allocator) Fit() Fit { return a.cfg.Fit }

// Allocate returns a pointer to at least n usable bytes.
// A zero-byte request returns ErrZeroSize; a refused growth returns
// ErrOutOfMemory. In both cases the pointer is Nil.
func (a *Allocator) Allocate(n int) (Ptr, error) {
	a.registerHook()

	if n > 0 {
		a.stats.Requested += int64(n)
	}
	if n == 0 {
		return Nil, ErrZeroSize
	}
	need := format.Align4(n)
	if n < 0 || need < n {
		return Nil, fmt.Errorf("allocate %d bytes: %w", n, ErrInvalidSize)
	}

	b := a.loc.locate(a, need)
	if b != nilBlock {
		a.stats.Reuses++
		a.stats.Blocks--
		if a.size(b)-need > format.SplitThreshold {
			a.split(b, need)
		}
		a.setFree(b, false)
	} else {
		var err error
		if b, err = a.grow(need); err != nil {
			return Nil, err
		}
	}

	a.loc.handed(b)
	a.stats.Mallocs++
	return b.payload(), nil
}

// split carves b into an allocated prefix of need bytes and a free remainder
// inserted right after it.
func (a *Allocator) split(b block, need int) {
	rem := block(int(b) + format.HeaderSize + need)
	remSize := a.size(b) - need - format.HeaderSize

	a.writeHeader(rem, remSize, b, nilBlock, true)
	a.linkAfter(rem, a.next(b))
	a.setNext(b, rem)
	a.setSize(b, need)

	a.stats.Splits++
	a.stats.Blocks++
	a.log.Debug("split", "block", int(b), "need", need, "remainder", remSize)
}

// grow extends the region by exactly need plus one header and appends an
// in-use block at the tail.
func (a *Allocator) grow(need int) (block, error) {
	span := format.HeaderSize + need
	b := block(a.r.Len())
	if err := a.r.Extend(span); err != nil {
		a.log.Debug("grow refused", "bytes", span, "heap", a.r.Len(), "err", err)
		return nilBlock, fmt.Errorf("grow %d bytes: %w: %w", span, ErrOutOfMemory, err)
	}

	a.writeHeader(b, need, a.tail, nilBlock, false)
	if a.tail != nilBlock {
		a.setNext(a.tail, b)
	} else {
		a.head = b
	}
	a.tail = b

	a.stats.Grows++
	a.noteHeap()
	a.log.Debug("grow", "block", int(b), "bytes", span, "heap", a.r.Len())
	return b, nil
}

// Bytes returns the usable payload of p. The slice is invalidated by any
// later operation that grows the region.
func (a *Allocator) Bytes(p Ptr) []byte {
	if p == Nil {
		return nil
	}
	b := a.blockOf(p)
	start := int(p)
	end := start + a.size(b)
	return a.r.Bytes()[start:end:end]
}

// Size returns the usable payload size of p (its aligned size, possibly more
// when a split was skipped).
func (a *Allocator) Size(p Ptr) int {
	if p == Nil {
		return 0
	}
	return a.size(a.blockOf(p))
}
