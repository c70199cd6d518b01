package alloc

// locator finds a free block for an aligned request. One implementation is
// chosen when the allocator is built.
type locator interface {
	// locate returns a free block with size >= need, or nilBlock.
	locate(a *Allocator, need int) block

	// handed records that b was just returned to a caller.
	handed(b block)

	// retarget records that old no longer exists and now took its place,
	// either by absorbing it or by being its moved header.
	retarget(old, now block)
}

func newLocator(f Fit) (locator, error) {
	switch f {
	case FirstFit:
		return firstFit{}, nil
	case NextFit:
		return &nextFit{last: nilBlock}, nil
	case BestFit:
		return bestFit{}, nil
	case WorstFit:
		return worstFit{}, nil
	}
	return nil, ErrUnknownFit
}

// stateless is embedded by policies that keep no cursor.
type stateless struct{}

func (stateless) handed(block)          {}
func (stateless) retarget(block, block) {}

type firstFit struct{ stateless }

func (firstFit) locate(a *Allocator, need int) block {
	for b := a.head; b != nilBlock; b = a.next(b) {
		if a.fits(b, need) {
			return b
		}
	}
	return nilBlock
}

// bestFit scans the whole list. Strict comparison keeps the first of equal
// candidates.
type bestFit struct{ stateless }

func (bestFit) locate(a *Allocator, need int) block {
	best := nilBlock
	bestSize := 0
	for b := a.head; b != nilBlock; b = a.next(b) {
		if !a.fits(b, need) {
			continue
		}
		if sz := a.size(b); best == nilBlock || sz < bestSize {
			best, bestSize = b, sz
		}
	}
	return best
}

type worstFit struct{ stateless }

func (worstFit) locate(a *Allocator, need int) block {
	worst := nilBlock
	worstSize := 0
	for b := a.head; b != nilBlock; b = a.next(b) {
		if !a.fits(b, need) {
			continue
		}
		if sz := a.size(b); worst == nilBlock || sz > worstSize {
			worst, worstSize = b, sz
		}
	}
	return worst
}

// nextFit resumes after the last block handed out and wraps to the head once.
type nextFit struct {
	last block
}

func (nf *nextFit) locate(a *Allocator, need int) block {
	start := a.head
	if nf.last != nilBlock {
		if n := a.next(nf.last); n != nilBlock {
			start = n
		}
	}

	for b := start; b != nilBlock; b = a.next(b) {
		if a.fits(b, need) {
			return b
		}
	}
	for b := a.head; b != start && b != nilBlock; b = a.next(b) {
		if a.fits(b, need) {
			return b
		}
	}
	return nilBlock
}

func (nf *nextFit) handed(b block) { nf.last = b }

func (nf *nextFit) retarget(old, now block) {
	if nf.last == old {
		nf.last = now
	}
}
