package heap

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/mmfile"
)

// Snapshot is a fixed-size Region over a private mapping of a heap file.
// Header writes made by an allocator stay in the mapping; the file is never
// modified.
type Snapshot struct {
	data    []byte
	release func() error
}

// OpenSnapshot maps the heap file at path for inspection.
func OpenSnapshot(path string) (*Snapshot, error) {
	data, release, err := mmfile.Map(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	return &Snapshot{data: data, release: release}, nil
}

func (s *Snapshot) Bytes() []byte { return s.data }

func (s *Snapshot) Len() int { return len(s.data) }

// Extend always fails; a snapshot has a fixed boundary.
func (s *Snapshot) Extend(n int) error {
	if s.release == nil {
		return ErrClosed
	}
	return fmt.Errorf("extend by %d: %w", n, ErrReadOnly)
}

// Close unmaps the snapshot.
func (s *Snapshot) Close() error {
	if s.release == nil {
		return nil
	}
	err := s.release()
	s.data, s.release = nil, nil
	return err
}

// Compile-time interface check
var _ Region = (*Snapshot)(nil)
