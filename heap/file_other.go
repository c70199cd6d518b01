//go:build !linux && !darwin

package heap

import (
	"fmt"
	"io"
	"os"
)

// File is a Region backed by a file. On platforms without mmap support the
// arena lives in memory and is written back on Sync and Close.
type File struct {
	f     *os.File
	data  []byte
	limit int
}

// OpenFile loads the arena file at path, creating it if missing.
func OpenFile(path string, limit int) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	buf := make([]byte, st.Size())
	if _, err := io.ReadFull(f, buf); err != nil {
		f.Close()
		return nil, err
	}
	return &File{f: f, data: buf, limit: limit}, nil
}

func (r *File) Bytes() []byte { return r.data }

func (r *File) Len() int { return len(r.data) }

// Extend grows the in-memory buffer and the file by n zero bytes.
func (r *File) Extend(n int) error {
	if r == nil || r.f == nil {
		return ErrClosed
	}
	if n <= 0 {
		return ErrBadExtend
	}
	if exceeds(len(r.data), n, r.limit) {
		return fmt.Errorf("extend %d bytes at %d (limit %d): %w", n, len(r.data), r.limit, ErrLimit)
	}
	if err := r.f.Truncate(int64(len(r.data) + n)); err != nil {
		return fmt.Errorf("heap: failed to extend file: %w", err)
	}
	r.data = append(r.data, make([]byte, n)...)
	return nil
}

// Sync writes the arena back to the file.
func (r *File) Sync() error {
	if r == nil || r.f == nil {
		return ErrClosed
	}
	if _, err := r.f.WriteAt(r.data, 0); err != nil {
		return fmt.Errorf("heap: failed to write arena: %w", err)
	}
	return r.f.Sync()
}

// Close writes the arena back and closes the file.
func (r *File) Close() error {
	if r.f == nil {
		return nil
	}
	err := r.Sync()
	if cerr := r.f.Close(); err == nil {
		err = cerr
	}
	r.f = nil
	r.data = nil
	return err
}

// Compile-time interface check
var _ Region = (*File)(nil)
