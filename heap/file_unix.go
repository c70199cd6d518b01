//go:build linux || darwin

package heap

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// mmapFile is replaced in tests to simulate mapping failures.
var mmapFile = unix.Mmap

// File is a Region backed by a memory-mapped file.
type File struct {
	f     *os.File
	data  []byte
	size  int64
	limit int
}

// OpenFile maps the arena file at path read-write, creating it if missing.
// An existing file keeps its contents; the allocator rebuilds its block list
// from the headers.
func OpenFile(path string, limit int) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, err
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	r := &File{f: f, size: st.Size(), limit: limit}
	if r.size == 0 {
		return r, nil
	}

	data, err := r.mmap(r.size)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("mmap failed: %w", err)
	}
	r.data = data
	return r, nil
}

func (r *File) Bytes() []byte { return r.data }

func (r *File) Len() int { return int(r.size) }

// Extend grows the file by n bytes and remaps the memory mapping.
// The new bytes are zero-initialized by the OS.
func (r *File) Extend(n int) error {
	if r == nil || r.f == nil {
		return ErrClosed
	}
	if n <= 0 {
		return ErrBadExtend
	}
	if exceeds(int(r.size), n, r.limit) {
		return fmt.Errorf("extend %d bytes at %d (limit %d): %w", n, r.size, r.limit, ErrLimit)
	}

	newSize := r.size + int64(n)

	if r.data != nil {
		if err := unix.Munmap(r.data); err != nil {
			return fmt.Errorf("heap: failed to unmap before grow: %w", err)
		}
		r.data = nil
	}

	if err := r.f.Truncate(newSize); err != nil {
		return errors.Join(fmt.Errorf("heap: failed to truncate file: %w", err), r.remapOld())
	}

	data, err := r.mmap(newSize)
	if err != nil {
		// Put the file back to its old length so the region is unchanged.
		_ = r.f.Truncate(r.size)
		return errors.Join(fmt.Errorf("heap: failed to remap after grow: %w", err), r.remapOld())
	}

	r.data = data
	r.size = newSize
	return nil
}

// Sync flushes dirty pages of the mapping to the file.
func (r *File) Sync() error {
	if r == nil || r.f == nil {
		return ErrClosed
	}
	if r.data == nil {
		return nil
	}
	return unix.Msync(r.data, unix.MS_SYNC)
}

// Close unmaps and closes the file.
func (r *File) Close() error {
	var err error
	if r.data != nil {
		err = unix.Munmap(r.data)
		r.data = nil
	}
	if r.f != nil {
		err = errors.Join(err, r.f.Close())
		r.f = nil
	}
	return err
}

func (r *File) mmap(size int64) ([]byte, error) {
	return mmapFile(
		int(r.f.Fd()),
		0,
		int(size),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_SHARED,
	)
}

// remapOld restores the mapping at the pre-grow size after a failed Extend.
// If that fails too the region is closed, so later calls report ErrClosed.
func (r *File) remapOld() error {
	if r.size == 0 {
		return nil
	}
	data, err := r.mmap(r.size)
	if err != nil {
		closeErr := r.f.Close()
		r.f = nil
		return errors.Join(fmt.Errorf("heap: failed to restore mapping: %w", err), ErrClosed, closeErr)
	}
	r.data = data
	return nil
}

// Compile-time interface check
var _ Region = (*File)(nil)
