// Package mmfile maps heap images for inspection.
package mmfile

import "errors"

// ErrTooLarge indicates a file that does not fit in the address space.
var ErrTooLarge = errors.New("mmfile: file too large to map")
