package alloc

import (
	"fmt"
	"io"
)

// Stats holds allocator counters.
type Stats struct {
	Mallocs   int   // Successful Allocate calls (including those made by ZeroAllocate and Resize)
	Frees     int   // Release calls on non-nil pointers
	Reuses    int   // Allocations served from the free list
	Grows     int   // Region extensions
	Splits    int   // Free blocks split on allocation
	Coalesces int   // Adjacent free blocks merged
	Blocks    int   // Blocks currently on the free list
	Requested int64 // Bytes requested before alignment
	MaxHeap   int64 // Largest arena size observed, headers included
}

const reportFormat = "\nheap management statistics\n" +
	"mallocs:\t%d\n" +
	"frees:\t\t%d\n" +
	"reuses:\t\t%d\n" +
	"grows:\t\t%d\n" +
	"splits:\t\t%d\n" +
	"coalesces:\t%d\n" +
	"blocks:\t\t%d\n" +
	"requested:\t%d\n" +
	"max heap:\t%d\n"

// WriteReport writes the fixed-format statistics report.
func (s Stats) WriteReport(w io.Writer) error {
	_, err := fmt.Fprintf(w, reportFormat,
		s.Mallocs,
		s.Frees,
		s.Reuses,
		s.Grows,
		s.Splits,
		s.Coalesces,
		s.Blocks,
		s.Requested,
		s.MaxHeap,
	)
	return err
}

// Stats returns a snapshot of the counters.
func (a *Allocator) Stats() Stats {
	return a.stats
}

// Shutdown emits the statistics report to Config.Report. The report is
// written at most once per allocator, and only if Allocate was ever called.
func (a *Allocator) Shutdown() error {
	if !a.hooked || a.reported {
		return nil
	}
	a.reported = true
	return a.stats.WriteReport(a.cfg.Report)
}

func (a *Allocator) registerHook() {
	if !a.hooked {
		a.hooked = true
		a.log.Debug("shutdown hook registered", "fit", a.cfg.Fit.String())
	}
}

func (a *Allocator) noteHeap() {
	if n := int64(a.r.Len()); n > a.stats.MaxHeap {
		a.stats.MaxHeap = n
	}
}
