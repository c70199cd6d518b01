package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/internal/trace"
)

// session is one allocator over the region selected by the global flags.
type session struct {
	region heap.Region
	alloc  *alloc.Allocator
}

// parseLimit turns --limit into a byte count; empty means unlimited.
func parseLimit(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid --limit %q: %w", s, err)
	}
	if n > uint64(int(^uint(0)>>1)) {
		return 0, fmt.Errorf("invalid --limit %q: too large", s)
	}
	return int(n), nil
}

// allocConfig builds the allocator config from the global flags. The report
// goes to report unless JSON output is requested.
func allocConfig(fit alloc.Fit, report io.Writer) *alloc.Config {
	cfg := &alloc.Config{Fit: fit, Report: report}
	if zeroFull {
		cfg.ZeroFill = alloc.ZeroFull
	}
	if jsonOut || quiet {
		cfg.Report = io.Discard
	}
	return cfg
}

// openSession opens the region named by --heap-file (or a memory region) and
// attaches an allocator using fit.
func openSession(fit alloc.Fit) (*session, error) {
	limit, err := parseLimit(limitArg)
	if err != nil {
		return nil, err
	}

	var r heap.Region
	if heapFile != "" {
		printVerbose("Opening heap file: %s\n", heapFile)
		f, err := heap.OpenFile(heapFile, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to open heap file: %w", err)
		}
		r = f
	} else {
		r = heap.NewMemory(limit)
	}

	a, err := alloc.New(r, allocConfig(fit, os.Stdout))
	if err != nil {
		return nil, errors.Join(err, r.Close())
	}
	if n := r.Len(); n > 0 {
		printVerbose("Loaded existing heap: %s\n", humanize.IBytes(uint64(n)))
	}
	return &session{region: r, alloc: a}, nil
}

// replay runs ops and prints the outcome. The statistics report is written
// by Shutdown, or replaced by a JSON summary under --json.
func (s *session) replay(name string, ops []trace.Op) error {
	res, err := trace.Replay(s.alloc, ops)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := s.alloc.Verify(); err != nil {
		return fmt.Errorf("%s: heap inconsistent after replay: %w", name, err)
	}

	if jsonOut {
		return printJSON(replaySummary{
			Workload: name,
			Fit:      s.alloc.Fit().String(),
			Ops:      res.Ops,
			Failed:   res.Failed,
			Live:     res.Live,
			Stats:    res.Stats,
		})
	}

	printVerbose("%s: %d ops under %s-fit, %d failed, %d live, heap %s\n",
		name, res.Ops, s.alloc.Fit(), res.Failed, res.Live,
		humanize.IBytes(uint64(res.Stats.MaxHeap)))
	return nil
}

// close emits the report and releases the region.
func (s *session) close() error {
	err := s.alloc.Shutdown()
	if f, ok := s.region.(*heap.File); ok {
		err = errors.Join(err, f.Sync())
	}
	return errors.Join(err, s.region.Close())
}

type replaySummary struct {
	Workload string      `json:"workload"`
	Fit      string      `json:"fit"`
	Ops      int         `json:"ops"`
	Failed   int         `json:"failed"`
	Live     int         `json:"live"`
	Stats    alloc.Stats `json:"stats"`
}

// runWorkload is the shared body of run and replay.
func runWorkload(name string, ops []trace.Op) (err error) {
	fit, err := alloc.ParseFit(fitName)
	if err != nil {
		return err
	}
	s, err := openSession(fit)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, s.close())
	}()
	return s.replay(name, ops)
}
