package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/alloc"
)

var checkBlocks bool

func init() {
	cmd := newCheckCmd()
	cmd.Flags().BoolVar(&checkBlocks, "blocks", false, "List every block")
	rootCmd.AddCommand(cmd)
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <heapfile>",
		Short: "Verify a file-backed heap",
		Long: `The check command opens a heap file written with --heap-file, rebuilds
the block list from its headers and verifies every structural invariant.

Example:
  heapctl check heap.bin
  heapctl check heap.bin --blocks
  heapctl check heap.bin --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args)
		},
	}
	return cmd
}

type checkReport struct {
	Path       string            `json:"path"`
	Bytes      int               `json:"bytes"`
	Blocks     int               `json:"blocks"`
	FreeBlocks int               `json:"free_blocks"`
	FreeBytes  int               `json:"free_bytes"`
	UsedBytes  int               `json:"used_bytes"`
	Largest    int               `json:"largest_free"`
	List       []alloc.BlockInfo `json:"list,omitempty"`
}

func runCheck(args []string) (err error) {
	path := args[0]

	printVerbose("Opening heap file: %s\n", path)
	r, err := heap.OpenSnapshot(path)
	if err != nil {
		return fmt.Errorf("failed to open heap file: %w", err)
	}
	defer func() {
		err = errors.Join(err, r.Close())
	}()

	a, err := alloc.New(r, &alloc.Config{Report: io.Discard})
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := a.Verify(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	blocks, err := a.Blocks()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	rep := checkReport{Path: path, Bytes: r.Len(), Blocks: len(blocks)}
	for _, b := range blocks {
		if b.Free {
			rep.FreeBlocks++
			rep.FreeBytes += b.Size
			rep.Largest = max(rep.Largest, b.Size)
		} else {
			rep.UsedBytes += b.Size
		}
	}
	if checkBlocks {
		rep.List = blocks
	}

	if jsonOut {
		return printJSON(rep)
	}

	printInfo("%s: OK\n", path)
	printInfo("  Heap:   %s (%d bytes)\n", humanize.IBytes(uint64(rep.Bytes)), rep.Bytes)
	printInfo("  Blocks: %d (%d free)\n", rep.Blocks, rep.FreeBlocks)
	printInfo("  Used:   %s\n", humanize.IBytes(uint64(rep.UsedBytes)))
	printInfo("  Free:   %s (largest %s)\n",
		humanize.IBytes(uint64(rep.FreeBytes)), humanize.IBytes(uint64(rep.Largest)))

	if checkBlocks {
		printInfo("\n  %-10s %-10s %10s  %s\n", "header", "ptr", "size", "state")
		for _, b := range blocks {
			state := "used"
			if b.Free {
				state = "free"
			}
			printInfo("  %#-10x %#-10x %10d  %s\n", b.Offset, int(b.Ptr), b.Size, state)
		}
	}
	return nil
}
