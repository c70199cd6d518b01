package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/internal/trace"
)

func init() {
	rootCmd.AddCommand(newReplayCmd())
}

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <trace>",
		Short: "Replay an allocation trace file",
		Long: `The replay command runs every operation of a trace file against one
allocator and prints the heap management statistics.

Trace lines:
  malloc  <id> <size>
  calloc  <id> <count> <size>
  realloc <id> <size>
  free    <id>

Example:
  heapctl replay workload.trace --fit next
  heapctl replay workload.trace --heap-file heap.bin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(args)
		},
	}
	return cmd
}

// readTrace parses the trace file at path.
func readTrace(path string) ([]trace.Op, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace: %w", err)
	}
	defer f.Close()

	ops, err := trace.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ops, nil
}

func runReplay(args []string) error {
	ops, err := readTrace(args[0])
	if err != nil {
		return err
	}
	printVerbose("Replaying %s (%d ops)\n", args[0], len(ops))
	return runWorkload(filepath.Base(args[0]), ops)
}
