package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/internal/trace"
)

func init() {
	cmd := newCompareCmd()
	addChurnFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <trace|scenario>",
		Short: "Compare the fit policies on one workload",
		Long: `The compare command replays the same workload under first, next,
best and worst fit, each on a fresh in-memory heap, and tabulates the
resulting statistics. The argument is a trace file or a scenario name.
Heaps are always in memory; --heap-file is rejected.

Example:
  heapctl compare workload.trace
  heapctl compare churn --ops 100000 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(args)
		},
	}
	return cmd
}

type compareRow struct {
	Fit    string      `json:"fit"`
	Failed int         `json:"failed"`
	Stats  alloc.Stats `json:"stats"`
}

// compareWorkload resolves the argument as a file first, then a scenario.
func compareWorkload(arg string) ([]trace.Op, error) {
	if _, err := os.Stat(arg); err == nil {
		return readTrace(arg)
	}
	return loadScenario(arg)
}

func runCompare(args []string) error {
	if heapFile != "" {
		return errors.New("compare runs on in-memory heaps only; drop --heap-file")
	}
	ops, err := compareWorkload(args[0])
	if err != nil {
		return err
	}
	limit, err := parseLimit(limitArg)
	if err != nil {
		return err
	}

	rows := make([]compareRow, 0, len(alloc.Fits))
	for _, fit := range alloc.Fits {
		a, err := alloc.New(heap.NewMemory(limit), allocConfig(fit, io.Discard))
		if err != nil {
			return err
		}
		res, err := trace.Replay(a, ops)
		if err != nil {
			return fmt.Errorf("%s-fit: %w", fit, err)
		}
		if err := a.Verify(); err != nil {
			return fmt.Errorf("%s-fit: heap inconsistent after replay: %w", fit, err)
		}
		printVerbose("%s-fit done\n", fit)
		rows = append(rows, compareRow{Fit: fit.String(), Failed: res.Failed, Stats: res.Stats})
	}

	if jsonOut {
		return printJSON(rows)
	}
	if quiet {
		return nil
	}

	p := message.NewPrinter(language.English)
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "fit\tmallocs\treuses\tgrows\tsplits\tcoalesces\tfree blocks\tfailed\tmax heap\t")
	for _, r := range rows {
		s := r.Stats
		p.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t\n",
			r.Fit, s.Mallocs, s.Reuses, s.Grows, s.Splits, s.Coalesces, s.Blocks, r.Failed, s.MaxHeap)
	}
	return tw.Flush()
}
