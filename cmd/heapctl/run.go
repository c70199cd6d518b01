package main

import (
	"embed"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/internal/trace"
)

//go:embed scenarios/*.trace
var scenarioFS embed.FS

var (
	runSeed uint64
	runOps  int
)

func init() {
	cmd := newRunCmd()
	addChurnFlags(cmd)
	rootCmd.AddCommand(cmd)
}

// addChurnFlags registers the churn scenario's size and seed on cmd.
func addChurnFlags(cmd *cobra.Command) {
	cmd.Flags().Uint64Var(&runSeed, "seed", 1, "Seed for the churn scenario")
	cmd.Flags().IntVar(&runOps, "ops", 10000, "Operation count for the churn scenario")
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scenario>",
		Short: "Run a built-in workload",
		Long: `The run command replays one of the built-in workloads and prints the
heap management statistics when the allocator shuts down.

Scenarios: ` + strings.Join(scenarioNames(), ", ") + `

Example:
  heapctl run realloc
  heapctl run bestfit --fit best
  heapctl run churn --seed 7 --ops 50000 --limit 1MiB`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(args)
		},
	}
	return cmd
}

// scenarioNames lists embedded scenarios plus the generated churn workload.
func scenarioNames() []string {
	names := []string{"churn"}
	entries, _ := scenarioFS.ReadDir("scenarios")
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".trace"))
	}
	slices.Sort(names)
	return names
}

// loadScenario returns the operations of a named scenario.
func loadScenario(name string) ([]trace.Op, error) {
	if name == "churn" {
		if runOps <= 0 {
			return nil, fmt.Errorf("--ops must be positive, got %d", runOps)
		}
		return trace.Generate(runSeed, runOps), nil
	}

	f, err := scenarioFS.Open(path.Join("scenarios", name+".trace"))
	if err != nil {
		return nil, fmt.Errorf("unknown scenario %q (have %s)", name, strings.Join(scenarioNames(), ", "))
	}
	defer f.Close()
	return trace.Parse(f)
}

func runScenario(args []string) error {
	name := args[0]
	ops, err := loadScenario(name)
	if err != nil {
		return err
	}
	printVerbose("Running scenario %s (%d ops)\n", name, len(ops))
	return runWorkload(name, ops)
}
