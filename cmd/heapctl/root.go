package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/internal/logger"
)

var (
	// Global flags
	verbose  bool
	quiet    bool
	jsonOut  bool
	fitName  string
	heapFile string
	limitArg string
	zeroFull bool
)

var rootCmd = &cobra.Command{
	Use:   "heapctl",
	Short: "Drive and inspect heapkit allocators",
	Long: `heapctl runs allocation workloads against a heapkit allocator and
prints the heap management statistics. Workloads are built-in scenarios or
trace files; file-backed heaps can be reopened and checked.`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.Init(logger.Options{Enabled: true, Writer: os.Stderr, Level: slog.LevelDebug})
		}
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and debug tracing")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		StringVar(&fitName, "fit", "first", "Fit policy: first, next, best or worst")
	rootCmd.PersistentFlags().
		StringVar(&heapFile, "heap-file", "", "Back the heap with this file instead of memory")
	rootCmd.PersistentFlags().
		StringVar(&limitArg, "limit", "", "Maximum heap size, e.g. 64KiB (default unlimited)")
	rootCmd.PersistentFlags().
		BoolVar(&zeroFull, "zero-full", false, "calloc clears the whole allocation, not just one element")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
