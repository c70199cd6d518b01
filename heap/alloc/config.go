package alloc

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Fit selects the block-selection policy.
type Fit uint8

const (
	FirstFit Fit = iota
	NextFit
	BestFit
	WorstFit
)

// Fits lists every policy, in declaration order.
var Fits = []Fit{FirstFit, NextFit, BestFit, WorstFit}

func (f Fit) String() string {
	switch f {
	case FirstFit:
		return "first"
	case NextFit:
		return "next"
	case BestFit:
		return "best"
	case WorstFit:
		return "worst"
	}
	return fmt.Sprintf("Fit(%d)", uint8(f))
}

// ParseFit maps "first", "next", "best" or "worst" (any case, optional "-fit"
// suffix) to a Fit.
func ParseFit(s string) (Fit, error) {
	name := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "-fit")
	for _, f := range Fits {
		if f.String() == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownFit)
}

// ZeroMode selects how much of a ZeroAllocate result is cleared.
type ZeroMode uint8

const (
	// ZeroElement clears only the first elemSize bytes. This is the default.
	ZeroElement ZeroMode = iota
	// ZeroFull clears all count*elemSize bytes.
	ZeroFull
)

// Config holds allocator settings. The zero value is DefaultConfig.
type Config struct {
	Fit      Fit
	ZeroFill ZeroMode

	// Report receives the statistics report on Shutdown. Default: os.Stdout.
	Report io.Writer

	// Logger receives debug traces. Default: logger.L.
	Logger *slog.Logger
}

// DefaultConfig is used when New is given a nil config.
var DefaultConfig = Config{
	Fit:      FirstFit,
	ZeroFill: ZeroElement,
}
