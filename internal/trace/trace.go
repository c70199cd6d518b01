// Package trace parses and replays allocation traces against an allocator.
//
// A trace is line oriented; '#' starts a comment:
//
//	malloc  <id> <size>
//	calloc  <id> <count> <size>
//	realloc <id> <size>
//	free    <id>
//
// Ids are arbitrary tokens naming live pointers within one trace.
package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	// ErrSyntax indicates a malformed trace line.
	ErrSyntax = errors.New("trace: syntax error")

	// ErrUnknownID indicates an operation on an id that is not live.
	ErrUnknownID = errors.New("trace: unknown id")

	// ErrDuplicateID indicates an allocation into an id that is still live.
	ErrDuplicateID = errors.New("trace: id already live")
)

// Kind is the operation of a trace line.
type Kind uint8

const (
	Malloc Kind = iota + 1
	Calloc
	Realloc
	Free
)

var kindNames = map[string]Kind{
	"malloc":  Malloc,
	"calloc":  Calloc,
	"realloc": Realloc,
	"free":    Free,
}

func (k Kind) String() string {
	for name, kk := range kindNames {
		if kk == k {
			return name
		}
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Op is one trace operation.
type Op struct {
	Kind  Kind
	ID    string
	Count int // calloc only
	Size  int
	Line  int // 1-based source line, 0 for generated ops
}

func (op Op) String() string {
	switch op.Kind {
	case Calloc:
		return fmt.Sprintf("%s %s %d %d", op.Kind, op.ID, op.Count, op.Size)
	case Free:
		return fmt.Sprintf("%s %s", op.Kind, op.ID)
	}
	return fmt.Sprintf("%s %s %d", op.Kind, op.ID, op.Size)
}

// Parse reads a whole trace.
func Parse(r io.Reader) ([]Op, error) {
	var ops []Op
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text, _, _ := strings.Cut(sc.Text(), "#")
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		op, err := parseFields(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		op.Line = line
		ops = append(ops, op)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ops, nil
}

func parseFields(fields []string) (Op, error) {
	kind, ok := kindNames[strings.ToLower(fields[0])]
	if !ok {
		return Op{}, fmt.Errorf("%w: unknown operation %q", ErrSyntax, fields[0])
	}

	want := map[Kind]int{Malloc: 3, Calloc: 4, Realloc: 3, Free: 2}[kind]
	if len(fields) != want {
		return Op{}, fmt.Errorf("%w: %s takes %d fields, got %d", ErrSyntax, kind, want-1, len(fields)-1)
	}

	op := Op{Kind: kind, ID: fields[1]}
	nums := make([]int, 0, 2)
	for _, f := range fields[2:] {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return Op{}, fmt.Errorf("%w: bad size %q", ErrSyntax, f)
		}
		nums = append(nums, n)
	}

	switch kind {
	case Malloc, Realloc:
		op.Size = nums[0]
	case Calloc:
		op.Count, op.Size = nums[0], nums[1]
	}
	return op, nil
}
