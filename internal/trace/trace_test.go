package trace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	src := `# header comment
malloc a 100
calloc b 4 32   # trailing comment

REALLOC a 300
free b
`
	ops, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, ops, 4)

	assert.Equal(t, Op{Kind: Malloc, ID: "a", Size: 100, Line: 2}, ops[0])
	assert.Equal(t, Op{Kind: Calloc, ID: "b", Count: 4, Size: 32, Line: 3}, ops[1])
	assert.Equal(t, Op{Kind: Realloc, ID: "a", Size: 300, Line: 5}, ops[2])
	assert.Equal(t, Op{Kind: Free, ID: "b", Line: 6}, ops[3])
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line string
	}{
		{"unknown op", "sbrk a 10", "line 1"},
		{"missing size", "malloc a", "line 1"},
		{"extra field", "free a 10", "line 1"},
		{"bad number", "malloc a ten", "line 1"},
		{"negative", "\nmalloc a -4", "line 2"},
		{"calloc arity", "calloc a 4", "line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			require.ErrorIs(t, err, ErrSyntax)
			assert.Contains(t, err.Error(), tt.line)
		})
	}
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "malloc a 10", Op{Kind: Malloc, ID: "a", Size: 10}.String())
	assert.Equal(t, "calloc b 2 8", Op{Kind: Calloc, ID: "b", Count: 2, Size: 8}.String())
	assert.Equal(t, "free c", Op{Kind: Free, ID: "c"}.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestParse_RoundTripsGenerated(t *testing.T) {
	ops := Generate(7, 200)

	var sb strings.Builder
	for _, op := range ops {
		sb.WriteString(op.String())
		sb.WriteByte('\n')
	}

	parsed, err := Parse(strings.NewReader(sb.String()))
	require.NoError(t, err)
	require.Len(t, parsed, len(ops))
	for i := range ops {
		parsed[i].Line = 0
	}
	assert.Equal(t, ops, parsed)
}
