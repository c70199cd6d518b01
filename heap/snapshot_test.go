package heap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_PrivateAndFixed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heap.bin")
	want := []byte("0123456789abcdef")
	require.NoError(t, os.WriteFile(path, want, 0o600))

	s, err := OpenSnapshot(path)
	require.NoError(t, err)
	require.Equal(t, len(want), s.Len())
	assert.Equal(t, want, s.Bytes())

	s.Bytes()[0] = 'X'
	require.ErrorIs(t, s.Extend(32), ErrReadOnly)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	require.ErrorIs(t, s.Extend(32), ErrClosed)

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, onDisk)
}

func TestSnapshot_Missing(t *testing.T) {
	_, err := OpenSnapshot(filepath.Join(t.TempDir(), "missing.bin"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
