package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	// Drain concurrently so large outputs do not block the pipe.
	done := make(chan struct{})
	var buf bytes.Buffer
	go func() {
		_, _ = buf.ReadFrom(r)
		close(done)
	}()

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout
	<-done
	r.Close()

	return buf.String(), fnErr
}

// resetFlags restores every global flag to its default.
func resetFlags(t *testing.T) {
	t.Helper()
	verbose = false
	quiet = false
	jsonOut = false
	fitName = "first"
	heapFile = ""
	limitArg = ""
	zeroFull = false
	runSeed = 1
	runOps = 10000
	checkBlocks = false
}

// writeTrace writes src to a trace file in a temp dir and returns its path.
func writeTrace(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "w.trace")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))
	return path
}

// decodeJSON unmarshals command output into v.
func decodeJSON(t *testing.T, output string, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(output), v), "output: %s", output)
}
