package subshell_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/kolide/rta/internal/subshell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectOutput_silentProcessIsNotEmitted(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fixture scripts are POSIX shell")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "quiet.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755))

	code, emitted, err := subshell.DetectOutput(subshell.Call{Executable: path})
	require.NoError(t, err)
	assert.False(t, emitted)
	assert.Equal(t, 0, code)
}

func TestDetectOutput_bareNewlineIsOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fixture scripts are POSIX shell")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "newline.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\necho\n"), 0o755))

	code, emitted, err := subshell.DetectOutput(subshell.Call{Executable: path})
	require.Error(t, err)
	assert.True(t, emitted)
	assert.Equal(t, 0, code)
}

func TestDetectOutput_anyOutputIsReported(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fixture scripts are POSIX shell")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "noisy.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\necho hello\n"), 0o755))

	code, emitted, err := subshell.DetectOutput(subshell.Call{Executable: path})
	require.Error(t, err)
	assert.True(t, emitted)
	assert.Equal(t, 0, code)

	var outputErr *subshell.ErrProcessEmittedOutput
	require.ErrorAs(t, err, &outputErr)
	assert.Contains(t, outputErr.Cmd, path)
}
