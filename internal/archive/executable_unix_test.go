//go:build unix

package archive_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kolide/rta/internal/archive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeExecutable_setsBit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tool")
	require.NoError(t, os.WriteFile(path, []byte("binary"), 0o644))

	require.NoError(t, archive.MakeExecutable(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o100)
}

func TestMakeExecutable_missingFileErrors(t *testing.T) {
	err := archive.MakeExecutable(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, archive.ErrNotAnExecutable)
}
