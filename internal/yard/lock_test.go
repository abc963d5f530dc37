package yard_test

import (
	"os"
	"testing"

	"github.com/kolide/rta/internal/version"
	"github.com/kolide/rta/internal/yard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockAppFolder_acquireAndRelease(t *testing.T) {
	y, err := yard.Create(t.TempDir())
	require.NoError(t, err)

	lock, err := y.LockAppFolder("shellcheck", version.New("0.9.0"))
	require.NoError(t, err)
	require.NoError(t, lock.Unlock())
}

func TestLockAppFolder_keepsAppFolderClean(t *testing.T) {
	y, err := yard.Create(t.TempDir())
	require.NoError(t, err)
	v := version.New("0.9.0")

	lock, err := y.LockAppFolder("taplo", v)
	require.NoError(t, err)
	defer lock.Unlock()

	// the lock file must not appear inside the versioned app folder: a
	// bare-.gz install renames the folder's sole entry to the executable
	// name and would be confused by a stray .lock sibling
	entries, err := os.ReadDir(y.AppFolder("taplo", v))
	if err == nil {
		assert.Empty(t, entries)
	} else {
		assert.True(t, os.IsNotExist(err))
	}
}
