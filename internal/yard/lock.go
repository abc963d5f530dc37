package yard

import (
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/kolide/rta/internal/version"
	"github.com/pkg/errors"
)

// locksDirName holds the yard's advisory lock files, kept outside the
// apps/ tree so a lock file never shows up among an app folder's installed
// entries (bare-.gz installs rename the folder's sole file to the
// executable name and must not see anything else there).
const locksDirName = "locks"

// ErrLockApp wraps the app and version when acquiring their install lock
// fails.
var ErrLockApp = errors.New("cannot lock app folder")

// LockAppFolder guards installs of a single (app, version) folder across
// processes: two concurrent `rta` invocations resolving the same app won't
// race to extract into the same directory. The caller releases the lock by
// calling Unlock on the returned *flock.Flock.
func (y *Yard) LockAppFolder(appName string, v version.Version) (*flock.Flock, error) {
	locksDir := filepath.Join(y.Root, locksDirName)
	if err := os.MkdirAll(locksDir, 0o755); err != nil {
		return nil, errors.Wrapf(ErrCannotCreateFolder, "%q: %s", locksDir, err)
	}
	lock := flock.New(filepath.Join(locksDir, appName+"-"+v.String()+".lock"))
	if err := lock.Lock(); err != nil {
		return nil, errors.Wrapf(ErrLockApp, "%s@%s: %s", appName, v, err)
	}
	return lock, nil
}
