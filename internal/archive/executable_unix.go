//go:build unix

package archive

import (
	"os"

	"github.com/pkg/errors"
)

// ErrNotAnExecutable wraps the path when MakeExecutable is asked to fix up
// a file that doesn't exist -- meaning the archive didn't contain the
// executable the application definition expected.
var ErrNotAnExecutable = errors.New("archive does not contain executable")

// MakeExecutable sets u+x (0744) on path if it isn't already executable.
// A no-op on Windows, which has no such permission bit.
func MakeExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(ErrNotAnExecutable, "%q: %s", path, err)
	}
	if info.Mode()&0o100 != 0 {
		return nil
	}
	if err := os.Chmod(path, 0o744); err != nil {
		return errors.Wrapf(err, "set executable bit on %q", path)
	}
	return nil
}
