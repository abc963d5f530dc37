//go:build windows

package archive

import "github.com/pkg/errors"

// ErrNotAnExecutable wraps the path when MakeExecutable is asked to fix up
// a file that doesn't exist.
var ErrNotAnExecutable = errors.New("archive does not contain executable")

// MakeExecutable is a no-op on Windows, which has no executable permission
// bit.
func MakeExecutable(path string) error {
	return nil
}
