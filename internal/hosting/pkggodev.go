package hosting

import (
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// PkgGoDev lists versions of a Go module by shelling out to `go list -m
// -versions`, which consults the module proxy (defaulting to pkg.go.dev's
// backing proxy.golang.org). It is used only for the "go" catalog entry
// itself as a fallback when the GitHub tag index is unreachable, since Go's
// own releases are also available as a regular Go module.
type PkgGoDev struct {
	ModulePath string
}

// Versions runs `go list -m -versions <modulePath>` and parses its
// space-separated "<path> v1 v2 v3..." output, oldest first.
func (p PkgGoDev) Versions() ([]string, error) {
	out, err := exec.Command("go", "list", "-m", "-versions", p.ModulePath).Output()
	if err != nil {
		return nil, errors.Wrapf(ErrNotOnline, "go list -m -versions %s: %s", p.ModulePath, err)
	}
	fields := strings.Fields(string(out))
	if len(fields) == 0 {
		return nil, nil
	}
	// first field is the module path itself, the rest are versions
	return fields[1:], nil
}
