// Package install executes a single installation method against a yard
// folder: download-and-extract, download a raw executable, or compile from
// source. internal/resolve drives this package to materialize an
// application's executable on demand.
package install

import (
	"log/slog"
	"os/exec"
	"syscall"

	"github.com/kolide/rta/internal/app"
	"github.com/kolide/rta/internal/platform"
	"github.com/kolide/rta/internal/version"
	"github.com/pkg/errors"
)

// ErrCompilationInterrupted means a compile subprocess died to a signal
// (typically the user's Ctrl-C propagating through the process group)
// rather than failing on its own. The resolver treats it as a hard error
// and does not record the negative-cache marker.
var ErrCompilationInterrupted = errors.New("compilation interrupted")

// wasInterrupted reports whether a compile subprocess was killed by a
// signal. Always false on Windows, which has no signal-death exit state.
func wasInterrupted(exitErr *exec.ExitError) bool {
	status, ok := exitErr.Sys().(syscall.WaitStatus)
	return ok && status.Signaled()
}

// Outcome is the result of attempting one installation method.
type Outcome int

const (
	// NotInstalled is a soft failure: this method doesn't apply here (the
	// download 404ed, or the method couldn't support this platform). The
	// caller should try the next method.
	NotInstalled Outcome = iota
	// Installed means the executable now exists in the yard folder.
	Installed
)

// Success reports whether this outcome short-circuits an Any() chain.
func (o Outcome) Success() bool {
	return o == Installed
}

// GoLocatorFunc resolves a "go" binary to run `go install` with, bootstrap-
// installing the catalog's own "go" entry if none is on PATH. It is
// supplied by internal/resolve to avoid install depending on resolve.
type GoLocatorFunc func() (goPath string, err error)

// Engine runs installation methods against real infrastructure (download,
// archive extraction, subprocess compilation).
type Engine struct {
	Log      *slog.Logger
	LocateGo GoLocatorFunc
}

// Any tries each method in order, stopping at the first one that succeeds.
// A soft failure (NotInstalled, nil error) advances to the next method; a
// hard error aborts the whole sequence, propagating even when optional is
// set (optional only downgrades the 404-during-download case, which is
// already folded into NotInstalled by the per-method functions below).
func (e Engine) Any(methods []app.InstallMethod, def app.Definition, v version.Version, p platform.Platform, appFolder string, optional bool) (Outcome, error) {
	for _, method := range methods {
		outcome, err := e.Install(method, def, v, p, appFolder, optional)
		if err != nil {
			return NotInstalled, err
		}
		if outcome.Success() {
			return Installed, nil
		}
	}
	return NotInstalled, nil
}

// Install runs a single installation method.
func (e Engine) Install(method app.InstallMethod, def app.Definition, v version.Version, p platform.Platform, appFolder string, optional bool) (Outcome, error) {
	switch method.Kind {
	case app.InstallDownloadArchive:
		return e.downloadArchive(method, def, v, p, appFolder, optional)
	case app.InstallDownloadExecutable:
		return e.downloadExecutable(method, def, p, appFolder, optional)
	case app.InstallCompileGoSource:
		return e.compileGoSource(method, appFolder, optional)
	case app.InstallCompileRustSource:
		return e.compileRustSource(method, appFolder)
	default:
		return NotInstalled, errors.Errorf("unknown install method kind %d", method.Kind)
	}
}
