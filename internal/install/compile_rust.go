package install

import (
	"os"
	"os/exec"

	"github.com/kolide/rta/internal/app"
	"github.com/pkg/errors"
)

// ErrRustNotInstalled means no "cargo" binary was found on PATH. Unlike Go,
// rta never bootstraps a Rust toolchain for the caller.
var ErrRustNotInstalled = errors.New("cargo is not installed")

// ErrRustNoPermission means cargo exists but couldn't be executed.
var ErrRustNoPermission = errors.New("no permission to run cargo")

// ErrRustCompilationFailed means `cargo install` ran but exited non-zero.
var ErrRustCompilationFailed = errors.New("rust compilation failed")

func (e Engine) compileRustSource(method app.InstallMethod, appFolder string) (Outcome, error) {
	cargoPath, err := exec.LookPath("cargo")
	if err != nil {
		return NotInstalled, ErrRustNotInstalled
	}

	if err := os.MkdirAll(appFolder, 0o755); err != nil {
		return NotInstalled, errors.Wrapf(err, "create %q", appFolder)
	}

	args := []string{"install", "--root", appFolder, "--locked", method.CrateName}
	cmd := exec.Command(cargoPath, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if e.Log != nil {
		e.Log.Debug("compiling rust source", "cargo", cargoPath, "crate", method.CrateName)
	}

	err = cmd.Run()
	if err == nil {
		return Installed, nil
	}

	if os.IsPermission(err) {
		return NotInstalled, ErrRustNoPermission
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if wasInterrupted(exitErr) {
			return NotInstalled, ErrCompilationInterrupted
		}
		return NotInstalled, ErrRustCompilationFailed
	}
	return NotInstalled, errors.Wrap(err, "run cargo install")
}
