package install

import (
	"os"
	"os/exec"

	"github.com/kolide/rta/internal/app"
	"github.com/pkg/errors"
)

// ErrGoNoPermission means the "go" binary exists but couldn't be executed.
var ErrGoNoPermission = errors.New("no permission to run go")

// ErrGoCompilationFailed means `go install` ran but exited non-zero.
var ErrGoCompilationFailed = errors.New("go compilation failed")

func (e Engine) compileGoSource(method app.InstallMethod, appFolder string, optional bool) (Outcome, error) {
	goPath, err := exec.LookPath("go")
	if err != nil {
		if e.LocateGo == nil {
			return NotInstalled, nil
		}
		goPath, err = e.LocateGo()
		if err != nil {
			return NotInstalled, err
		}
		if goPath == "" {
			return NotInstalled, nil
		}
	}

	if err := os.MkdirAll(appFolder, 0o755); err != nil {
		return NotInstalled, errors.Wrapf(err, "create %q", appFolder)
	}

	cmd := exec.Command(goPath, "install", method.ImportPath)
	cmd.Env = append(os.Environ(), "GOBIN="+appFolder)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if e.Log != nil {
		e.Log.Debug("compiling go source", "go", goPath, "importPath", method.ImportPath)
	}

	err = cmd.Run()
	if err == nil {
		return Installed, nil
	}

	if os.IsPermission(err) {
		return NotInstalled, ErrGoNoPermission
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if wasInterrupted(exitErr) {
			return NotInstalled, ErrCompilationInterrupted
		}
		return NotInstalled, ErrGoCompilationFailed
	}
	return NotInstalled, errors.Wrap(err, "run go install")
}
