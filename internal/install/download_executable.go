package install

import (
	"os"
	"path/filepath"

	"github.com/kolide/rta/internal/app"
	"github.com/kolide/rta/internal/archive"
	"github.com/kolide/rta/internal/download"
	"github.com/kolide/rta/internal/platform"
	"github.com/pkg/errors"
)

func (e Engine) downloadExecutable(method app.InstallMethod, def app.Definition, p platform.Platform, appFolder string, optional bool) (Outcome, error) {
	artifact, err := download.Fetch(method.URL, def.Name(), optional, e.Log)
	if err != nil {
		return NotInstalled, err
	}
	if artifact == nil {
		return NotInstalled, nil
	}

	target := filepath.Join(appFolder, def.DefaultExecutableName().PlatformName(p.OS))
	if err := os.MkdirAll(appFolder, 0o755); err != nil {
		return NotInstalled, errors.Wrapf(err, "create %q", appFolder)
	}
	if err := os.WriteFile(target, artifact.Data, 0o644); err != nil {
		return NotInstalled, errors.Wrapf(err, "write %q", target)
	}
	if err := archive.MakeExecutable(target); err != nil {
		return NotInstalled, err
	}
	return Installed, nil
}
