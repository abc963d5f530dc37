package install

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/kolide/rta/internal/app"
	"github.com/kolide/rta/internal/archive"
	"github.com/kolide/rta/internal/download"
	"github.com/kolide/rta/internal/platform"
	"github.com/kolide/rta/internal/version"
	"github.com/pkg/errors"
)

// ErrArchiveDoesNotContainExecutable is returned when extraction succeeded
// but the app's declared default executable isn't where the BinFolder rule
// said it would be.
var ErrArchiveDoesNotContainExecutable = errors.New("archive does not contain executable")

func (e Engine) downloadArchive(method app.InstallMethod, def app.Definition, v version.Version, p platform.Platform, appFolder string, optional bool) (Outcome, error) {
	artifact, err := download.Fetch(method.URL, def.Name(), optional, e.Log)
	if err != nil {
		return NotInstalled, err
	}
	if artifact == nil {
		return NotInstalled, nil
	}

	if err := archive.ExtractAll(artifact.Filename, artifact.Data, appFolder); err != nil {
		return NotInstalled, err
	}

	executableName := def.DefaultExecutableName().PlatformName(p.OS)
	executablePath := method.BinFolder.ExecutablePath(appFolder, executableName)
	if _, err := os.Stat(executablePath); err != nil {
		name := strings.ToLower(artifact.Filename)
		bareGz := strings.HasSuffix(name, ".gz") && !strings.HasSuffix(name, ".tar.gz")
		if !bareGz || !renameSoleFileTo(appFolder, method.BinFolder, executablePath) {
			return NotInstalled, errors.Wrapf(ErrArchiveDoesNotContainExecutable, "expected %q", executablePath)
		}
	}
	if err := archive.MakeExecutable(executablePath); err != nil {
		return NotInstalled, err
	}

	for _, additional := range def.AdditionalExecutables() {
		additionalPath := method.BinFolder.ExecutablePath(appFolder, additional.PlatformName(p.OS))
		if _, err := os.Stat(additionalPath); err == nil {
			if err := archive.MakeExecutable(additionalPath); err != nil {
				return NotInstalled, err
			}
		}
	}

	return Installed, nil
}

// renameSoleFileTo handles the bare-".gz" download case: extraction leaves
// exactly one file in appFolder (or bin.Path, for a BinFolderSubfolder),
// named after the release asset rather than the app's executable name
// (e.g. GitHub's "taplo-linux-aarch64" for a download named
// "taplo-linux-aarch64.gz"). If appFolder holds precisely one regular file,
// it is renamed to the path the app expects and true is returned.
func renameSoleFileTo(appFolder string, bin app.BinFolder, wantPath string) bool {
	dir := appFolder
	if bin.Kind == app.BinFolderSubfolder {
		dir = filepath.Join(appFolder, bin.Path)
	}
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 || entries[0].IsDir() {
		return false
	}
	current := filepath.Join(dir, entries[0].Name())
	return os.Rename(current, wantPath) == nil
}
