// Package yard implements rta's on-disk, content-addressed store of
// installed application executables: "yard" after rail yards, where
// passenger cars are stored, sorted, and repaired.
package yard

import (
	"os"
	"path/filepath"

	"github.com/kolide/rta/internal/app"
	"github.com/kolide/rta/internal/platform"
	"github.com/kolide/rta/internal/version"
	"github.com/pkg/errors"
)

// dirName is the yard's root folder name within the home directory.
const dirName = ".run-that-app"

// notInstallableMarker is the sentinel filename touched inside an app's
// version folder once every install method has been tried and failed.
const notInstallableMarker = "not_installable"

// ErrYardRootIsNotFolder is returned when the yard root path exists but is
// a file rather than a directory.
var ErrYardRootIsNotFolder = errors.New("yard root is not a folder")

// ErrCannotCreateFolder wraps the folder path on mkdir failure.
var ErrCannotCreateFolder = errors.New("cannot create folder")

// ErrCannotDeleteFolder wraps the folder path on rmdir failure.
var ErrCannotDeleteFolder = errors.New("cannot delete folder")

// Yard is the root of rta's installed-application store.
type Yard struct {
	Root string
}

// DefaultRoot is dirName under the current user's home directory, e.g.
// "/home/alice/.run-that-app".
func DefaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "determine home directory")
	}
	return filepath.Join(home, dirName), nil
}

// Create makes a new, empty yard rooted at root, creating the directory if
// necessary.
func Create(root string) (*Yard, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrapf(ErrCannotCreateFolder, "%q: %s", root, err)
	}
	return &Yard{Root: root}, nil
}

// Load opens the yard rooted at root if it already exists, returning
// (nil, false, nil) if it doesn't.
func Load(root string) (*Yard, bool, error) {
	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "access %q", root)
	}
	if !info.IsDir() {
		return nil, false, errors.Wrapf(ErrYardRootIsNotFolder, "%q", root)
	}
	return &Yard{Root: root}, true, nil
}

// LoadOrCreate opens the yard at root, creating it if absent.
func LoadOrCreate(root string) (*Yard, error) {
	y, found, err := Load(root)
	if err != nil {
		return nil, err
	}
	if found {
		return y, nil
	}
	return Create(root)
}

// AppFolder is the path holding one (app, version) pair's installed files.
// It is a pure computation: it doesn't touch the filesystem.
func (y *Yard) AppFolder(appName string, v version.Version) string {
	return filepath.Join(y.Root, "apps", appName, v.String())
}

// CreateAppFolder ensures AppFolder(appName, v) exists.
func (y *Yard) CreateAppFolder(appName string, v version.Version) (string, error) {
	folder := y.AppFolder(appName, v)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", errors.Wrapf(ErrCannotCreateFolder, "%q: %s", folder, err)
	}
	return folder, nil
}

// DeleteAppFolder removes every installed version of appName.
func (y *Yard) DeleteAppFolder(appName string) error {
	folder := filepath.Join(y.Root, "apps", appName)
	if err := os.RemoveAll(folder); err != nil {
		return errors.Wrapf(ErrCannotDeleteFolder, "%q: %s", folder, err)
	}
	return nil
}

func (y *Yard) notInstallablePath(appName string, v version.Version) string {
	return filepath.Join(y.AppFolder(appName, v), notInstallableMarker)
}

// IsNotInstallable reports whether (appName, v) was already tried and
// found impossible to install on this platform.
func (y *Yard) IsNotInstallable(appName string, v version.Version) bool {
	_, err := os.Stat(y.notInstallablePath(appName, v))
	return err == nil
}

// MarkNotInstallable records that every install method for (appName, v)
// failed, so future resolutions skip straight to "not found".
func (y *Yard) MarkNotInstallable(appName string, v version.Version) error {
	if _, err := y.CreateAppFolder(appName, v); err != nil {
		return err
	}
	f, err := os.Create(y.notInstallablePath(appName, v))
	if err != nil {
		return errors.Wrapf(err, "mark %q@%s not installable", appName, v)
	}
	return f.Close()
}

// LoadedExecutable is what LoadExecutable returns on a hit: the absolute
// executable path, and the BinFolder rule that produced it (the caller
// needs it to locate sibling files within the same archive layout).
type LoadedExecutable struct {
	Path      string
	BinFolder app.BinFolder
}

// LoadExecutable looks for def's executable already installed at v for the
// given platform. It tries every install method def's run method offers (in
// order), computing each one's candidate path via its BinFolder rule, and
// returns the first one that exists on disk.
func (y *Yard) LoadExecutable(def app.Definition, v version.Version, p platform.Platform) (LoadedExecutable, bool) {
	runMethod := def.RunMethod(v, p)
	if runMethod.Kind != app.RunThisApp {
		return LoadedExecutable{}, false
	}
	appFolder := y.AppFolder(def.Name(), v)
	executableName := def.DefaultExecutableName().PlatformName(p.OS)
	for _, method := range runMethod.InstallMethods {
		candidate := method.BinFolder.ExecutablePath(appFolder, executableName)
		if _, err := os.Stat(candidate); err == nil {
			return LoadedExecutable{Path: candidate, BinFolder: method.BinFolder}, true
		}
	}
	return LoadedExecutable{}, false
}
