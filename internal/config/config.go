// Package config reads and writes the .tool-versions file: one line per
// application naming the version(s) it should run at in this project tree.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/kolide/rta/internal/version"
	"github.com/pkg/errors"
)

// FileName is the name of the per-project pin file, searched for starting
// at the current directory and walking up through its ancestors.
const FileName = ".tool-versions"

// SeedContent is written by `rta --setup` when no config file exists yet.
const SeedContent = `# actionlint 1.6.26
# gh 2.39.1
`

// ErrConfigFileAlreadyExists is returned by Create when a .tool-versions
// file is already present.
var ErrConfigFileAlreadyExists = errors.New(FileName + " already exists")

// AppVersions is one app's entry in a .tool-versions file: its name and the
// version(s) requested for it.
type AppVersions struct {
	AppName  string
	Versions version.RequestedVersions
}

// File is the parsed content of a .tool-versions file.
type File struct {
	Apps []AppVersions
	// Path is the absolute path the file was loaded from, or the path it
	// would be created at if absent. Empty for a File built in memory.
	Path string
}

// Lookup returns the requested versions for the given app name, and whether
// an entry for it was present at all.
func (f File) Lookup(appName string) (version.RequestedVersions, bool) {
	for _, a := range f.Apps {
		if a.AppName == appName {
			return a.Versions, true
		}
	}
	return nil, false
}

// Upsert replaces the entry for appName in place, or appends a new entry at
// the end of the app list. The list itself is not kept sorted; String (and
// so Save) sorts it alphabetically when rendering.
func (f *File) Upsert(appName string, versions version.RequestedVersions) {
	for i, a := range f.Apps {
		if a.AppName == appName {
			f.Apps[i].Versions = versions
			return
		}
	}
	f.Apps = append(f.Apps, AppVersions{AppName: appName, Versions: versions})
}

// String renders the file in its on-disk form: one "<name> <versions...>"
// line per app, sorted alphabetically by app name.
func (f File) String() string {
	sorted := make([]AppVersions, len(f.Apps))
	copy(sorted, f.Apps)
	sortAppVersions(sorted)

	var b strings.Builder
	for _, a := range sorted {
		b.WriteString(a.AppName)
		b.WriteString(" ")
		b.WriteString(a.Versions.Join(" "))
		b.WriteString("\n")
	}
	return b.String()
}

func sortAppVersions(apps []AppVersions) {
	for i := 1; i < len(apps); i++ {
		for j := i; j > 0 && apps[j-1].AppName > apps[j].AppName; j-- {
			apps[j-1], apps[j] = apps[j], apps[j-1]
		}
	}
}

// Find walks from dir up through its ancestors looking for a .tool-versions
// file, returning its absolute path. It returns ("", false, nil) if none of
// the ancestors (up to and including the filesystem root) has one.
func Find(dir string) (string, bool, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false, errors.Wrap(err, "resolve starting directory")
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !os.IsNotExist(err) {
			return "", false, errors.Wrapf(err, "access %q", candidate)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Load locates the nearest .tool-versions file starting at dir and parses
// it. A missing file is not an error: it produces an empty File whose Path
// is where the file would be created (dir/.tool-versions).
func Load(dir string, apps AppLookup) (File, error) {
	path, found, err := Find(dir)
	if err != nil {
		return File{}, err
	}
	if !found {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return File{}, errors.Wrap(err, "resolve starting directory")
		}
		return File{Path: filepath.Join(abs, FileName)}, nil
	}
	text, err := os.ReadFile(path)
	if err != nil {
		return File{}, errors.Wrapf(err, "read %q", path)
	}
	f, err := Parse(string(text), apps)
	if err != nil {
		return File{}, err
	}
	f.Path = path
	return f, nil
}

// Save writes the file to its Path, truncating any previous content.
func (f File) Save() error {
	if f.Path == "" {
		return errors.New("config file has no path to save to")
	}
	if err := os.WriteFile(f.Path, []byte(f.String()), 0o644); err != nil {
		return errors.Wrapf(err, "write %q", f.Path)
	}
	return nil
}

// Create seeds a new .tool-versions file in dir. It fails if one already
// exists there.
func Create(dir string) error {
	path := filepath.Join(dir, FileName)
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return ErrConfigFileAlreadyExists
		}
		return errors.Wrapf(err, "create %q", path)
	}
	defer file.Close()
	_, err = file.WriteString(SeedContent)
	if err != nil {
		return errors.Wrapf(err, "write %q", path)
	}
	return nil
}
