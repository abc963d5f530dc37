package app

import "path/filepath"

// BinFolderKind distinguishes where an install method places executables
// inside an extracted archive.
type BinFolderKind int

const (
	// BinFolderRoot means executables sit at the archive's root.
	BinFolderRoot BinFolderKind = iota
	// BinFolderSubfolder means executables sit under a nested path.
	BinFolderSubfolder
)

// BinFolder locates executables within an installed app's yard folder.
// It is one of two closed variants: Root (BinFolderRoot) or a named
// Subfolder (BinFolderSubfolder, Path set).
type BinFolder struct {
	Kind BinFolderKind
	Path string // only meaningful when Kind == BinFolderSubfolder
}

// Root is the BinFolder for archives whose executables live at the archive
// root.
func Root() BinFolder {
	return BinFolder{Kind: BinFolderRoot}
}

// Subfolder is the BinFolder for archives whose executables live under the
// given relative path, e.g. "go/bin" for the official Go distribution.
func Subfolder(path string) BinFolder {
	return BinFolder{Kind: BinFolderSubfolder, Path: path}
}

// ExecutablePath joins appFolder, this bin folder's path (if any), and
// executableName into the absolute path a tool's executable should live at
// once installed.
func (b BinFolder) ExecutablePath(appFolder, executableName string) string {
	if b.Kind == BinFolderSubfolder {
		return filepath.Join(appFolder, b.Path, executableName)
	}
	return filepath.Join(appFolder, executableName)
}
