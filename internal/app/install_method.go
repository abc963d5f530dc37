package app

// InstallMethodKind is the closed set of ways rta knows how to materialize
// an application's executable on disk.
type InstallMethodKind int

const (
	// InstallDownloadArchive downloads and extracts an archive containing
	// the executable.
	InstallDownloadArchive InstallMethodKind = iota
	// InstallDownloadExecutable downloads a single precompiled binary.
	InstallDownloadExecutable
	// InstallCompileGoSource compiles the tool with `go install`.
	InstallCompileGoSource
	// InstallCompileRustSource compiles the tool with `cargo install`.
	InstallCompileRustSource
)

// InstallMethod is one of the four closed installation strategies a
// Definition can offer for a given (version, platform). Only the fields
// relevant to Kind are populated; see the per-kind constructors.
type InstallMethod struct {
	Kind InstallMethodKind

	// URL is used by InstallDownloadArchive and InstallDownloadExecutable.
	URL string
	// BinFolder is used by InstallDownloadArchive to locate executables
	// within the extracted archive, and by InstallCompileRustSource to
	// locate them under cargo's --root.
	BinFolder BinFolder

	// ImportPath is used by InstallCompileGoSource, e.g.
	// "github.com/rhysd/actionlint/cmd/actionlint@v1.6.26".
	ImportPath string

	// CrateName is used by InstallCompileRustSource.
	CrateName string
}

// DownloadArchive installs by downloading and extracting an archive.
func DownloadArchive(url string, bin BinFolder) InstallMethod {
	return InstallMethod{Kind: InstallDownloadArchive, URL: url, BinFolder: bin}
}

// DownloadExecutable installs by downloading a raw executable file.
func DownloadExecutable(url string) InstallMethod {
	return InstallMethod{Kind: InstallDownloadExecutable, URL: url}
}

// CompileGoSource installs by running `go install <importPath>`.
func CompileGoSource(importPath string) InstallMethod {
	return InstallMethod{Kind: InstallCompileGoSource, ImportPath: importPath}
}

// CompileRustSource installs by running `cargo install <crateName>`. cargo
// always places the built binaries under "bin" inside --root regardless of
// the crate, so BinFolder is fixed at Subfolder("bin") rather than taken as
// a parameter.
func CompileRustSource(crateName string) InstallMethod {
	return InstallMethod{Kind: InstallCompileRustSource, CrateName: crateName, BinFolder: Subfolder("bin")}
}

// Name renders a short human-readable description of this method for an
// app@version, used in log messages.
func (m InstallMethod) Name(appName string, v string) string {
	switch m.Kind {
	case InstallDownloadArchive:
		return "download archive for " + appName + "@" + v
	case InstallDownloadExecutable:
		return "download executable for " + appName + "@" + v
	case InstallCompileGoSource:
		return "compile " + appName + "@" + v + " from source"
	case InstallCompileRustSource:
		return "compile " + appName + "@" + v + " from source"
	default:
		return "install " + appName + "@" + v
	}
}
