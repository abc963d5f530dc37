package app

import (
	"log/slog"

	"github.com/kolide/rta/internal/platform"
	"github.com/kolide/rta/internal/version"
)

// Definition describes one cataloged tool: its identity, how to install it
// for a given (version, platform), and how to recognize an already-present
// executable as an instance of it. Concrete implementations are plain data
// records in internal/apps; behavior is pure functions over their fields.
type Definition interface {
	// Name is the catalog key: a non-empty lowercase identifier.
	Name() string

	// Homepage is a URL shown in `rta --apps` output.
	Homepage() string

	// DefaultExecutableName is this app's own executable's unix-style base
	// name, before any platform suffix.
	DefaultExecutableName() ExecutableName

	// AdditionalExecutables lists other binaries the same install
	// provides, whose executable bit also needs setting after extraction.
	AdditionalExecutables() []ExecutableName

	// RunMethod reports how to actually invoke this app at the given
	// version on the given platform.
	RunMethod(v version.Version, p platform.Platform) RunMethod

	// InstallableVersions lists up to n of the most recent versions this
	// app could be installed at, newest first.
	InstallableVersions(n int, log *slog.Logger) ([]version.Version, error)

	// LatestInstallableVersion is the newest version InstallableVersions(1, ...)
	// would report.
	LatestInstallableVersion(log *slog.Logger) (version.Version, error)

	// AnalyzeExecutable runs the binary at path with this app's
	// fingerprinting arguments and reports what it found.
	AnalyzeExecutable(path string, log *slog.Logger) (AnalyzeResult, error)

	// AllowedVersions derives a semver range from files in the current
	// workspace (e.g. a go.mod "go" directive), for resolving
	// "system@auto". Apps with no such file return the universal range
	// "*".
	AllowedVersions() (string, error)
}

// ExecutableCall is the fully resolved way to invoke an application:
// the executable to spawn, plus any arguments that must precede the user's
// own (non-empty only when the app is really another app's executable
// invoked with a forwarding shim, e.g. "node npm-cli.js").
type ExecutableCall struct {
	Executable     string
	ArgumentPrefix []string
}
