package apps

import (
	"log/slog"
	"strings"

	"github.com/kolide/rta/internal/app"
	"github.com/kolide/rta/internal/platform"
	"github.com/kolide/rta/internal/version"
)

// Npm is node's bundled package manager. It has no install method of its
// own: its functionality is node's default executable run against the
// npm-cli.js script that ships inside node's own archive.
type Npm struct{}

func (Npm) Name() string     { return "npm" }
func (Npm) Homepage() string { return "https://www.npmjs.com" }

func (Npm) DefaultExecutableName() app.ExecutableName   { return "npm" }
func (Npm) AdditionalExecutables() []app.ExecutableName { return nil }

func (Npm) RunMethod(v version.Version, p platform.Platform) app.RunMethod {
	return app.OtherAppDefaultExecutable("node", "../lib/node_modules/npm/bin/npm-cli.js")
}

func (Npm) LatestInstallableVersion(log *slog.Logger) (version.Version, error) {
	return (NodeJS{}).LatestInstallableVersion(log)
}

func (Npm) InstallableVersions(n int, log *slog.Logger) ([]version.Version, error) {
	return (NodeJS{}).InstallableVersions(n, log)
}

func (Npm) AnalyzeExecutable(path string, log *slog.Logger) (app.AnalyzeResult, error) {
	output, err := runOutput(path, []string{"help", "npm"}, log)
	if err != nil {
		return app.AnalyzeResult{}, err
	}
	if !strings.Contains(output, "javascript package manager") {
		return app.AnalyzeResult{Outcome: app.NotIdentified}, nil
	}
	// npm is versioned together with node; the bundled npm's own version
	// number isn't meaningful to pin against separately.
	return app.AnalyzeResult{Outcome: app.IdentifiedButUnknownVersion}, nil
}

func (Npm) AllowedVersions() (string, error) {
	return (NodeJS{}).AllowedVersions()
}
