package apps

import (
	"log/slog"
	"strings"

	"github.com/kolide/rta/internal/app"
	"github.com/kolide/rta/internal/platform"
	"github.com/kolide/rta/internal/version"
)

// Npx runs packages from npm's registry without installing them globally.
// Like npm, it ships inside node's own archive as a sibling executable.
type Npx struct{}

func (Npx) Name() string     { return "npx" }
func (Npx) Homepage() string { return "https://www.npmjs.com" }

func (Npx) DefaultExecutableName() app.ExecutableName   { return "npx" }
func (Npx) AdditionalExecutables() []app.ExecutableName { return nil }

func (Npx) RunMethod(v version.Version, p platform.Platform) app.RunMethod {
	return app.OtherAppOtherExecutable("node", "npx")
}

func (Npx) LatestInstallableVersion(log *slog.Logger) (version.Version, error) {
	return (NodeJS{}).LatestInstallableVersion(log)
}

func (Npx) InstallableVersions(n int, log *slog.Logger) ([]version.Version, error) {
	return (NodeJS{}).InstallableVersions(n, log)
}

func (Npx) AnalyzeExecutable(path string, log *slog.Logger) (app.AnalyzeResult, error) {
	output, err := runOutput(path, []string{"-h"}, log)
	if err != nil {
		return app.AnalyzeResult{}, err
	}
	if !strings.Contains(output, "Run a command from a local or remote npm package") {
		return app.AnalyzeResult{Outcome: app.NotIdentified}, nil
	}
	output, err = runOutput(path, []string{"--version"}, log)
	if err != nil {
		return app.AnalyzeResult{}, err
	}
	if v, err := extractVersion(output, `(\d+\.\d+\.\d+)`); err == nil {
		return app.AnalyzeResult{Outcome: app.IdentifiedWithVersion, Version: version.New(v)}, nil
	}
	return app.AnalyzeResult{Outcome: app.IdentifiedButUnknownVersion}, nil
}

func (Npx) AllowedVersions() (string, error) {
	return (NodeJS{}).AllowedVersions()
}
