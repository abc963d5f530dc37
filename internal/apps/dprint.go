package apps

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kolide/rta/internal/app"
	"github.com/kolide/rta/internal/hosting"
	"github.com/kolide/rta/internal/platform"
	"github.com/kolide/rta/internal/version"
)

// Dprint is a pluggable code formatter.
type Dprint struct{}

const (
	dprintOrg  = "dprint"
	dprintRepo = "dprint"
)

func (Dprint) Name() string     { return "dprint" }
func (Dprint) Homepage() string { return "https://dprint.dev" }

func (Dprint) DefaultExecutableName() app.ExecutableName   { return "dprint" }
func (Dprint) AdditionalExecutables() []app.ExecutableName { return nil }

// RunMethod downloads a prebuilt archive first and falls back to compiling
// the crate with cargo, the same DownloadArchive+CompileRustSource ordering
// taplo uses.
func (Dprint) RunMethod(v version.Version, p platform.Platform) app.RunMethod {
	return app.ThisApp(
		app.DownloadArchive(dprintDownloadURL(v, p), app.Root()),
		app.CompileRustSource("dprint"),
	)
}

func dprintDownloadURL(v version.Version, p platform.Platform) string {
	return fmt.Sprintf("https://github.com/%s/%s/releases/download/%s/dprint-%s-%s.zip",
		dprintOrg, dprintRepo, v.String(), dprintCPUText(p.Cpu), dprintOSText(p.OS))
}

func dprintCPUText(cpu platform.Cpu) string {
	switch cpu {
	case platform.Arm64:
		return "aarch64"
	case platform.Amd64:
		return "x86_64"
	}
	return ""
}

func dprintOSText(os platform.OS) string {
	switch os {
	case platform.Linux:
		return "unknown-linux-gnu"
	case platform.MacOS:
		return "apple-darwin"
	case platform.Windows:
		return "pc-windows-msvc"
	}
	return ""
}

func (Dprint) LatestInstallableVersion(log *slog.Logger) (version.Version, error) {
	v, err := (hosting.ReleaseIndex{Org: dprintOrg, Repo: dprintRepo}).Latest()
	if err != nil {
		return version.Version{}, err
	}
	return version.New(v), nil
}

func (Dprint) InstallableVersions(n int, log *slog.Logger) ([]version.Version, error) {
	raw, err := (hosting.ReleaseIndex{Org: dprintOrg, Repo: dprintRepo}).Versions(n)
	if err != nil {
		return nil, err
	}
	versions := make([]version.Version, 0, len(raw))
	for _, v := range raw {
		versions = append(versions, version.New(v))
	}
	return versions, nil
}

func (Dprint) AnalyzeExecutable(path string, log *slog.Logger) (app.AnalyzeResult, error) {
	output, err := runOutput(path, []string{"-h"}, log)
	if err != nil {
		return app.AnalyzeResult{}, err
	}
	if !strings.Contains(output, "Auto-formats source code based on the specified plugins") {
		return app.AnalyzeResult{Outcome: app.NotIdentified}, nil
	}
	output, err = runOutput(path, []string{"--version"}, log)
	if err != nil {
		return app.AnalyzeResult{}, err
	}
	if v, err := extractVersion(output, `dprint (\d+\.\d+\.\d+)`); err == nil {
		return app.AnalyzeResult{Outcome: app.IdentifiedWithVersion, Version: version.New(v)}, nil
	}
	return app.AnalyzeResult{Outcome: app.IdentifiedButUnknownVersion}, nil
}

func (Dprint) AllowedVersions() (string, error) {
	return "*", nil
}
