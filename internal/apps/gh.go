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

// Gh is GitHub's official command line tool.
type Gh struct{}

const (
	ghOrg  = "cli"
	ghRepo = "cli"
)

func (Gh) Name() string     { return "gh" }
func (Gh) Homepage() string { return "https://cli.github.com" }

func (Gh) DefaultExecutableName() app.ExecutableName   { return "gh" }
func (Gh) AdditionalExecutables() []app.ExecutableName { return nil }

func (Gh) RunMethod(v version.Version, p platform.Platform) app.RunMethod {
	binFolder := app.Subfolder("bin")
	if p.OS != platform.Windows {
		binFolder = app.Subfolder(fmt.Sprintf("gh_%s_%s_%s/bin", v.String(), ghOSText(p.OS), ghCPUText(p.Cpu)))
	}
	return app.ThisApp(app.DownloadArchive(ghDownloadURL(v, p), binFolder))
}

func ghDownloadURL(v version.Version, p platform.Platform) string {
	return fmt.Sprintf("https://github.com/%s/%s/releases/download/v%s/gh_%s_%s_%s.%s",
		ghOrg, ghRepo, v.String(), v.String(), ghOSText(p.OS), ghCPUText(p.Cpu), ghExtText(p.OS))
}

func ghOSText(os platform.OS) string {
	switch os {
	case platform.Linux:
		return "linux"
	case platform.MacOS:
		return "macOS"
	case platform.Windows:
		return "windows"
	}
	return ""
}

func ghCPUText(cpu platform.Cpu) string {
	switch cpu {
	case platform.Arm64:
		return "arm64"
	case platform.Amd64:
		return "amd64"
	}
	return ""
}

func ghExtText(os platform.OS) string {
	if os == platform.Linux {
		return "tar.gz"
	}
	return "zip"
}

func (Gh) LatestInstallableVersion(log *slog.Logger) (version.Version, error) {
	v, err := (hosting.ReleaseIndex{Org: ghOrg, Repo: ghRepo}).Latest()
	if err != nil {
		return version.Version{}, err
	}
	return version.New(v), nil
}

func (Gh) InstallableVersions(n int, log *slog.Logger) ([]version.Version, error) {
	raw, err := (hosting.ReleaseIndex{Org: ghOrg, Repo: ghRepo}).Versions(n)
	if err != nil {
		return nil, err
	}
	versions := make([]version.Version, 0, len(raw))
	for _, v := range raw {
		versions = append(versions, version.New(v))
	}
	return versions, nil
}

func (Gh) AnalyzeExecutable(path string, log *slog.Logger) (app.AnalyzeResult, error) {
	output, err := runOutput(path, []string{"-h"}, log)
	if err != nil {
		return app.AnalyzeResult{}, err
	}
	if !strings.Contains(output, "Work seamlessly with GitHub from the command line") {
		return app.AnalyzeResult{Outcome: app.NotIdentified}, nil
	}
	output, err = runOutput(path, []string{"--version"}, log)
	if err != nil {
		return app.AnalyzeResult{}, err
	}
	if v, err := extractVersion(output, `gh version (\d+\.\d+\.\d+)`); err == nil {
		return app.AnalyzeResult{Outcome: app.IdentifiedWithVersion, Version: version.New(v)}, nil
	}
	return app.AnalyzeResult{Outcome: app.IdentifiedButUnknownVersion}, nil
}

func (Gh) AllowedVersions() (string, error) {
	return "*", nil
}
