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

// StaticCheck is a Go static analysis tool.
type StaticCheck struct{}

const (
	staticcheckOrg  = "dominikh"
	staticcheckRepo = "go-tools"
)

func (StaticCheck) Name() string     { return "staticcheck" }
func (StaticCheck) Homepage() string { return "https://staticcheck.dev" }

func (StaticCheck) DefaultExecutableName() app.ExecutableName   { return "staticcheck" }
func (StaticCheck) AdditionalExecutables() []app.ExecutableName { return nil }

func (StaticCheck) RunMethod(v version.Version, p platform.Platform) app.RunMethod {
	importPath := fmt.Sprintf("honnef.co/go/tools/cmd/staticcheck@%s", v.String())
	return app.ThisApp(
		app.DownloadArchive(staticcheckDownloadURL(v, p), app.Subfolder("staticcheck")),
		app.CompileGoSource(importPath),
	)
}

func staticcheckDownloadURL(v version.Version, p platform.Platform) string {
	return fmt.Sprintf("https://github.com/%s/%s/releases/download/%s/staticcheck_%s_%s.tar.gz",
		staticcheckOrg, staticcheckRepo, v.String(), staticcheckOSText(p.OS), staticcheckCPUText(p.Cpu))
}

func staticcheckOSText(os platform.OS) string {
	switch os {
	case platform.Linux:
		return "linux"
	case platform.MacOS:
		return "darwin"
	case platform.Windows:
		return "windows"
	}
	return ""
}

func staticcheckCPUText(cpu platform.Cpu) string {
	switch cpu {
	case platform.Arm64:
		return "arm64"
	case platform.Amd64:
		return "amd64"
	}
	return ""
}

func (StaticCheck) LatestInstallableVersion(log *slog.Logger) (version.Version, error) {
	v, err := (hosting.ReleaseIndex{Org: staticcheckOrg, Repo: staticcheckRepo}).Latest()
	if err != nil {
		return version.Version{}, err
	}
	return version.New(v), nil
}

func (StaticCheck) InstallableVersions(n int, log *slog.Logger) ([]version.Version, error) {
	raw, err := (hosting.ReleaseIndex{Org: staticcheckOrg, Repo: staticcheckRepo}).Versions(n)
	if err != nil {
		return nil, err
	}
	versions := make([]version.Version, 0, len(raw))
	for _, v := range raw {
		versions = append(versions, version.New(v))
	}
	return versions, nil
}

func (StaticCheck) AnalyzeExecutable(path string, log *slog.Logger) (app.AnalyzeResult, error) {
	output, err := runOutput(path, []string{"-h"}, log)
	if err != nil {
		return app.AnalyzeResult{}, err
	}
	if !strings.Contains(output, "Usage: staticcheck [flags] [packages]") {
		return app.AnalyzeResult{Outcome: app.NotIdentified}, nil
	}
	// staticcheck doesn't print its own version in its help text.
	return app.AnalyzeResult{Outcome: app.IdentifiedButUnknownVersion}, nil
}

func (StaticCheck) AllowedVersions() (string, error) {
	return "*", nil
}
