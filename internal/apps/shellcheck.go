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

// ShellCheck is a static analysis tool for shell scripts.
type ShellCheck struct{}

const (
	shellcheckOrg  = "koalaman"
	shellcheckRepo = "shellcheck"
)

func (ShellCheck) Name() string     { return "shellcheck" }
func (ShellCheck) Homepage() string { return "https://www.shellcheck.net" }

func (ShellCheck) DefaultExecutableName() app.ExecutableName   { return "shellcheck" }
func (ShellCheck) AdditionalExecutables() []app.ExecutableName { return nil }

func (ShellCheck) RunMethod(v version.Version, p platform.Platform) app.RunMethod {
	binFolder := app.Subfolder(fmt.Sprintf("shellcheck-v%s", v.String()))
	return app.ThisApp(app.DownloadArchive(shellcheckDownloadURL(v, p), binFolder))
}

func shellcheckDownloadURL(v version.Version, p platform.Platform) string {
	return fmt.Sprintf("https://github.com/%s/%s/releases/download/v%s/shellcheck-v%s.%s.%s.%s",
		shellcheckOrg, shellcheckRepo, v.String(), v.String(), shellcheckOSText(p.OS), shellcheckCPUText(p.Cpu), shellcheckExtText(p.OS))
}

func shellcheckOSText(os platform.OS) string {
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

func shellcheckCPUText(cpu platform.Cpu) string {
	switch cpu {
	case platform.Arm64:
		return "aarch64"
	case platform.Amd64:
		return "x86_64"
	}
	return ""
}

func shellcheckExtText(os platform.OS) string {
	if os == platform.Windows {
		return "zip"
	}
	return "tar.xz"
}

func (ShellCheck) LatestInstallableVersion(log *slog.Logger) (version.Version, error) {
	v, err := (hosting.ReleaseIndex{Org: shellcheckOrg, Repo: shellcheckRepo}).Latest()
	if err != nil {
		return version.Version{}, err
	}
	return version.New(v), nil
}

func (ShellCheck) InstallableVersions(n int, log *slog.Logger) ([]version.Version, error) {
	raw, err := (hosting.ReleaseIndex{Org: shellcheckOrg, Repo: shellcheckRepo}).Versions(n)
	if err != nil {
		return nil, err
	}
	versions := make([]version.Version, 0, len(raw))
	for _, v := range raw {
		versions = append(versions, version.New(v))
	}
	return versions, nil
}

func (ShellCheck) AnalyzeExecutable(path string, log *slog.Logger) (app.AnalyzeResult, error) {
	output, err := runOutput(path, []string{"--version"}, log)
	if err != nil {
		return app.AnalyzeResult{}, err
	}
	if !strings.Contains(output, "ShellCheck - shell script analysis tool") {
		return app.AnalyzeResult{Outcome: app.NotIdentified}, nil
	}
	if v, err := extractVersion(output, `version: (\d+\.\d+\.\d+)`); err == nil {
		return app.AnalyzeResult{Outcome: app.IdentifiedWithVersion, Version: version.New(v)}, nil
	}
	return app.AnalyzeResult{Outcome: app.IdentifiedButUnknownVersion}, nil
}

func (ShellCheck) AllowedVersions() (string, error) {
	return "*", nil
}
