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

// ActionLint lints GitHub Actions workflow files.
type ActionLint struct{}

const (
	actionlintOrg  = "rhysd"
	actionlintRepo = "actionlint"
)

func (ActionLint) Name() string     { return "actionlint" }
func (ActionLint) Homepage() string { return "https://rhysd.github.io/actionlint" }

func (ActionLint) DefaultExecutableName() app.ExecutableName   { return "actionlint" }
func (ActionLint) AdditionalExecutables() []app.ExecutableName { return nil }

// RunMethod offers download first and falls back to compiling from Go
// source, exercising the installation engine's method-ordering rule (S1).
func (ActionLint) RunMethod(v version.Version, p platform.Platform) app.RunMethod {
	importPath := fmt.Sprintf("github.com/%s/%s/cmd/actionlint@v%s", actionlintOrg, actionlintRepo, v.String())
	return app.ThisApp(
		app.DownloadArchive(actionlintDownloadURL(v, p), app.Root()),
		app.CompileGoSource(importPath),
	)
}

func actionlintDownloadURL(v version.Version, p platform.Platform) string {
	return fmt.Sprintf("https://github.com/%s/%s/releases/download/v%s/actionlint_%s_%s_%s.%s",
		actionlintOrg, actionlintRepo, v.String(), v.String(), actionlintOSText(p.OS), actionlintCPUText(p.Cpu), actionlintExtText(p.OS))
}

func actionlintOSText(os platform.OS) string {
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

func actionlintCPUText(cpu platform.Cpu) string {
	switch cpu {
	case platform.Arm64:
		return "arm64"
	case platform.Amd64:
		return "amd64"
	}
	return ""
}

func actionlintExtText(os platform.OS) string {
	if os == platform.Windows {
		return "zip"
	}
	return "tar.gz"
}

func (ActionLint) LatestInstallableVersion(log *slog.Logger) (version.Version, error) {
	v, err := (hosting.ReleaseIndex{Org: actionlintOrg, Repo: actionlintRepo}).Latest()
	if err != nil {
		return version.Version{}, err
	}
	return version.New(v), nil
}

func (ActionLint) InstallableVersions(n int, log *slog.Logger) ([]version.Version, error) {
	raw, err := (hosting.ReleaseIndex{Org: actionlintOrg, Repo: actionlintRepo}).Versions(n)
	if err != nil {
		return nil, err
	}
	versions := make([]version.Version, 0, len(raw))
	for _, v := range raw {
		versions = append(versions, version.New(v))
	}
	return versions, nil
}

func (ActionLint) AnalyzeExecutable(path string, log *slog.Logger) (app.AnalyzeResult, error) {
	output, err := runOutput(path, []string{"-h"}, log)
	if err != nil {
		return app.AnalyzeResult{}, err
	}
	if !strings.Contains(output, "actionlint is a linter for GitHub Actions workflow files") {
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

func (ActionLint) AllowedVersions() (string, error) {
	return "*", nil
}
