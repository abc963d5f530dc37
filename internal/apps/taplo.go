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

// Taplo is a TOML toolkit, used here as a linter/formatter.
type Taplo struct{}

const (
	taploOrg  = "tamasfe"
	taploRepo = "taplo"
)

func (Taplo) Name() string     { return "taplo" }
func (Taplo) Homepage() string { return "https://github.com/" + taploOrg + "/" + taploRepo }

func (Taplo) DefaultExecutableName() app.ExecutableName   { return "taplo" }
func (Taplo) AdditionalExecutables() []app.ExecutableName { return nil }

func (Taplo) RunMethod(v version.Version, p platform.Platform) app.RunMethod {
	return app.ThisApp(
		app.DownloadArchive(taploDownloadURL(v, p), app.Root()),
		app.CompileRustSource("taplo-cli"),
	)
}

func taploDownloadURL(v version.Version, p platform.Platform) string {
	return fmt.Sprintf("https://github.com/%s/%s/releases/download/%s/taplo-%s-%s.%s",
		taploOrg, taploRepo, v.String(), taploOSText(p.OS), taploCPUText(p.Cpu), taploExtText(p.OS))
}

func taploOSText(os platform.OS) string {
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

func taploCPUText(cpu platform.Cpu) string {
	switch cpu {
	case platform.Arm64:
		return "aarch64"
	case platform.Amd64:
		return "x86_64"
	}
	return ""
}

func taploExtText(os platform.OS) string {
	if os == platform.Windows {
		return "zip"
	}
	return "gz"
}

func (Taplo) LatestInstallableVersion(log *slog.Logger) (version.Version, error) {
	v, err := (hosting.ReleaseIndex{Org: taploOrg, Repo: taploRepo}).Latest()
	if err != nil {
		return version.Version{}, err
	}
	return version.New(v), nil
}

func (Taplo) InstallableVersions(n int, log *slog.Logger) ([]version.Version, error) {
	raw, err := (hosting.ReleaseIndex{Org: taploOrg, Repo: taploRepo}).Versions(n)
	if err != nil {
		return nil, err
	}
	versions := make([]version.Version, 0, len(raw))
	for _, v := range raw {
		versions = append(versions, version.New(v))
	}
	return versions, nil
}

func (Taplo) AnalyzeExecutable(path string, log *slog.Logger) (app.AnalyzeResult, error) {
	output, err := runOutput(path, []string{"-h"}, log)
	if err != nil {
		return app.AnalyzeResult{}, err
	}
	if !strings.Contains(output, "Lint TOML documents") {
		return app.AnalyzeResult{Outcome: app.NotIdentified}, nil
	}
	output, err = runOutput(path, []string{"-V"}, log)
	if err != nil {
		return app.AnalyzeResult{}, err
	}
	if v, err := extractVersion(output, `taplo (\d+\.\d+\.\d+)`); err == nil {
		return app.AnalyzeResult{Outcome: app.IdentifiedWithVersion, Version: version.New(v)}, nil
	}
	return app.AnalyzeResult{Outcome: app.IdentifiedButUnknownVersion}, nil
}

func (Taplo) AllowedVersions() (string, error) {
	return "*", nil
}
