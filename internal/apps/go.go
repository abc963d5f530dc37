package apps

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/kolide/rta/internal/app"
	"github.com/kolide/rta/internal/hosting"
	"github.com/kolide/rta/internal/platform"
	"github.com/kolide/rta/internal/version"
	"github.com/pkg/errors"
	"golang.org/x/mod/modfile"
)

// Go is the official Go toolchain, installed by downloading the same
// archives https://go.dev/dl serves.
type Go struct{}

const (
	goOrg  = "golang"
	goRepo = "go"
)

func (Go) Name() string     { return "go" }
func (Go) Homepage() string { return "https://go.dev" }

func (Go) DefaultExecutableName() app.ExecutableName { return "go" }
func (Go) AdditionalExecutables() []app.ExecutableName {
	return []app.ExecutableName{"gofmt"}
}

func (Go) RunMethod(v version.Version, p platform.Platform) app.RunMethod {
	osText := map[platform.OS]string{platform.Linux: "linux", platform.MacOS: "darwin", platform.Windows: "windows"}[p.OS]
	cpuText := map[platform.Cpu]string{platform.Arm64: "arm64", platform.Amd64: "amd64"}[p.Cpu]
	ext := "tar.gz"
	if p.OS == platform.Windows {
		ext = "zip"
	}
	versionStr := strings.TrimPrefix(v.String(), "go")
	url := fmt.Sprintf("https://go.dev/dl/go%s.%s-%s.%s", versionStr, osText, cpuText, ext)
	binFolder := app.Subfolder("go/bin")
	return app.ThisApp(app.DownloadArchive(url, binFolder))
}

func (g Go) LatestInstallableVersion(log *slog.Logger) (version.Version, error) {
	versions, err := g.InstallableVersions(1, log)
	if err != nil {
		return version.Version{}, err
	}
	if len(versions) == 0 {
		return version.Version{}, errors.Wrapf(ErrNoVersionsFound, "app %q", g.Name())
	}
	return versions[0], nil
}

func (Go) InstallableVersions(n int, log *slog.Logger) ([]version.Version, error) {
	tags, err := (hosting.TagIndex{Org: goOrg, Repo: goRepo}).Versions(400)
	if err != nil {
		if errors.Is(err, hosting.ErrNotOnline) || errors.Is(err, hosting.ErrAPIProblem) {
			if log != nil {
				log.Debug("github tag index unavailable for go, falling back to pkg.go.dev", "err", err)
			}
			return goVersionsFromPkgGoDev(n)
		}
		return nil, err
	}

	versions := make([]version.Version, 0, len(tags))
	for _, tag := range tags {
		if !strings.HasPrefix(tag, "go") {
			continue
		}
		if strings.Contains(tag, "rc") || strings.Contains(tag, "beta") {
			continue
		}
		versions = append(versions, version.New(strings.TrimPrefix(tag, "go")))
	}
	sort.Slice(versions, func(i, j int) bool { return versions[j].LessThan(versions[i]) })
	if len(versions) > n {
		versions = versions[:n]
	}
	return versions, nil
}

func goVersionsFromPkgGoDev(n int) ([]version.Version, error) {
	raw, err := (hosting.PkgGoDev{ModulePath: "golang.org/dl"}).Versions()
	if err != nil {
		return nil, err
	}
	versions := make([]version.Version, 0, len(raw))
	for _, v := range raw {
		versions = append(versions, version.New(strings.TrimPrefix(v, "v")))
	}
	sort.Slice(versions, func(i, j int) bool { return versions[j].LessThan(versions[i]) })
	if len(versions) > n {
		versions = versions[:n]
	}
	return versions, nil
}

func (Go) AnalyzeExecutable(path string, log *slog.Logger) (app.AnalyzeResult, error) {
	output, err := runOutput(path, []string{"version"}, log)
	if err != nil {
		return app.AnalyzeResult{}, err
	}
	if v, err := extractVersion(output, `go version go(\d+\.\d+\.\d+)`); err == nil {
		return app.AnalyzeResult{Outcome: app.IdentifiedWithVersion, Version: version.New(v)}, nil
	}

	output, err = runOutput(path, []string{"-h"}, log)
	if err != nil {
		return app.AnalyzeResult{}, err
	}
	if strings.Contains(output, "Go is a tool for managing Go source code") {
		return app.AnalyzeResult{Outcome: app.IdentifiedButUnknownVersion}, nil
	}
	return app.AnalyzeResult{Outcome: app.NotIdentified}, nil
}

// AllowedVersions reads the go directive out of go.mod using the same
// parser cmd/go itself uses, so the line's exact formatting (comments,
// trailing whitespace, a toolchain directive alongside it) never trips up a
// hand-rolled pattern.
func (Go) AllowedVersions() (string, error) {
	content, err := readFileIfExists("go.mod")
	if err != nil {
		return "", err
	}
	if content == "" {
		return "*", nil
	}
	f, err := modfile.Parse("go.mod", []byte(content), nil)
	if err != nil || f.Go == nil || f.Go.Version == "" {
		return "*", nil
	}
	return "~" + f.Go.Version, nil
}
