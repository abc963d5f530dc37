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

// NodeJS is the official Node.js distribution, and the carrier app for npm
// and npx, which both ship bundled inside its archive.
type NodeJS struct{}

const (
	nodeOrg  = "nodejs"
	nodeRepo = "node"
)

func (NodeJS) Name() string     { return "node" }
func (NodeJS) Homepage() string { return "https://nodejs.org" }

func (NodeJS) DefaultExecutableName() app.ExecutableName { return "node" }
func (NodeJS) AdditionalExecutables() []app.ExecutableName {
	return []app.ExecutableName{"npm", "npx"}
}

func (NodeJS) RunMethod(v version.Version, p platform.Platform) app.RunMethod {
	binFolder := app.Subfolder(nodeArchiveDir(v, p) + "/bin")
	return app.ThisApp(app.DownloadArchive(nodeDownloadURL(v, p), binFolder))
}

// nodeArchiveDir is the top-level directory every node.org tarball/zip
// extracts into, e.g. "node-v20.10.0-linux-arm64".
func nodeArchiveDir(v version.Version, p platform.Platform) string {
	return fmt.Sprintf("node-v%s-%s-%s", v.String(), nodeOSText(p.OS), nodeCPUText(p.Cpu))
}

func nodeDownloadURL(v version.Version, p platform.Platform) string {
	return fmt.Sprintf("https://nodejs.org/dist/v%s/%s.%s", v.String(), nodeArchiveDir(v, p), nodeExtText(p.OS))
}

func nodeOSText(os platform.OS) string {
	switch os {
	case platform.Linux:
		return "linux"
	case platform.MacOS:
		return "darwin"
	case platform.Windows:
		return "win"
	}
	return ""
}

func nodeCPUText(cpu platform.Cpu) string {
	switch cpu {
	case platform.Arm64:
		return "arm64"
	case platform.Amd64:
		return "x64"
	}
	return ""
}

func nodeExtText(os platform.OS) string {
	switch os {
	case platform.Linux:
		return "tar.xz"
	case platform.MacOS:
		return "tar.gz"
	case platform.Windows:
		return "zip"
	}
	return ""
}

func (NodeJS) LatestInstallableVersion(log *slog.Logger) (version.Version, error) {
	v, err := (hosting.ReleaseIndex{Org: nodeOrg, Repo: nodeRepo}).Latest()
	if err != nil {
		return version.Version{}, err
	}
	return version.New(v), nil
}

func (NodeJS) InstallableVersions(n int, log *slog.Logger) ([]version.Version, error) {
	raw, err := (hosting.ReleaseIndex{Org: nodeOrg, Repo: nodeRepo}).Versions(n)
	if err != nil {
		return nil, err
	}
	versions := make([]version.Version, 0, len(raw))
	for _, v := range raw {
		versions = append(versions, version.New(v))
	}
	return versions, nil
}

func (NodeJS) AnalyzeExecutable(path string, log *slog.Logger) (app.AnalyzeResult, error) {
	output, err := runOutput(path, []string{"-h"}, log)
	if err != nil {
		return app.AnalyzeResult{}, err
	}
	if !strings.Contains(output, "Documentation can be found at https://nodejs.org") {
		return app.AnalyzeResult{Outcome: app.NotIdentified}, nil
	}
	output, err = runOutput(path, []string{"--version"}, log)
	if err != nil {
		return app.AnalyzeResult{}, err
	}
	if v, err := extractVersion(output, `v(\d+\.\d+\.\d+)`); err == nil {
		return app.AnalyzeResult{Outcome: app.IdentifiedWithVersion, Version: version.New(v)}, nil
	}
	return app.AnalyzeResult{Outcome: app.IdentifiedButUnknownVersion}, nil
}

func (NodeJS) AllowedVersions() (string, error) {
	content, err := readFileIfExists("package.json")
	if err != nil {
		return "", err
	}
	if content == "" {
		return "*", nil
	}
	v, err := extractVersion(content, `"engines"\s*:\s*\{[^}]*"node"\s*:\s*"([^"]+)"`)
	if err != nil {
		return "*", nil
	}
	return v, nil
}
