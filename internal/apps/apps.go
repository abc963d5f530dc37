// Package apps holds the concrete catalog entries rta ships with: plain data
// records implementing app.Definition, one file per tool. Behavior lives in
// pure functions over their fields, following the teacher's style of small,
// declarative per-concern types rather than inheritance.
package apps

import (
	"log/slog"
	"os"
	"os/exec"
	"regexp"

	"github.com/kolide/rta/internal/app"
	"github.com/pkg/errors"
)

// ErrNoVersionsFound means a hosting adapter returned zero tags/releases for
// an app that is supposed to have at least one.
var ErrNoVersionsFound = errors.New("no installable versions found")

// ErrPatternNotFound means extractVersion's regular expression had no match
// in an executable's output.
var ErrPatternNotFound = errors.New("pattern not found in output")

// runOutput invokes path with args and returns its combined stdout+stderr,
// used by AnalyzeExecutable implementations to fingerprint a candidate
// executable. A non-zero exit is not treated as an error: many tools (e.g.
// "-h") exit 1 while still printing the text we're looking for.
func runOutput(path string, args []string, log *slog.Logger) (string, error) {
	cmd := exec.Command(path, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if _, isExitErr := err.(*exec.ExitError); !isExitErr {
			if log != nil {
				log.Debug("failed to run executable for analysis", "path", path, "err", err)
			}
			return "", errors.Wrapf(err, "run %q", path)
		}
	}
	return string(output), nil
}

// extractVersion returns the first capture group of pattern found in
// output, the common shape of every app's version-from-output regular
// expression.
func extractVersion(output, pattern string) (string, error) {
	re := regexp.MustCompile(pattern)
	matches := re.FindStringSubmatch(output)
	if len(matches) < 2 {
		return "", ErrPatternNotFound
	}
	return matches[1], nil
}

// readFileIfExists returns the content of path, or "" if it doesn't exist.
// Used by AllowedVersions implementations that derive a semver range from a
// workspace file (go.mod, package.json) that may simply be absent.
func readFileIfExists(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrapf(err, "read %q", path)
	}
	return string(content), nil
}

// All returns the ten concrete catalog entries rta ships with, in the order
// new users most likely reach for them.
func All() []app.Definition {
	return []app.Definition{
		Go{},
		NodeJS{},
		Npm{},
		Npx{},
		Gh{},
		ActionLint{},
		ShellCheck{},
		Dprint{},
		StaticCheck{},
		Taplo{},
	}
}
