// Package hosting queries remote release/tag indexes for the versions an
// application is available at. It never downloads artifacts itself --
// that's internal/download's job -- only the version lists used to satisfy
// `rta --versions` and "latest" lookups.
package hosting

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// programVersion is sent in the User-Agent header GitHub requires.
var programVersion = "dev"

// SetProgramVersion overrides the version string sent in request headers.
// Called once from cmd/rta/main.go with the build version.
func SetProgramVersion(v string) {
	programVersion = v
}

// ErrNotOnline is returned when the HTTP transport itself fails (DNS, TCP,
// TLS -- anything short of getting a response).
var ErrNotOnline = errors.New("not online")

// ErrAPIProblem is wrapped with the response body when a hosting API
// returns something that isn't the JSON shape expected.
var ErrAPIProblem = errors.New("hosting API problem")

// httpClient is overridable in tests.
var httpClient = &http.Client{}

func getJSON(url string, out any) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrapf(err, "build request for %q", url)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "rta-"+programVersion)
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	resp, err := httpClient.Do(req)
	if err != nil {
		return errors.Wrap(ErrNotOnline, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(ErrNotOnline, err.Error())
	}
	if resp.StatusCode != http.StatusOK {
		return errors.Wrapf(ErrAPIProblem, "status %d: %s", resp.StatusCode, truncate(string(body), 500))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrapf(ErrAPIProblem, "%s: %s", err, truncate(string(body), 500))
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// stripLeadingV strips a single leading "v" from a version tag, e.g.
// "v1.6.26" -> "1.6.26". Tags without it (e.g. Go's "go1.21.5") pass
// through unchanged.
func stripLeadingV(tag string) string {
	return strings.TrimPrefix(tag, "v")
}

func clampPerPage(n int) int {
	if n <= 0 {
		return 10
	}
	if n > 100 {
		return 100
	}
	return n
}
