// Package download fetches artifact bytes from a URL with the 404-is-absent
// semantics the installation engine needs.
package download

import (
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/pkg/errors"
)

// ErrNotOnline is returned when the HTTP transport itself fails.
var ErrNotOnline = errors.New("not online")

// ErrCannotDownload is wrapped with the URL and status/reason when a
// download returns a non-200, non-404 status.
var ErrCannotDownload = errors.New("cannot download")

// Artifact is a file downloaded from the internet: either an archive
// containing an application's executable (and other files), or the
// uncompressed executable itself.
type Artifact struct {
	// Filename is the URL's last path segment; archive extraction
	// dispatches on its suffix.
	Filename string
	Data     []byte
}

// httpClient is overridable in tests.
var httpClient = &http.Client{}

// Fetch downloads the content at url. It returns (nil, nil) on a 404
// response (the caller treats that as "this install method doesn't apply
// here" and moves on), and an error for transport failures or any other
// non-200 status.
func Fetch(url, appName string, optional bool, log *slog.Logger) (*Artifact, error) {
	log.Debug("downloading", "app", appName, "url", url, "optional", optional)

	resp, err := httpClient.Get(url)
	if err != nil {
		return nil, errors.Wrap(ErrNotOnline, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		log.Debug("download not found", "app", appName, "url", url)
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(ErrCannotDownload, "%s: HTTP %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(ErrCannotDownload, "%s: %s", url, err)
	}
	return &Artifact{Filename: filenameFromURL(url), Data: data}, nil
}

// filenameFromURL returns a URL's last path segment, ignoring any query
// string.
func filenameFromURL(url string) string {
	if idx := strings.IndexByte(url, '?'); idx >= 0 {
		url = url[:idx]
	}
	return path.Base(url)
}
