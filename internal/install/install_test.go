package install_test

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/kolide/rta/internal/app"
	"github.com/kolide/rta/internal/install"
	"github.com/kolide/rta/internal/platform"
	"github.com/kolide/rta/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubApp struct{ name string }

func (s stubApp) Name() string                                { return s.name }
func (s stubApp) Homepage() string                            { return "" }
func (s stubApp) DefaultExecutableName() app.ExecutableName   { return app.ExecutableName(s.name) }
func (s stubApp) AdditionalExecutables() []app.ExecutableName { return nil }
func (s stubApp) RunMethod(version.Version, platform.Platform) app.RunMethod {
	return app.ThisApp()
}
func (s stubApp) InstallableVersions(int, *slog.Logger) ([]version.Version, error) { return nil, nil }
func (s stubApp) LatestInstallableVersion(*slog.Logger) (version.Version, error) {
	return version.Version{}, nil
}
func (s stubApp) AnalyzeExecutable(string, *slog.Logger) (app.AnalyzeResult, error) {
	return app.AnalyzeResult{}, nil
}
func (s stubApp) AllowedVersions() (string, error) { return "*", nil }

func buildTarGz(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	for name, content := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Size: int64(len(content)), Mode: 0o755, Typeflag: tar.TypeReg}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}

func testPlatform() platform.Platform {
	return platform.Platform{OS: platform.Linux, Cpu: platform.Amd64}
}

func TestInstall_downloadArchive(t *testing.T) {
	data := buildTarGz(t, map[string]string{"shellcheck": "binary-content"})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	appFolder := t.TempDir()
	method := app.DownloadArchive(srv.URL+"/shellcheck-0.9.0.tar.gz", app.Root())
	e := install.Engine{Log: slog.Default()}

	outcome, err := e.Install(method, stubApp{name: "shellcheck"}, version.New("0.9.0"), testPlatform(), appFolder, false)
	require.NoError(t, err)
	assert.Equal(t, install.Installed, outcome)

	content, err := os.ReadFile(filepath.Join(appFolder, "shellcheck"))
	require.NoError(t, err)
	assert.Equal(t, "binary-content", string(content))
}

func TestInstall_downloadArchiveNotFoundIsNotInstalled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	appFolder := t.TempDir()
	method := app.DownloadArchive(srv.URL+"/missing.tar.gz", app.Root())
	e := install.Engine{Log: slog.Default()}

	outcome, err := e.Install(method, stubApp{name: "shellcheck"}, version.New("0.9.0"), testPlatform(), appFolder, true)
	require.NoError(t, err)
	assert.Equal(t, install.NotInstalled, outcome)
}

func TestInstall_downloadArchiveMissingExecutableIsError(t *testing.T) {
	data := buildTarGz(t, map[string]string{"README.md": "not the binary"})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	appFolder := t.TempDir()
	method := app.DownloadArchive(srv.URL+"/shellcheck-0.9.0.tar.gz", app.Root())
	e := install.Engine{Log: slog.Default()}

	_, err := e.Install(method, stubApp{name: "shellcheck"}, version.New("0.9.0"), testPlatform(), appFolder, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, install.ErrArchiveDoesNotContainExecutable)
}

func TestInstall_downloadArchiveBareGzIsRenamedToExecutableName(t *testing.T) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, err := gw.Write([]byte("binary-content"))
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}))
	defer srv.Close()

	appFolder := t.TempDir()
	method := app.DownloadArchive(srv.URL+"/taplo-linux-aarch64.gz", app.Root())
	e := install.Engine{Log: slog.Default()}

	outcome, err := e.Install(method, stubApp{name: "taplo"}, version.New("0.9.0"), testPlatform(), appFolder, false)
	require.NoError(t, err)
	assert.Equal(t, install.Installed, outcome)

	content, err := os.ReadFile(filepath.Join(appFolder, "taplo"))
	require.NoError(t, err)
	assert.Equal(t, "binary-content", string(content))
}

func TestInstall_downloadExecutable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("raw-binary"))
	}))
	defer srv.Close()

	appFolder := t.TempDir()
	method := app.DownloadExecutable(srv.URL + "/taplo-linux-amd64")
	e := install.Engine{Log: slog.Default()}

	outcome, err := e.Install(method, stubApp{name: "taplo"}, version.New("0.8.1"), testPlatform(), appFolder, false)
	require.NoError(t, err)
	assert.Equal(t, install.Installed, outcome)

	content, err := os.ReadFile(filepath.Join(appFolder, "taplo"))
	require.NoError(t, err)
	assert.Equal(t, "raw-binary", string(content))
}

func TestEngine_compileRustSourceFailsWithoutCargoOnPath(t *testing.T) {
	e := install.Engine{Log: slog.Default()}
	t.Setenv("PATH", t.TempDir())

	_, err := e.Install(app.CompileRustSource("taplo-cli"), stubApp{name: "taplo"}, version.New("0.8.1"), testPlatform(), t.TempDir(), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, install.ErrRustNotInstalled)
}

func TestEngine_compileGoSourceWithoutGoOnPathAndNoLocatorIsNotInstalled(t *testing.T) {
	e := install.Engine{Log: slog.Default()}
	t.Setenv("PATH", t.TempDir())

	outcome, err := e.Install(app.CompileGoSource("example.com/tool@v1.0.0"), stubApp{name: "tool"}, version.New("1.0.0"), testPlatform(), t.TempDir(), false)
	require.NoError(t, err)
	assert.Equal(t, install.NotInstalled, outcome)
}

func TestAny_softFailureAdvancesToNextMethod(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/404.tar.gz" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("raw-binary"))
	}))
	defer srv.Close()

	appFolder := t.TempDir()
	methods := []app.InstallMethod{
		app.DownloadArchive(srv.URL+"/404.tar.gz", app.Root()),
		app.DownloadExecutable(srv.URL + "/fallback"),
	}
	e := install.Engine{Log: slog.Default()}

	outcome, err := e.Any(methods, stubApp{name: "tool"}, version.New("1.0.0"), testPlatform(), appFolder, true)
	require.NoError(t, err)
	assert.Equal(t, install.Installed, outcome)
}

func TestAny_hardFailureAbortsEvenWhenOptional(t *testing.T) {
	data := buildTarGz(t, map[string]string{"README.md": "no binary here"})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	appFolder := t.TempDir()
	methods := []app.InstallMethod{
		app.DownloadArchive(srv.URL+"/bad.tar.gz", app.Root()),
		app.DownloadExecutable(srv.URL + "/never-reached"),
	}
	e := install.Engine{Log: slog.Default()}

	_, err := e.Any(methods, stubApp{name: "tool"}, version.New("1.0.0"), testPlatform(), appFolder, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, install.ErrArchiveDoesNotContainExecutable)
}
