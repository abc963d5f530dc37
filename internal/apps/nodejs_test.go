package apps_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kolide/rta/internal/app"
	"github.com/kolide/rta/internal/apps"
	"github.com/kolide/rta/internal/platform"
	"github.com/kolide/rta/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeJS_RunMethod(t *testing.T) {
	n := apps.NodeJS{}
	rm := n.RunMethod(version.New("20.10.0"), platform.Platform{OS: platform.Linux, Cpu: platform.Arm64})
	require.Equal(t, app.RunThisApp, rm.Kind)
	require.Len(t, rm.InstallMethods, 1)
	assert.Equal(t, "https://nodejs.org/dist/v20.10.0/node-v20.10.0-linux-arm64.tar.xz", rm.InstallMethods[0].URL)
	assert.Equal(t, "node-v20.10.0-linux-arm64/bin/node", rm.InstallMethods[0].BinFolder.ExecutablePath("", "node"))
}

func TestNodeJS_RunMethod_macDownload(t *testing.T) {
	n := apps.NodeJS{}
	rm := n.RunMethod(version.New("20.10.0"), platform.Platform{OS: platform.MacOS, Cpu: platform.Amd64})
	assert.Equal(t, "https://nodejs.org/dist/v20.10.0/node-v20.10.0-darwin-x64.tar.gz", rm.InstallMethods[0].URL)
}

func TestNodeJS_RunMethod_windowsDownload(t *testing.T) {
	n := apps.NodeJS{}
	rm := n.RunMethod(version.New("20.10.0"), platform.Platform{OS: platform.Windows, Cpu: platform.Amd64})
	assert.Equal(t, "https://nodejs.org/dist/v20.10.0/node-v20.10.0-win-x64.zip", rm.InstallMethods[0].URL)
}

func TestNodeJS_AdditionalExecutables(t *testing.T) {
	assert.Equal(t, []app.ExecutableName{"npm", "npx"}, (apps.NodeJS{}).AdditionalExecutables())
}

func TestNodeJS_AllowedVersions_noPackageJSON(t *testing.T) {
	withTempDir(t)
	v, err := (apps.NodeJS{}).AllowedVersions()
	require.NoError(t, err)
	assert.Equal(t, "*", v)
}

func TestNodeJS_AllowedVersions_withEnginesField(t *testing.T) {
	dir := withTempDir(t)
	content := `{"name": "x", "engines": {"node": ">=18.0.0"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(content), 0o644))
	v, err := (apps.NodeJS{}).AllowedVersions()
	require.NoError(t, err)
	assert.Equal(t, ">=18.0.0", v)
}
