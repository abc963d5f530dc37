package apps_test

import (
	"testing"

	"github.com/kolide/rta/internal/app"
	"github.com/kolide/rta/internal/apps"
	"github.com/kolide/rta/internal/platform"
	"github.com/kolide/rta/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGh_RunMethod_linux(t *testing.T) {
	rm := (apps.Gh{}).RunMethod(version.New("2.39.1"), platform.Platform{OS: platform.Linux, Cpu: platform.Amd64})
	require.Equal(t, app.RunThisApp, rm.Kind)
	require.Len(t, rm.InstallMethods, 1)
	assert.Equal(t, "https://github.com/cli/cli/releases/download/v2.39.1/gh_2.39.1_linux_amd64.tar.gz", rm.InstallMethods[0].URL)
	assert.Equal(t, "gh_2.39.1_linux_amd64/bin/gh", rm.InstallMethods[0].BinFolder.ExecutablePath("", "gh"))
}

func TestGh_RunMethod_windowsUsesRootBin(t *testing.T) {
	rm := (apps.Gh{}).RunMethod(version.New("2.39.1"), platform.Platform{OS: platform.Windows, Cpu: platform.Amd64})
	assert.Equal(t, "https://github.com/cli/cli/releases/download/v2.39.1/gh_2.39.1_windows_amd64.zip", rm.InstallMethods[0].URL)
	assert.Equal(t, "bin/gh.exe", rm.InstallMethods[0].BinFolder.ExecutablePath("", "gh.exe"))
}

func TestGh_RunMethod_macOS(t *testing.T) {
	rm := (apps.Gh{}).RunMethod(version.New("2.39.1"), platform.Platform{OS: platform.MacOS, Cpu: platform.Arm64})
	assert.Equal(t, "https://github.com/cli/cli/releases/download/v2.39.1/gh_2.39.1_macOS_arm64.zip", rm.InstallMethods[0].URL)
}

func TestGh_AllowedVersions(t *testing.T) {
	v, err := (apps.Gh{}).AllowedVersions()
	require.NoError(t, err)
	assert.Equal(t, "*", v)
}
