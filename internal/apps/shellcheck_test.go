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

func TestShellCheck_RunMethod(t *testing.T) {
	rm := (apps.ShellCheck{}).RunMethod(version.New("0.9.0"), platform.Platform{OS: platform.Linux, Cpu: platform.Arm64})
	require.Equal(t, app.RunThisApp, rm.Kind)
	require.Len(t, rm.InstallMethods, 1)
	assert.Equal(t, "https://github.com/koalaman/shellcheck/releases/download/v0.9.0/shellcheck-v0.9.0.linux.aarch64.tar.xz", rm.InstallMethods[0].URL)
	assert.Equal(t, "shellcheck-v0.9.0/shellcheck", rm.InstallMethods[0].BinFolder.ExecutablePath("", "shellcheck"))
}

func TestShellCheck_RunMethod_windowsZip(t *testing.T) {
	rm := (apps.ShellCheck{}).RunMethod(version.New("0.9.0"), platform.Platform{OS: platform.Windows, Cpu: platform.Amd64})
	assert.Equal(t, "https://github.com/koalaman/shellcheck/releases/download/v0.9.0/shellcheck-v0.9.0.windows.x86_64.zip", rm.InstallMethods[0].URL)
}
