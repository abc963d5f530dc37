package platform_test

import (
	"testing"

	"github.com/kolide/rta/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	p, err := platform.Detect()
	require.NoError(t, err)
	assert.NotEmpty(t, p.OS)
	assert.NotEmpty(t, p.Cpu)
}

func TestExecutableSuffix(t *testing.T) {
	assert.Equal(t, ".exe", platform.Platform{OS: platform.Windows}.ExecutableSuffix())
	assert.Equal(t, "", platform.Platform{OS: platform.Linux}.ExecutableSuffix())
	assert.Equal(t, "", platform.Platform{OS: platform.MacOS}.ExecutableSuffix())
}

func TestString(t *testing.T) {
	assert.Equal(t, "linux/arm64", platform.Platform{OS: platform.Linux, Cpu: platform.Arm64}.String())
}
