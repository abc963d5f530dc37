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

func TestNpx_RunMethod_isNodeSibling(t *testing.T) {
	rm := (apps.Npx{}).RunMethod(version.New("10.2.3"), platform.Platform{OS: platform.Linux, Cpu: platform.Amd64})
	require.Equal(t, app.RunOtherAppOtherExecutable, rm.Kind)
	assert.Equal(t, "node", rm.CarrierApp)
	assert.Equal(t, app.ExecutableName("npx"), rm.OtherExecutable)
}
