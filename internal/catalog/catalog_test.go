package catalog_test

import (
	"log/slog"
	"testing"

	"github.com/kolide/rta/internal/app"
	"github.com/kolide/rta/internal/catalog"
	"github.com/kolide/rta/internal/platform"
	"github.com/kolide/rta/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubApp struct {
	name string
}

func (s stubApp) Name() string                                { return s.name }
func (s stubApp) Homepage() string                            { return "https://example.com/" + s.name }
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

func TestNew_rejectsDuplicateNames(t *testing.T) {
	_, err := catalog.New([]app.Definition{stubApp{name: "go"}, stubApp{name: "go"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrDuplicateAppName)
}

func TestFind(t *testing.T) {
	c, err := catalog.New([]app.Definition{stubApp{name: "go"}, stubApp{name: "node"}})
	require.NoError(t, err)

	found, err := c.Find("node")
	require.NoError(t, err)
	assert.Equal(t, "node", found.Name())

	_, err = c.Find("missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrUnknownApp)
}

func TestLongestNameLength(t *testing.T) {
	c, err := catalog.New([]app.Definition{stubApp{name: "go"}, stubApp{name: "actionlint"}})
	require.NoError(t, err)
	assert.Equal(t, len("actionlint"), c.LongestNameLength())
}

type carrierStubApp struct {
	stubApp
	carrier string
}

func (s carrierStubApp) RunMethod(version.Version, platform.Platform) app.RunMethod {
	return app.OtherAppDefaultExecutable(s.carrier)
}

func TestNew_rejectsCarrierThatItselfDelegates(t *testing.T) {
	_, err := catalog.New([]app.Definition{
		carrierStubApp{stubApp: stubApp{name: "go"}, carrier: "node"},
		stubApp{name: "node"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrCarrierHasCarrier)
}

func TestIsCarrier(t *testing.T) {
	assert.True(t, catalog.IsCarrier("go"))
	assert.True(t, catalog.IsCarrier("node"))
	assert.True(t, catalog.IsCarrier("cargo"))
	assert.False(t, catalog.IsCarrier("actionlint"))
}
