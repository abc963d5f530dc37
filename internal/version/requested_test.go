package version_test

import (
	"testing"

	"github.com/kolide/rta/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_yardVersion(t *testing.T) {
	rv, err := version.Parse("1.2.3", nil)
	require.NoError(t, err)
	assert.Equal(t, version.KindYard, rv.Kind)
	assert.Equal(t, "1.2.3", rv.Yard.String())
	assert.Equal(t, "1.2.3", rv.String())
}

func TestParse_systemWithVersion(t *testing.T) {
	rv, err := version.Parse("system@1.2", unusedAllowedVersions)
	require.NoError(t, err)
	assert.Equal(t, version.KindPath, rv.Kind)
	assert.Equal(t, "1.2", rv.PathExpr)
	assert.Equal(t, "system@1.2", rv.String())
}

func TestParse_systemBare(t *testing.T) {
	rv, err := version.Parse("system", unusedAllowedVersions)
	require.NoError(t, err)
	assert.Equal(t, version.KindPath, rv.Kind)
	assert.Equal(t, "*", rv.PathExpr)
}

func TestParse_systemAutoUsesAppsAllowedVersions(t *testing.T) {
	rv, err := version.Parse("system@auto", func() (string, error) { return "1.21", nil })
	require.NoError(t, err)
	assert.Equal(t, version.KindPath, rv.Kind)
	assert.Equal(t, "1.21", rv.PathExpr)
}

func TestParse_invalidSemverRange(t *testing.T) {
	_, err := version.Parse("system@not-a-range!!", unusedAllowedVersions)
	require.Error(t, err)
	assert.ErrorIs(t, err, version.ErrCannotParseSemverRange)
}

func TestPathMatches_range(t *testing.T) {
	rv, err := version.Parse("system@>=1.2", unusedAllowedVersions)
	require.NoError(t, err)
	assert.True(t, rv.PathMatches(version.New("1.3.0")))
	assert.False(t, rv.PathMatches(version.New("1.1.0")))
	// non-semver versions never satisfy a concrete range
	assert.False(t, rv.PathMatches(version.New("go1.21.5")))
}

func TestPathMatches_universalRangeAcceptsAnything(t *testing.T) {
	rv, err := version.Parse("system", unusedAllowedVersions)
	require.NoError(t, err)
	assert.True(t, rv.PathMatches(version.New("go1.21.5")))
}

func unusedAllowedVersions() (string, error) {
	return "*", nil
}
