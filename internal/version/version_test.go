package version_test

import (
	"testing"

	"github.com/kolide/rta/internal/version"
	"github.com/stretchr/testify/assert"
)

func TestCompare_semantic(t *testing.T) {
	bigger := version.New("3.10.2")
	smaller := version.New("3.2.1")
	assert.True(t, bigger.GreaterThan(smaller))
}

func TestCompare_preRelease(t *testing.T) {
	preRelease := version.New("1.2.3-alpha")
	final := version.New("1.2.3")
	assert.True(t, preRelease.LessThan(final))
}

func TestCompare_nonSemverFallsBackToLexicographic(t *testing.T) {
	// go's own version tags aren't semver ("go1.21.5"), so comparing two of
	// them falls back to lexicographic ordering -- which, as here, doesn't
	// always agree with numeric ordering ("1.21.5" sorts before "1.9.5").
	v121 := version.New("go1.21.5")
	v9 := version.New("go1.9.5")
	assert.True(t, v121.LessThan(v9))
}

func TestString(t *testing.T) {
	assert.Equal(t, "1.2.3", version.New("1.2.3").String())
}
