// Package version models the version strings rta juggles: the version an
// application reports, the version a user requests, and the ordering
// between them. Most tools this catalog wraps tag releases with semver, but
// a few don't (Go's own "go1.21.5"), so ordering falls back to lexicographic
// comparison whenever either side fails to parse as semver.
package version

import (
	"strings"

	"github.com/Masterminds/semver"
)

// Version is the version of an application, either reported by an installed
// executable or read out of a .tool-versions file. It is an opaque string:
// rta never requires a version to be valid semver, since several of the
// catalog's tools are not.
type Version struct {
	raw string
}

// New wraps a raw version string, e.g. "1.21.5" or "go1.21.5".
func New(raw string) Version {
	return Version{raw: raw}
}

func (v Version) String() string {
	return v.raw
}

// IsZero reports whether this is the empty Version.
func (v Version) IsZero() bool {
	return v.raw == ""
}

// Compare orders two versions: semantically when both parse as semver, and
// lexicographically otherwise. This mirrors the "almost always semver, but
// not always" reality of the tools rta installs.
func (v Version) Compare(other Version) int {
	vSemver, err1 := semver.NewVersion(v.raw)
	otherSemver, err2 := semver.NewVersion(other.raw)
	if err1 == nil && err2 == nil {
		return vSemver.Compare(otherSemver)
	}
	return strings.Compare(v.raw, other.raw)
}

// LessThan reports whether v orders before other.
func (v Version) LessThan(other Version) bool {
	return v.Compare(other) < 0
}

// GreaterThan reports whether v orders after other.
func (v Version) GreaterThan(other Version) bool {
	return v.Compare(other) > 0
}

// Equal reports whether v and other are the same version string.
func (v Version) Equal(other Version) bool {
	return v.raw == other.raw
}
