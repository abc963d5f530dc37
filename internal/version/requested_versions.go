package version

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrRunRequestMissingVersion is returned when a run is requested for an
// application that has no CLI-supplied version and no entry in the config
// file.
var ErrRunRequestMissingVersion = errors.New("no version requested and no entry found in .tool-versions")

// RequestedVersions is the ordered list of version requirements configured
// for an application, e.g. the right-hand side of a .tool-versions line
// such as "node 20.1.0 system@>=18". Most applications have exactly one
// entry; several are listed only to support the "run against whichever
// satisfies either" use case.
type RequestedVersions []RequestedVersion

// Join renders every entry's Display form joined by sep, e.g. for log
// messages and error text listing what was requested.
func (rs RequestedVersions) Join(sep string) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = r.String()
	}
	return strings.Join(parts, sep)
}

// LargestYard returns the largest KindYard version in this collection, and
// whether one was present at all (a collection containing only KindPath
// entries has none).
func (rs RequestedVersions) LargestYard() (Version, bool) {
	var largest Version
	found := false
	for _, r := range rs {
		if r.Kind != KindYard {
			continue
		}
		if !found || r.Yard.GreaterThan(largest) {
			largest = r.Yard
			found = true
		}
	}
	return largest, found
}

// UpdateLargestWith replaces every occurrence of the largest KindYard
// version in this collection with value, mutating in place, and returns the
// version that was replaced. This is how rta keeps a .tool-versions file's
// pinned version current when `rta --update` finds a newer release: it reports the
// previous largest so the caller can log what changed.
func (rs RequestedVersions) UpdateLargestWith(value Version) (Version, bool) {
	largest, found := rs.LargestYard()
	if !found {
		return Version{}, false
	}
	if largest.Equal(value) {
		return Version{}, false
	}
	var replaced Version
	replacedAny := false
	for i, r := range rs {
		if r.Kind != KindYard {
			continue
		}
		if r.Yard.Equal(largest) {
			replaced = r.Yard
			replacedAny = true
			rs[i].Yard = value
		}
	}
	return replaced, replacedAny
}
