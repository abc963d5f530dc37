package version

import (
	"strings"

	"github.com/Masterminds/semver"
	"github.com/pkg/errors"
)

// Kind distinguishes the two ways a user can request a version.
type Kind int

const (
	// KindYard requests an exact version out of the yard (installing it if
	// absent).
	KindYard Kind = iota
	// KindPath requests an externally installed executable found on PATH,
	// constrained to versions matching a semver range.
	KindPath
)

// ErrCannotParseSemverRange is wrapped with the offending expression when a
// "system@<range>" requirement isn't a valid semver constraint.
var ErrCannotParseSemverRange = errors.New("cannot parse semver range")

// RequestedVersion is the version requirement a user placed on an
// application, either in a .tool-versions file or via a CLI flag. It is one
// of two closed variants: KindYard pins an exact version in the yard,
// KindPath defers to whatever the shell's PATH provides, constrained to a
// semver range.
type RequestedVersion struct {
	Kind Kind

	// Yard holds the requested version when Kind == KindYard.
	Yard Version

	// PathExpr is the constraint's textual form ("*", "^1.2", ...) when
	// Kind == KindPath. Parse validates it; PathMatches re-parses it on
	// use, keeping RequestedVersion a plain comparable value.
	PathExpr string
}

// AllowedVersionsFunc resolves the semver range an application restricts
// itself to when the user requests "system@auto" -- for example Go reads
// this out of a go.mod file's "go" directive.
type AllowedVersionsFunc func() (string, error)

// Parse interprets a requested-version string from a .tool-versions file or
// CLI flag. "system" and "system@<range>" request a PATH-resolved
// executable; anything else names an exact yard version.
func Parse(raw string, allowedVersions AllowedVersionsFunc) (RequestedVersion, error) {
	expr, isSystem := systemExpr(raw)
	if !isSystem {
		return RequestedVersion{Kind: KindYard, Yard: New(raw)}, nil
	}
	if expr == "auto" {
		resolved, err := allowedVersions()
		if err != nil {
			return RequestedVersion{}, err
		}
		expr = resolved
	}
	if _, err := semver.NewConstraint(expr); err != nil {
		return RequestedVersion{}, errors.Wrapf(ErrCannotParseSemverRange, "%q: %s", expr, err)
	}
	return RequestedVersion{Kind: KindPath, PathExpr: expr}, nil
}

// PathMatches reports whether a KindPath request accepts v. The universal
// range "*" accepts anything; any other range requires v to parse as
// semver and satisfy the constraint.
func (r RequestedVersion) PathMatches(v Version) bool {
	if r.PathExpr == "*" {
		return true
	}
	constraint, err := semver.NewConstraint(r.PathExpr)
	if err != nil {
		return false
	}
	parsed, err := semver.NewVersion(v.String())
	if err != nil {
		return false
	}
	return constraint.Check(parsed)
}

// systemExpr reports whether raw requests a PATH-resolved executable, and if
// so the semver range expression it carries ("*" for bare "system").
func systemExpr(raw string) (string, bool) {
	if strings.HasPrefix(raw, "system@") {
		return strings.TrimPrefix(raw, "system@"), true
	}
	if raw == "system" {
		return "*", true
	}
	return "", false
}

func (r RequestedVersion) String() string {
	if r.Kind == KindPath {
		return "system@" + r.PathExpr
	}
	return r.Yard.String()
}

// FromVersion wraps an exact version as a KindYard request.
func FromVersion(v Version) RequestedVersion {
	return RequestedVersion{Kind: KindYard, Yard: v}
}
