// Package app defines the shape every cataloged tool conforms to: its
// identity, how to install it, and how to run it. Concrete tools live in
// internal/apps; this package only holds the closed set of variants they
// are built from, so that cross-app plumbing (npm delegating to node, gofmt
// delegating to go) is data the resolver can walk rather than inheritance.
package app

import "github.com/kolide/rta/internal/platform"

// ExecutableName is the unix-style base name of an executable, e.g. "go" or
// "node". PlatformName appends ".exe" on Windows.
type ExecutableName string

// PlatformName returns the filename this executable has on the given OS.
func (n ExecutableName) PlatformName(os platform.OS) string {
	if os == platform.Windows {
		return string(n) + ".exe"
	}
	return string(n)
}
