// Package catalog holds the ordered, immutable collection of application
// definitions rta knows about, built once per process run.
package catalog

import (
	"github.com/kolide/rta/internal/app"
	"github.com/kolide/rta/internal/platform"
	"github.com/kolide/rta/internal/version"
	"github.com/pkg/errors"
)

// ErrUnknownApp is wrapped with the offending name when a lookup misses.
var ErrUnknownApp = errors.New("unknown application")

// ErrDuplicateAppName is wrapped with the offending name when two
// definitions claim the same name at construction time.
var ErrDuplicateAppName = errors.New("duplicate application name")

// ErrCarrierHasCarrier is wrapped with the offending name when a carrier
// app (go, cargo, node) itself declares a run method that delegates to
// another app. Carrier chains are only allowed to recurse one level deep,
// so this would make resolution non-terminating.
var ErrCarrierHasCarrier = errors.New("carrier app cannot itself delegate to another app")

// probeVersion/probePlatform are arbitrary, valid inputs used only to probe
// a carrier app's RunMethod shape at catalog-construction time; no actual
// installation happens here.
var (
	probeVersion  = version.New("0.0.0")
	probePlatform = platform.Platform{OS: platform.Linux, Cpu: platform.Amd64}
)

// carrierApps are the only applications other app definitions are allowed
// to delegate to (via RunOtherAppOtherExecutable/RunOtherAppDefaultExecutable).
// Carrier chains must terminate in one hop, so carriers themselves must
// never carry -- New enforces this at construction time.
var carrierApps = map[string]bool{
	"go":    true,
	"cargo": true,
	"node":  true,
}

// Catalog is the ordered, immutable set of application definitions rta can
// install and run.
type Catalog struct {
	apps       []app.Definition
	byName     map[string]app.Definition
	longestLen int
}

// New builds a Catalog from the given definitions, preserving their order.
// It fails if two definitions share a name, or if a carrier app (go, cargo,
// node) declares a run method that itself delegates to another app --
// carrier chains are only allowed to recurse one level deep.
func New(defs []app.Definition) (*Catalog, error) {
	c := &Catalog{
		apps:   defs,
		byName: make(map[string]app.Definition, len(defs)),
	}
	for _, d := range defs {
		name := d.Name()
		if _, exists := c.byName[name]; exists {
			return nil, errors.Wrapf(ErrDuplicateAppName, "%q", name)
		}
		c.byName[name] = d
		if len(name) > c.longestLen {
			c.longestLen = len(name)
		}
		if carrierApps[name] {
			if rm := d.RunMethod(probeVersion, probePlatform); rm.Kind != app.RunThisApp {
				return nil, errors.Wrapf(ErrCarrierHasCarrier, "%q", name)
			}
		}
	}
	return c, nil
}

// All returns every definition, in catalog order.
func (c *Catalog) All() []app.Definition {
	return c.apps
}

// Find returns the definition named name, or ErrUnknownApp.
func (c *Catalog) Find(name string) (app.Definition, error) {
	d, ok := c.byName[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownApp, "%q", name)
	}
	return d, nil
}

// Lookup implements config.AppLookup: it resolves a name to a function for
// computing its "system@auto" range, so internal/config can validate and
// parse .tool-versions lines without importing internal/app.
func (c *Catalog) Lookup(name string) (version.AllowedVersionsFunc, bool) {
	d, ok := c.byName[name]
	if !ok {
		return nil, false
	}
	return d.AllowedVersions, true
}

// IsCarrier reports whether name is one of the apps other definitions are
// allowed to delegate to.
func IsCarrier(name string) bool {
	return carrierApps[name]
}

// LongestNameLength is the length of the longest app name, used to align
// `rta --apps` output.
func (c *Catalog) LongestNameLength() int {
	return c.longestLen
}
