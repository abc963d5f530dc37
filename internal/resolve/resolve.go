// Package resolve ties the catalog, yard, and installation engine together:
// given a requested application and versions, it decides whether to use an
// executable already on PATH or to materialize one in the yard, installing
// it on demand and recursively resolving carrier apps along the way.
package resolve

import (
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/kolide/rta/internal/app"
	"github.com/kolide/rta/internal/catalog"
	"github.com/kolide/rta/internal/install"
	"github.com/kolide/rta/internal/platform"
	"github.com/kolide/rta/internal/version"
	"github.com/kolide/rta/internal/yard"
	"github.com/pkg/errors"
)

// ConfigLookup resolves an app name's requested versions out of the
// .tool-versions file, the way config.File does. Declared narrowly here (as
// config.AppLookup is in internal/config) so resolve doesn't import
// internal/config just for this one capability.
type ConfigLookup interface {
	Lookup(appName string) (version.RequestedVersions, bool)
}

// Context bundles everything a resolution needs: the catalog (to look up
// carrier apps), the yard, the host platform, a logger, the installation
// engine, and the config file (for carrier apps' own pinned versions).
type Context struct {
	Catalog    *catalog.Catalog
	Yard       *yard.Yard
	Platform   platform.Platform
	Log        *slog.Logger
	Engine     install.Engine
	Config     ConfigLookup
	FromSource bool
}

// Resolve picks a concrete executable call for def at one of requested's
// versions, trying them in order. It returns (zero, false, nil) if nothing
// satisfied -- not an error, since "no match" is a normal, expected outcome
// of e.g. `rta --available`.
func Resolve(ctx *Context, def app.Definition, requested version.RequestedVersions, optional bool) (app.ExecutableCall, bool, error) {
	for _, rv := range requested {
		switch rv.Kind {
		case version.KindPath:
			if call, ok := ctx.findOnPath(def, rv); ok {
				return call, true, nil
			}
		case version.KindYard:
			call, ok, err := ctx.resolveVersion(def, rv.Yard, optional)
			if err != nil {
				return app.ExecutableCall{}, false, err
			}
			if ok {
				return call, true, nil
			}
		}
	}
	return app.ExecutableCall{}, false, nil
}

// findOnPath looks for def's default executable on the host PATH and
// accepts it iff its analyzed version satisfies rv's range. An
// unknown-version result is accepted only for the universal range "*".
func (ctx *Context) findOnPath(def app.Definition, rv version.RequestedVersion) (app.ExecutableCall, bool) {
	name := def.DefaultExecutableName().PlatformName(ctx.Platform.OS)
	path, err := exec.LookPath(name)
	if err != nil {
		return app.ExecutableCall{}, false
	}
	result, err := def.AnalyzeExecutable(path, ctx.Log)
	if err != nil {
		ctx.Log.Debug("failed to analyze PATH executable", "app", def.Name(), "path", path, "err", err)
		return app.ExecutableCall{}, false
	}
	switch result.Outcome {
	case app.IdentifiedWithVersion:
		if rv.PathMatches(result.Version) {
			return app.ExecutableCall{Executable: path}, true
		}
	case app.IdentifiedButUnknownVersion:
		if rv.PathExpr == "*" {
			return app.ExecutableCall{Executable: path}, true
		}
	}
	return app.ExecutableCall{}, false
}

// resolveVersion resolves def@v out of the yard, installing it on demand.
func (ctx *Context) resolveVersion(def app.Definition, v version.Version, optional bool) (app.ExecutableCall, bool, error) {
	runMethod := def.RunMethod(v, ctx.Platform)
	switch runMethod.Kind {
	case app.RunThisApp:
		return ctx.resolveThisApp(def, v, runMethod, optional)
	case app.RunOtherAppOtherExecutable:
		carrierCall, ok, err := ctx.resolveCarrier(runMethod.CarrierApp, optional)
		if err != nil || !ok {
			return app.ExecutableCall{}, ok, err
		}
		sibling := filepath.Join(filepath.Dir(carrierCall.Executable), runMethod.OtherExecutable.PlatformName(ctx.Platform.OS))
		return app.ExecutableCall{Executable: sibling}, true, nil
	case app.RunOtherAppDefaultExecutable:
		carrierCall, ok, err := ctx.resolveCarrier(runMethod.CarrierApp, optional)
		if err != nil || !ok {
			return app.ExecutableCall{}, ok, err
		}
		return app.ExecutableCall{
			Executable:     carrierCall.Executable,
			ArgumentPrefix: anchorArgs(runMethod.Args, filepath.Dir(carrierCall.Executable)),
		}, true, nil
	default:
		return app.ExecutableCall{}, false, errors.Errorf("unknown run method kind %d", runMethod.Kind)
	}
}

// anchorArgs resolves a run method's relative forwarded arguments against
// the carrier executable's directory. npm declares its shim as
// "../lib/node_modules/npm/bin/npm-cli.js" relative to node's bin dir; the
// child process may run with any working directory, so the path has to be
// made absolute here.
func anchorArgs(args []string, carrierDir string) []string {
	anchored := make([]string, len(args))
	for i, arg := range args {
		if filepath.IsAbs(arg) || !strings.ContainsRune(arg, '/') {
			anchored[i] = arg
			continue
		}
		anchored[i] = filepath.Clean(filepath.Join(carrierDir, filepath.FromSlash(arg)))
	}
	return anchored
}

// resolveThisApp resolves an app that installs and runs its own executable:
// yard hit, negative-cache miss, or a fresh install attempt.
func (ctx *Context) resolveThisApp(def app.Definition, v version.Version, runMethod app.RunMethod, optional bool) (app.ExecutableCall, bool, error) {
	if loaded, ok := ctx.Yard.LoadExecutable(def, v, ctx.Platform); ok {
		return app.ExecutableCall{Executable: loaded.Path}, true, nil
	}
	if ctx.Yard.IsNotInstallable(def.Name(), v) {
		return app.ExecutableCall{}, false, nil
	}

	lock, err := ctx.Yard.LockAppFolder(def.Name(), v)
	if err != nil {
		return app.ExecutableCall{}, false, err
	}
	defer lock.Unlock()

	// Another process may have installed it while we waited for the lock.
	if loaded, ok := ctx.Yard.LoadExecutable(def, v, ctx.Platform); ok {
		return app.ExecutableCall{Executable: loaded.Path}, true, nil
	}

	methods := runMethod.InstallMethods
	if ctx.FromSource {
		methods = compileOnlyMethods(methods)
	}
	appFolder := ctx.Yard.AppFolder(def.Name(), v)
	outcome, err := ctx.Engine.Any(methods, def, v, ctx.Platform, appFolder, optional)
	if err != nil {
		return app.ExecutableCall{}, false, err
	}
	if outcome != install.Installed {
		if err := ctx.Yard.MarkNotInstallable(def.Name(), v); err != nil {
			return app.ExecutableCall{}, false, err
		}
		return app.ExecutableCall{}, false, nil
	}

	loaded, ok := ctx.Yard.LoadExecutable(def, v, ctx.Platform)
	if !ok {
		if err := ctx.Yard.MarkNotInstallable(def.Name(), v); err != nil {
			return app.ExecutableCall{}, false, err
		}
		return app.ExecutableCall{}, false, nil
	}
	return app.ExecutableCall{Executable: loaded.Path}, true, nil
}

func compileOnlyMethods(methods []app.InstallMethod) []app.InstallMethod {
	var out []app.InstallMethod
	for _, m := range methods {
		if m.Kind == app.InstallCompileGoSource || m.Kind == app.InstallCompileRustSource {
			out = append(out, m)
		}
	}
	return out
}

// resolveCarrier resolves the app other definitions delegate to (go, cargo,
// node), using its own requested versions from the config file if present,
// falling back to its latest installable version otherwise.
func (ctx *Context) resolveCarrier(carrierName string, optional bool) (app.ExecutableCall, bool, error) {
	carrierDef, err := ctx.Catalog.Find(carrierName)
	if err != nil {
		return app.ExecutableCall{}, false, err
	}

	requested, found := ctx.lookupConfig(carrierName)
	if !found {
		latest, err := carrierDef.LatestInstallableVersion(ctx.Log)
		if err != nil {
			return app.ExecutableCall{}, false, err
		}
		requested = version.RequestedVersions{version.FromVersion(latest)}
	}
	return Resolve(ctx, carrierDef, requested, optional)
}

func (ctx *Context) lookupConfig(appName string) (version.RequestedVersions, bool) {
	if ctx.Config == nil {
		return nil, false
	}
	return ctx.Config.Lookup(appName)
}

// LocateGo is an install.GoLocatorFunc: it resolves the catalog's own "go"
// entry through this same Context, bootstrap-installing it if necessary, so
// CompileGoSource install methods never need a pre-existing Go toolchain.
func (ctx *Context) LocateGo() (string, error) {
	call, ok, err := ctx.resolveCarrier("go", false)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errors.New("could not install go toolchain")
	}
	return call.Executable, nil
}
