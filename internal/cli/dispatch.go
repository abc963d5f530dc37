package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kolide/rta/internal/app"
	"github.com/kolide/rta/internal/catalog"
	"github.com/kolide/rta/internal/config"
	"github.com/kolide/rta/internal/resolve"
	"github.com/kolide/rta/internal/subshell"
	"github.com/kolide/rta/internal/version"
	"github.com/kolide/rta/internal/yard"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ErrNotResolved is returned by ensureInstalled (used by Run, Which,
// Available, Reinstall and Concurrent) when none of an app's requested
// versions could be satisfied.
var ErrNotResolved = errors.New("could not resolve a matching install")

// Deps bundles everything Dispatch needs beyond the parsed Command: the
// catalog, the yard, the resolution context built around them, the config
// file (cmd/rta always supplies one: when no .tool-versions exists it is
// empty and its Path is where Save would create it; a nil Config is
// reported as "no .tool-versions file found"), and the streams to print to.
type Deps struct {
	Catalog        *catalog.Catalog
	Yard           *yard.Yard
	Resolve        *resolve.Context
	Config         *config.File
	ProgramVersion string
	WorkDir        string
	Stdout         io.Writer
	Stderr         io.Writer
}

// Dispatch executes cmd and returns the process exit code.
func Dispatch(cmd Command, d Deps) int {
	switch cmd.Kind {
	case Help:
		fmt.Fprint(d.Stdout, usageText)
		return 0
	case Version:
		fmt.Fprintln(d.Stdout, d.ProgramVersion)
		return 0
	case AppsLong:
		return dispatchAppsLong(d)
	case AppsShort:
		return dispatchAppsShort(d)
	case Setup:
		return dispatchSetup(d)
	case Update:
		return dispatchUpdate(d)
	case Test:
		return dispatchTest(cmd, d)
	case Add:
		return dispatchAdd(cmd, d)
	case Reinstall:
		return dispatchReinstall(cmd, d)
	case Concurrent:
		return dispatchConcurrent(cmd, d)
	case Which:
		return dispatchWhich(cmd, d)
	case Available:
		return dispatchAvailable(cmd, d)
	case Versions:
		return dispatchVersions(cmd, d)
	case Run:
		return dispatchRun(cmd, d)
	default:
		fmt.Fprintf(d.Stderr, "rta: unhandled command\n")
		return 1
	}
}

const usageText = `rta: installs and runs developer tools pinned in .tool-versions

Usage:
  rta <app>[@version] [args...]   run app, installing it first if necessary
  rta --which <app>[@version]     print the resolved executable path
  rta --available <app>[@version] exit 0 if installable on this platform
  rta --versions[=N] <app>        list up to N known versions, newest first
  rta --apps | -a                 list every cataloged app
  rta --update                    bump .tool-versions to each app's latest
  rta --add <app>                 pin an app's latest version without installing
  rta --reinstall <app>[@version] reinstall from scratch
  rta --test [<app>]              install and verify every cataloged app
  rta --setup                     seed a new .tool-versions file
  rta --concurrent <app>... 	   resolve and run several apps in parallel

Modifiers:
  --verbose, -v       log at debug level
  --optional          a missing/unsupported app exits 0 instead of 1
  --error-on-output   any output from the child is treated as a failure
  --from-source       only try install methods that compile from source
  --include <app>     also ensure <app> is installed before running
`

func dispatchAppsLong(d Deps) int {
	width := d.Catalog.LongestNameLength()
	for _, a := range d.Catalog.All() {
		fmt.Fprintf(d.Stdout, "%-*s  %s\n", width, a.Name(), a.Homepage())
	}
	return 0
}

func dispatchAppsShort(d Deps) int {
	for _, a := range d.Catalog.All() {
		fmt.Fprintln(d.Stdout, a.Name())
	}
	return 0
}

func dispatchSetup(d Deps) int {
	if err := config.Create(d.WorkDir); err != nil {
		fmt.Fprintln(d.Stderr, "rta:", err)
		return 1
	}
	return 0
}

// requestedVersions builds the RequestedVersions to resolve against for
// cmd: a CLI-supplied "@version" expression always wins (parsed the same
// way a .tool-versions entry is, so "app@system@auto" works from the
// command line too), otherwise the config file's entry for this app is
// used.
func requestedVersions(cmd Command, d Deps, def app.Definition) (version.RequestedVersions, error) {
	if cmd.VersionExpr != "" {
		rv, err := version.Parse(cmd.VersionExpr, def.AllowedVersions)
		if err != nil {
			return nil, err
		}
		return version.RequestedVersions{rv}, nil
	}
	if d.Config != nil {
		if rvs, ok := d.Config.Lookup(cmd.App); ok {
			return rvs, nil
		}
	}
	return nil, errors.Wrapf(version.ErrRunRequestMissingVersion, "%q", cmd.App)
}

// ensureInstalled resolves and (if not already present) installs name at
// the versions requested for it, returning the resolved call.
func ensureInstalled(name string, versionExpr string, optional bool, d Deps) (app.ExecutableCall, error) {
	def, err := d.Catalog.Find(name)
	if err != nil {
		return app.ExecutableCall{}, err
	}
	requested, err := requestedVersions(Command{App: name, VersionExpr: versionExpr}, d, def)
	if err != nil {
		return app.ExecutableCall{}, err
	}
	call, ok, err := resolve.Resolve(d.Resolve, def, requested, optional)
	if err != nil {
		return app.ExecutableCall{}, err
	}
	if !ok {
		return app.ExecutableCall{}, errors.Wrapf(ErrNotResolved, "%s@%s", name, requested.Join(","))
	}
	return call, nil
}

func dispatchRun(cmd Command, d Deps) int {
	var includePaths []string
	for _, inc := range cmd.Include {
		incCall, err := ensureInstalled(inc, "", cmd.Optional, d)
		if err != nil {
			fmt.Fprintln(d.Stderr, "rta:", err)
			if cmd.Optional {
				continue
			}
			return 1
		}
		includePaths = append(includePaths, filepath.Dir(incCall.Executable))
	}

	call, err := ensureInstalled(cmd.App, cmd.VersionExpr, cmd.Optional, d)
	if err != nil {
		fmt.Fprintln(d.Stderr, "rta:", err)
		if cmd.Optional {
			return 0
		}
		return 1
	}
	if cmd.ErrorOnOutput {
		code, emitted, err := subshell.DetectOutput(subshell.Call{
			Executable:     call.Executable,
			ArgumentPrefix: call.ArgumentPrefix,
			Args:           cmd.Args,
			IncludePaths:   includePaths,
		})
		if err != nil {
			fmt.Fprintln(d.Stderr, "rta:", err)
		}
		if emitted && code == 0 {
			// output alone is the failure here; the child's own exit code
			// still wins when it is already non-zero
			return 1
		}
		if err != nil && !emitted {
			return 1
		}
		return code
	}

	code, err := subshell.Stream(subshell.Call{
		Executable:     call.Executable,
		ArgumentPrefix: call.ArgumentPrefix,
		Args:           cmd.Args,
		IncludePaths:   includePaths,
	})
	if err != nil {
		fmt.Fprintln(d.Stderr, "rta:", err)
		return 1
	}
	return code
}

func dispatchWhich(cmd Command, d Deps) int {
	call, err := ensureInstalled(cmd.App, cmd.VersionExpr, cmd.Optional, d)
	if err != nil {
		fmt.Fprintln(d.Stderr, "rta:", err)
		if cmd.Optional {
			return 0
		}
		return 1
	}
	fmt.Fprintln(d.Stdout, call.Executable)
	return 0
}

func dispatchAvailable(cmd Command, d Deps) int {
	_, err := ensureInstalled(cmd.App, cmd.VersionExpr, true, d)
	if err != nil {
		return 1
	}
	return 0
}

func dispatchVersions(cmd Command, d Deps) int {
	def, err := d.Catalog.Find(cmd.App)
	if err != nil {
		fmt.Fprintln(d.Stderr, "rta:", err)
		return 1
	}
	n := cmd.VersionsCount
	if n <= 0 {
		n = 10
	}
	versions, err := def.InstallableVersions(n, d.Resolve.Log)
	if err != nil {
		fmt.Fprintln(d.Stderr, "rta:", err)
		return 1
	}
	for _, v := range versions {
		fmt.Fprintln(d.Stdout, v.String())
	}
	return 0
}

func dispatchAdd(cmd Command, d Deps) int {
	if d.Config == nil {
		fmt.Fprintln(d.Stderr, "rta: no .tool-versions file found; run --setup first")
		return 1
	}
	def, err := d.Catalog.Find(cmd.App)
	if err != nil {
		fmt.Fprintln(d.Stderr, "rta:", err)
		return 1
	}
	latest, err := def.LatestInstallableVersion(d.Resolve.Log)
	if err != nil {
		fmt.Fprintln(d.Stderr, "rta:", err)
		return 1
	}
	d.Config.Upsert(cmd.App, version.RequestedVersions{version.FromVersion(latest)})
	if err := d.Config.Save(); err != nil {
		fmt.Fprintln(d.Stderr, "rta:", err)
		return 1
	}
	fmt.Fprintf(d.Stdout, "added %s %s\n", cmd.App, latest.String())
	return 0
}

func dispatchReinstall(cmd Command, d Deps) int {
	if err := d.Yard.DeleteAppFolder(cmd.App); err != nil {
		fmt.Fprintln(d.Stderr, "rta:", err)
		return 1
	}
	call, err := ensureInstalled(cmd.App, cmd.VersionExpr, false, d)
	if err != nil {
		fmt.Fprintln(d.Stderr, "rta:", err)
		return 1
	}
	fmt.Fprintln(d.Stdout, call.Executable)
	return 0
}

// dispatchUpdate bumps every pinned app in the config file to its current
// latest installable version, logging each change, then saves the file.
func dispatchUpdate(d Deps) int {
	if d.Config == nil {
		fmt.Fprintln(d.Stderr, "rta: no .tool-versions file found; run --setup first")
		return 1
	}
	for _, a := range d.Config.Apps {
		def, err := d.Catalog.Find(a.AppName)
		if err != nil {
			fmt.Fprintln(d.Stderr, "rta:", err)
			continue
		}
		latest, err := def.LatestInstallableVersion(d.Resolve.Log)
		if err != nil {
			fmt.Fprintln(d.Stderr, "rta:", err)
			continue
		}
		versions, ok := d.Config.Lookup(a.AppName)
		if !ok {
			continue
		}
		if previous, changed := versions.UpdateLargestWith(latest); changed {
			fmt.Fprintf(d.Stdout, "%s: %s -> %s\n", a.AppName, previous.String(), latest.String())
			d.Config.Upsert(a.AppName, versions)
		}
	}
	if err := d.Config.Save(); err != nil {
		fmt.Fprintln(d.Stderr, "rta:", err)
		return 1
	}
	return 0
}

// dispatchTest installs and resolves every catalog app (or, if cmd.App is
// set, every app from that point onward in catalog order) against an
// ephemeral yard, so the run exercises a full install regardless of what
// the user's real yard already holds.
func dispatchTest(cmd Command, d Deps) int {
	testRoot, err := os.MkdirTemp("", "rta-test-yard-")
	if err != nil {
		fmt.Fprintln(d.Stderr, "rta:", err)
		return 1
	}
	defer os.RemoveAll(testRoot)
	testYard, err := yard.Create(testRoot)
	if err != nil {
		fmt.Fprintln(d.Stderr, "rta:", err)
		return 1
	}
	ctx := *d.Resolve
	ctx.Yard = testYard
	ctx.Engine.LocateGo = ctx.LocateGo

	all := d.Catalog.All()
	start := 0
	if cmd.App != "" {
		found := false
		for i, a := range all {
			if a.Name() == cmd.App {
				start, found = i, true
				break
			}
		}
		if !found {
			fmt.Fprintf(d.Stderr, "rta: unknown application %q\n", cmd.App)
			return 1
		}
	}

	failed := false
	for _, def := range all[start:] {
		latest, err := def.LatestInstallableVersion(ctx.Log)
		if err != nil {
			fmt.Fprintf(d.Stderr, "rta: %s: %s\n", def.Name(), err)
			failed = true
			continue
		}
		requested := version.RequestedVersions{version.FromVersion(latest)}
		call, ok, err := resolve.Resolve(&ctx, def, requested, false)
		if err != nil {
			fmt.Fprintf(d.Stderr, "rta: %s: %s\n", def.Name(), err)
			failed = true
			continue
		}
		if !ok {
			fmt.Fprintf(d.Stderr, "rta: %s: not installable on this platform\n", def.Name())
			failed = true
			continue
		}
		fmt.Fprintf(d.Stdout, "%s %s: %s\n", def.Name(), latest.String(), call.Executable)
	}
	if failed {
		return 1
	}
	return 0
}

// dispatchConcurrent resolves every "app[@version]" in cmd.ConcurrentApps
// sequentially (each may need to install, and installs share the yard's
// file locks), then runs all of the resolved executables in parallel,
// streaming their combined output.
func dispatchConcurrent(cmd Command, d Deps) int {
	type resolved struct {
		name string
		call app.ExecutableCall
	}
	calls := make([]resolved, 0, len(cmd.ConcurrentApps))
	for _, raw := range cmd.ConcurrentApps {
		name, versionExpr := splitAppVersion(raw)
		call, err := ensureInstalled(name, versionExpr, cmd.Optional, d)
		if err != nil {
			fmt.Fprintln(d.Stderr, "rta:", err)
			if cmd.Optional {
				continue
			}
			return 1
		}
		calls = append(calls, resolved{name: name, call: call})
	}

	var g errgroup.Group
	codes := make([]int, len(calls))
	for i, r := range calls {
		i, r := i, r
		g.Go(func() error {
			code, err := subshell.Stream(subshell.Call{
				Executable:     r.call.Executable,
				ArgumentPrefix: r.call.ArgumentPrefix,
			})
			codes[i] = code
			return err
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintln(d.Stderr, "rta:", err)
		return 1
	}
	// the first non-zero exit code is the aggregate result
	for _, c := range codes {
		if c != 0 {
			return c
		}
	}
	return 0
}
