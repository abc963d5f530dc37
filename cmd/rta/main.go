// Command rta installs and runs the developer tools pinned in a project's
// .tool-versions file, downloading (or compiling) whichever version is
// missing from the local yard on first use.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/kolide/rta/internal/apps"
	"github.com/kolide/rta/internal/catalog"
	"github.com/kolide/rta/internal/cli"
	"github.com/kolide/rta/internal/config"
	"github.com/kolide/rta/internal/hosting"
	"github.com/kolide/rta/internal/install"
	"github.com/kolide/rta/internal/platform"
	"github.com/kolide/rta/internal/resolve"
	"github.com/kolide/rta/internal/rtalog"
	"github.com/kolide/rta/internal/yard"
)

// programVersion is overwritten at release build time via -ldflags.
var programVersion = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cmd, err := cli.Parse(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "rta:", err)
		return 1
	}

	logger := rtalog.New()
	logger.AddHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: rtalog.Level(cmd.Verbose)}))
	hosting.SetProgramVersion(programVersion)

	p, err := platform.Detect()
	if err != nil {
		fmt.Fprintln(os.Stderr, "rta:", err)
		return 1
	}

	cat, err := catalog.New(apps.All())
	if err != nil {
		fmt.Fprintln(os.Stderr, "rta:", err)
		return 1
	}

	yardRoot, err := yard.DefaultRoot()
	if err != nil {
		fmt.Fprintln(os.Stderr, "rta:", err)
		return 1
	}
	y, err := yard.LoadOrCreate(yardRoot)
	if err != nil {
		fmt.Fprintln(os.Stderr, "rta:", err)
		return 1
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, "rta:", err)
		return 1
	}
	cfg, err := config.Load(cwd, cat)
	if err != nil {
		fmt.Fprintln(os.Stderr, "rta:", err)
		return 1
	}

	ctx := &resolve.Context{
		Catalog:    cat,
		Yard:       y,
		Platform:   p,
		Log:        logger.Logger,
		Config:     cfg,
		FromSource: cmd.FromSource,
	}
	ctx.Engine = install.Engine{Log: logger.Logger, LocateGo: ctx.LocateGo}

	return cli.Dispatch(cmd, cli.Deps{
		Catalog:        cat,
		Yard:           y,
		Resolve:        ctx,
		Config:         &cfg,
		ProgramVersion: programVersion,
		WorkDir:        cwd,
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
	})
}
