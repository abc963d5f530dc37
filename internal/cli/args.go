package cli

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownOption is wrapped with the offending flag text.
var ErrUnknownOption = errors.New("unknown option")

// ErrMultipleCommandsGiven is returned when two mutually exclusive command
// flags (--which, --available, --versions, ...) are given together.
var ErrMultipleCommandsGiven = errors.New("multiple commands given")

// ErrMissingApplication is returned when a modifier flag that requires an
// app[@version] argument (--verbose, --which, ...) was given without one.
var ErrMissingApplication = errors.New("no application given")

// ErrInvalidNumber is wrapped with the offending text when --versions=N
// isn't a valid integer.
var ErrInvalidNumber = errors.New("invalid number")

// Parse interprets args (os.Args[1:], not including the program name) into
// a Command, following the positional-first grammar of spec.md §6.
func Parse(args []string) (Command, error) {
	var (
		appVersion     string
		haveAppVersion bool
		appArgs        []string

		verbose, optional, fromSource, errorOnOutput bool

		which, available, setup, test, update, add, reinstall bool

		versionsCount  = -1
		concurrentApps []string
		wantConcurrent bool
		include        []string
	)

	i := 0
	for i < len(args) {
		arg := args[i]
		if !haveAppVersion && !wantConcurrent {
			switch arg {
			case "--apps":
				return Command{Kind: AppsLong}, nil
			case "-a":
				return Command{Kind: AppsShort}, nil
			case "--help", "-h":
				return Command{Kind: Help}, nil
			case "--version", "-V":
				return Command{Kind: Version}, nil
			case "--available":
				available = true
				i++
				continue
			case "--setup":
				setup = true
				i++
				continue
			case "--test":
				test = true
				i++
				continue
			case "--update":
				update = true
				i++
				continue
			case "--which":
				which = true
				i++
				continue
			case "--add":
				add = true
				i++
				continue
			case "--reinstall":
				reinstall = true
				i++
				continue
			case "--concurrent":
				wantConcurrent = true
				i++
				continue
			case "--optional":
				optional = true
				i++
				continue
			case "--from-source":
				fromSource = true
				i++
				continue
			case "--error-on-output":
				errorOnOutput = true
				i++
				continue
			case "--include":
				i++
				if i >= len(args) {
					return Command{}, errors.Wrap(ErrMissingApplication, "--include needs an app name")
				}
				include = append(include, args[i])
				i++
				continue
			}
			if arg == "--verbose" || arg == "-v" {
				verbose = true
				i++
				continue
			}
			if strings.HasPrefix(arg, "--versions") {
				key, value, hasValue := strings.Cut(arg, "=")
				if key != "--versions" {
					return Command{}, errors.Wrapf(ErrUnknownOption, "%q", arg)
				}
				n := 10
				if hasValue {
					parsed, err := strconv.Atoi(value)
					if err != nil {
						return Command{}, errors.Wrapf(ErrInvalidNumber, "%q", value)
					}
					n = parsed
				}
				versionsCount = n
				i++
				continue
			}
			if strings.HasPrefix(arg, "-") {
				return Command{}, errors.Wrapf(ErrUnknownOption, "%q", arg)
			}
		}

		if wantConcurrent {
			concurrentApps = append(concurrentApps, arg)
			i++
			continue
		}
		if !haveAppVersion {
			appVersion = arg
			haveAppVersion = true
		} else {
			appArgs = append(appArgs, arg)
		}
		i++
	}

	given := 0
	for _, b := range []bool{which, available, versionsCount >= 0, setup, test, update, add, reinstall, wantConcurrent} {
		if b {
			given++
		}
	}
	if given > 1 {
		return Command{}, ErrMultipleCommandsGiven
	}

	base := Command{
		Verbose:       verbose,
		Optional:      optional,
		FromSource:    fromSource,
		ErrorOnOutput: errorOnOutput,
		Include:       include,
	}

	switch {
	case setup:
		base.Kind = Setup
		return base, nil
	case update:
		base.Kind = Update
		return base, nil
	case wantConcurrent:
		base.Kind = Concurrent
		base.ConcurrentApps = concurrentApps
		return base, nil
	case test:
		base.Kind = Test
		if haveAppVersion {
			base.App, base.VersionExpr = splitAppVersion(appVersion)
		}
		return base, nil
	}

	if !haveAppVersion {
		if errorOnOutput || optional || verbose || which || available || add || reinstall {
			return Command{}, ErrMissingApplication
		}
		return Command{Kind: Help}, nil
	}

	app, versionExpr := splitAppVersion(appVersion)
	base.App = app
	base.VersionExpr = versionExpr
	base.Args = appArgs

	switch {
	case which:
		base.Kind = Which
	case available:
		base.Kind = Available
	case versionsCount >= 0:
		base.Kind = Versions
		base.VersionsCount = versionsCount
	case add:
		base.Kind = Add
	case reinstall:
		base.Kind = Reinstall
	default:
		base.Kind = Run
	}
	return base, nil
}

// splitAppVersion splits "actionlint@1.6.26" into ("actionlint", "1.6.26"),
// or "actionlint" into ("actionlint", "").
func splitAppVersion(raw string) (string, string) {
	app, version, found := strings.Cut(raw, "@")
	if !found {
		return raw, ""
	}
	return app, version
}
