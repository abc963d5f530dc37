// Package cli implements rta's command-line surface: parsing the
// positional-first "rta <app>[@version] [args...]" grammar plus its
// modifier flags, and dispatching each recognized command to the
// catalog/resolver/subshell machinery underneath.
package cli

// Kind is the closed set of things a parsed command line can ask rta to do.
type Kind int

const (
	// Run executes an app, installing it first if necessary. The default
	// when no other command flag is given.
	Run Kind = iota
	// Which prints the resolved executable path without running it.
	Which
	// Available reports (via exit code) whether an app is installable on
	// this platform.
	Available
	// Versions prints up to N of an app's most recent known versions.
	Versions
	// AppsLong lists every catalog app with its homepage.
	AppsLong
	// AppsShort lists every catalog app's name only.
	AppsShort
	// Update refreshes the config file's pinned versions to each app's
	// latest installable version.
	Update
	// Test installs and verifies every catalog app (or a suffix of it)
	// against an ephemeral yard.
	Test
	// Setup seeds a new .tool-versions file.
	Setup
	// Add appends an app to .tool-versions at its latest version without
	// installing it.
	Add
	// Reinstall deletes an app's yard subtree and re-resolves it.
	Reinstall
	// Concurrent resolves and then runs several apps' executables in
	// parallel.
	Concurrent
	// Help prints usage and exits 0.
	Help
	// Version prints the program's own version and exits 0.
	Version
)

// Command is one fully parsed invocation of rta.
type Command struct {
	Kind Kind

	// App is the primary app name, populated for every Kind except
	// AppsLong, AppsShort, Setup, Update, Concurrent, Help, Version, and
	// (optionally) Test.
	App string
	// VersionExpr is the "@version" part of "<app>@<version>", or "" if
	// the user didn't pin one on the command line (the config file's
	// entry is used instead).
	VersionExpr string
	// Args are the application's own arguments, forwarded verbatim.
	Args []string

	// ConcurrentApps is populated for Kind == Concurrent: one entry per
	// app[@version] to run in parallel.
	ConcurrentApps []string

	Verbose       bool
	Optional      bool
	FromSource    bool
	ErrorOnOutput bool
	Include       []string
	VersionsCount int
}
