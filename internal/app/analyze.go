package app

import "github.com/kolide/rta/internal/version"

// AnalyzeOutcome is the closed set of results from running a candidate
// executable and inspecting its output for this app's fingerprint.
type AnalyzeOutcome int

const (
	// NotIdentified means the fingerprint substring was absent: this
	// executable is probably not this application at all.
	NotIdentified AnalyzeOutcome = iota
	// IdentifiedButUnknownVersion means the fingerprint matched but the
	// version regular expression did not.
	IdentifiedButUnknownVersion
	// IdentifiedWithVersion means both the fingerprint and the version
	// regular expression matched.
	IdentifiedWithVersion
)

// AnalyzeResult is the outcome of AnalyzeExecutable: always an Outcome, plus
// a Version populated only for IdentifiedWithVersion.
type AnalyzeResult struct {
	Outcome AnalyzeOutcome
	Version version.Version
}
