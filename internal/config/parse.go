package config

import (
	"strings"

	"github.com/kolide/rta/internal/version"
	"github.com/pkg/errors"
)

// AppLookup resolves an app name against the catalog, the way
// internal/catalog's Catalog does. It is declared here, rather than
// imported from internal/catalog, so that internal/config has no dependency
// on the catalog package -- only on the narrow capability it needs.
type AppLookup interface {
	// Lookup reports whether name is a known application and, if so,
	// returns a function for resolving "system@auto" against it.
	Lookup(name string) (allowedVersions version.AllowedVersionsFunc, ok bool)
}

// ErrUnknownApp is wrapped with the offending name when a config line names
// an application the catalog doesn't know.
var ErrUnknownApp = errors.New("unknown application")

// ErrInvalidLineFormat is wrapped with the line number and raw text when a
// non-comment line has only a single token (an app name with no version).
var ErrInvalidLineFormat = errors.New("invalid .tool-versions line")

// Parse interprets the text of a .tool-versions file.
func Parse(text string, apps AppLookup) (File, error) {
	var result File
	for i, line := range strings.Split(text, "\n") {
		av, err := parseLine(line, i+1, apps)
		if err != nil {
			return File{}, err
		}
		if av != nil {
			result.Apps = append(result.Apps, *av)
		}
	}
	return result, nil
}

// parseLine interprets a single line, returning nil if it was blank or
// entirely a comment.
func parseLine(line string, lineNo int, apps AppLookup) (*AppVersions, error) {
	tokens := lineTokens(line)
	if len(tokens) == 0 {
		return nil, nil
	}
	name := tokens[0]
	allowedVersions, ok := apps.Lookup(name)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownApp, "%q (line %d)", name, lineNo)
	}
	if len(tokens) == 1 {
		return nil, errors.Wrapf(ErrInvalidLineFormat, "line %d: %q", lineNo, strings.TrimSpace(line))
	}
	versions := make(version.RequestedVersions, 0, len(tokens)-1)
	for _, tok := range tokens[1:] {
		rv, err := version.Parse(tok, allowedVersions)
		if err != nil {
			return nil, err
		}
		versions = append(versions, rv)
	}
	return &AppVersions{AppName: name, Versions: versions}, nil
}

// lineTokens splits a line on whitespace, stopping at the first token that
// starts with '#' (the rest of the line is a comment).
func lineTokens(line string) []string {
	var tokens []string
	for _, field := range strings.Fields(line) {
		if strings.HasPrefix(field, "#") {
			break
		}
		tokens = append(tokens, field)
	}
	return tokens
}
