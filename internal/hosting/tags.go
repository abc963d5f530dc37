package hosting

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// tagRef is the subset of a GitHub git ref object this adapter needs.
type tagRef struct {
	Ref string `json:"ref"`
}

// TagIndex queries a GitHub repository's tag list -- used by applications
// whose tags don't come with GitHub Releases (e.g. Go's own "go1.21.5"
// tags). Unlike ReleaseIndex, the tag text may carry a non-version prefix;
// TagIndex only strips the "refs/tags/" ref prefix, leaving the rest for
// the caller to interpret.
type TagIndex struct {
	Org  string
	Repo string
}

// Latest returns the most recently pushed tag. GitHub returns tags in
// creation order, so the last entry is newest.
func (t TagIndex) Latest() (string, error) {
	tags, err := t.Versions(1)
	if err != nil {
		return "", err
	}
	if len(tags) == 0 {
		return "", errors.Wrap(ErrAPIProblem, "repository has no tags")
	}
	return tags[len(tags)-1], nil
}

// Versions returns up to n of the most recently pushed tags, oldest first
// (matching the order GitHub's API returns them in).
func (t TagIndex) Versions(n int) ([]string, error) {
	url := fmt.Sprintf("https://api.github.com/repos/%s/%s/git/refs/tags?per_page=%d", t.Org, t.Repo, clampPerPage(n))
	var refs []tagRef
	if err := getJSON(url, &refs); err != nil {
		return nil, err
	}
	result := make([]string, 0, len(refs))
	for _, ref := range refs {
		result = append(result, strings.TrimPrefix(ref.Ref, "refs/tags/"))
	}
	return result, nil
}
