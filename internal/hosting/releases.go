package hosting

import "fmt"

// release is the subset of a GitHub release object this adapter needs.
type release struct {
	TagName string `json:"tag_name"`
}

// ReleaseIndex queries a GitHub repository's release list -- used by
// applications whose maintainers tag proper releases (actionlint, gh,
// shellcheck, dprint, staticcheck).
type ReleaseIndex struct {
	Org  string
	Repo string
}

// Latest returns the most recent release's version, with any leading "v"
// stripped.
func (r ReleaseIndex) Latest() (string, error) {
	url := fmt.Sprintf("https://api.github.com/repos/%s/%s/releases/latest", r.Org, r.Repo)
	var rel release
	if err := getJSON(url, &rel); err != nil {
		return "", err
	}
	return stripLeadingV(rel.TagName), nil
}

// Versions returns up to n of the most recent releases' versions, newest
// first, with any leading "v" stripped from each.
func (r ReleaseIndex) Versions(n int) ([]string, error) {
	url := fmt.Sprintf("https://api.github.com/repos/%s/%s/releases?per_page=%d", r.Org, r.Repo, clampPerPage(n))
	var releases []release
	if err := getJSON(url, &releases); err != nil {
		return nil, err
	}
	result := make([]string, 0, len(releases))
	for _, rel := range releases {
		if rel.TagName != "" {
			result = append(result, stripLeadingV(rel.TagName))
		}
	}
	return result, nil
}
