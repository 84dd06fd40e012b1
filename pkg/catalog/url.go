package catalog

import (
	"fmt"
	"strings"
)

const upstreamOwnerURL = "https://github.com/typst"

// OfficialURL returns the upstream page matching a revision: the release page
// for tagged revisions, the source tree at the snapshot's commit otherwise.
func OfficialURL(a Artifact, revision string) string {
	u := a.upstream()
	if IsTagged(revision) {
		return fmt.Sprintf("%s/%s/releases/tag/%s", upstreamOwnerURL, u.repo, revision)
	}
	commit := revision[strings.LastIndex(revision, ".")+1:]
	return fmt.Sprintf("%s/%s/tree/%s%s", upstreamOwnerURL, u.repo, commit, u.path)
}

// ReleaseURL returns the release page of tag on the hosting repository.
// prefix is "<server>/<owner>/<repo>".
func ReleaseURL(prefix, tag string) string {
	return strings.TrimSuffix(prefix, "/") + "/releases/tag/" + tag
}
