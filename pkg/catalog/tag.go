package catalog

import (
	"regexp"
	"strings"

	"github.com/typst-community/dev-builds/pkg/errors"
)

var tagPattern = regexp.MustCompile(
	`^(?P<artifact>[-a-z]+)-(?P<revision>v[-.0-9rc]+|main\.\d{4}-\d{2}-\d{2}\.[0-9a-f]{6,})$`,
)

// ParsedTag is a release tag split into its parts.
type ParsedTag struct {
	Artifact Artifact
	Revision string
}

// String reassembles the tag.
func (p ParsedTag) String() string {
	return string(p.Artifact) + "-" + p.Revision
}

// ParseTag splits a release tag into artifact and revision.
//
// The whole tag must match. A mismatch is reported with code MALFORMED_TAG,
// an artifact outside [Artifacts] with code UNKNOWN_ARTIFACT.
func ParseTag(tag string) (ParsedTag, error) {
	m := tagPattern.FindStringSubmatch(tag)
	if m == nil {
		return ParsedTag{}, errors.New(errors.ErrCodeMalformedTag, "failed to parse %q", tag)
	}

	a := Artifact(m[tagPattern.SubexpIndex("artifact")])
	if !a.Valid() {
		return ParsedTag{}, errors.New(errors.ErrCodeUnknownArtifact, "unknown artifact %q in tag %q", a, tag)
	}
	return ParsedTag{Artifact: a, Revision: m[tagPattern.SubexpIndex("revision")]}, nil
}

// IsTagged reports whether revision is an official version rather than a
// snapshot.
func IsTagged(revision string) bool {
	// Only checks the prefix; good enough for the current tag conventions.
	return strings.HasPrefix(revision, "v")
}
