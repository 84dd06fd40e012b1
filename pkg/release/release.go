// Package release lists the releases published on the hosting repository.
//
// Releases normally come from `gh release list`, see [GHLister]. [APILister]
// talks to the GitHub REST API directly for environments without the gh
// binary. [Fetcher] merges in the release that triggered the current workflow
// run, since a release that was published seconds ago is often still missing
// from the listing endpoints.
package release

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/typst-community/dev-builds/pkg/errors"
)

// RawRelease is a published release as reported by the hosting API.
// Field names follow the gh CLI JSON output.
type RawRelease struct {
	Name        string `json:"name"`
	TagName     string `json:"tagName"`
	PublishedAt string `json:"publishedAt"`
}

// Event is the release payload of a workflow trigger.
// Field names follow the webhook payload, which differs from the gh CLI.
type Event struct {
	Name        string `json:"name"`
	TagName     string `json:"tag_name"`
	PublishedAt string `json:"published_at"`
}

// Release converts the event into the listing representation.
func (e *Event) Release() RawRelease {
	return RawRelease{
		Name:        e.Name,
		TagName:     e.TagName,
		PublishedAt: e.PublishedAt,
	}
}

// Lister lists the non-draft releases of the hosting repository.
type Lister interface {
	List(ctx context.Context) ([]RawRelease, error)
}

// ParseEvent decodes a release event payload.
//
// It returns nil without error when there is no event: the variable is unset
// for manual runs and holds "null" when the workflow was not triggered by a
// release.
func ParseEvent(payload string) (*Event, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" || payload == "null" {
		return nil, nil
	}

	var ev *Event
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidEvent, err, "decode release event")
	}
	if ev == nil {
		return nil, nil
	}
	if ev.TagName == "" {
		return nil, errors.New(errors.ErrCodeInvalidEvent, "release event has no tag_name")
	}
	return ev, nil
}

// Contains reports whether releases has an entry with the given tag.
func Contains(releases []RawRelease, tag string) bool {
	for _, r := range releases {
		if r.TagName == tag {
			return true
		}
	}
	return false
}
