package release

import (
	"context"

	"github.com/charmbracelet/log"
)

// Fetcher lists releases and patches in the triggering release.
type Fetcher struct {
	Lister Lister
	Event  *Event
	Logger *log.Logger
}

// NewFetcher creates a Fetcher. ev may be nil when the run was not triggered
// by a release. If logger is nil, log.Default() is used.
func NewFetcher(l Lister, ev *Event, logger *log.Logger) *Fetcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Fetcher{Lister: l, Event: ev, Logger: logger}
}

// Fetch returns the listed releases, plus the event's release when the
// listing does not include its tag yet. Listed entries are never modified.
func (f *Fetcher) Fetch(ctx context.Context) ([]RawRelease, error) {
	releases, err := f.Lister.List(ctx)
	if err != nil {
		return nil, err
	}
	f.Logger.Debug("listed releases", "count", len(releases))

	if f.Event == nil {
		return releases, nil
	}

	f.Logger.Info("received release event from workflow context",
		"name", f.Event.Name,
		"tag", f.Event.TagName,
		"published_at", f.Event.PublishedAt)

	if Contains(releases, f.Event.TagName) {
		f.Logger.Info("current release is already listed", "tag", f.Event.TagName)
		return releases, nil
	}

	releases = append(releases, f.Event.Release())
	f.Logger.Info("added current release to the list", "tag", f.Event.TagName)
	return releases, nil
}
