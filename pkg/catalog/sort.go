package catalog

import (
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/typst-community/dev-builds/pkg/errors"
)

// sortKey orders entries within an artifact group.
type sortKey struct {
	tagged      bool
	version     *semver.Version // tagged only
	revision    string          // snapshots only
	publishedAt string          // snapshots only
}

func newSortKey(e Entry) (sortKey, error) {
	if IsTagged(e.Revision) {
		v, err := semver.NewVersion(e.Revision)
		if err != nil {
			return sortKey{}, errors.Wrap(errors.ErrCodeMalformedVersion, err, "release %q has revision %q", e.ReleaseTag, e.Revision)
		}
		return sortKey{tagged: true, version: v}, nil
	}
	return sortKey{revision: e.Revision, publishedAt: e.PublishedAt}, nil
}

// compare returns -1, 0 or +1 as k sorts before, with or after o in
// ascending order.
func (k sortKey) compare(o sortKey) int {
	switch {
	case k.tagged && !o.tagged:
		return 1
	case !k.tagged && o.tagged:
		return -1
	case k.tagged:
		return k.version.Compare(o.version)
	}
	if c := strings.Compare(k.revision, o.revision); c != 0 {
		return c
	}
	return strings.Compare(k.publishedAt, o.publishedAt)
}

// SortEntries sorts entries newest first: tagged releases by descending
// version, then snapshots by descending revision and publish time.
//
// All keys are computed before sorting, so on error entries is unchanged.
func SortEntries(entries []Entry) error {
	type keyed struct {
		key   sortKey
		entry Entry
	}

	ks := make([]keyed, len(entries))
	for i, e := range entries {
		k, err := newSortKey(e)
		if err != nil {
			return err
		}
		ks[i] = keyed{key: k, entry: e}
	}

	slices.SortStableFunc(ks, func(a, b keyed) int {
		return b.key.compare(a.key)
	})

	for i := range ks {
		entries[i] = ks[i].entry
	}
	return nil
}
