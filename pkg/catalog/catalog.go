package catalog

import (
	"github.com/charmbracelet/log"

	"github.com/typst-community/dev-builds/pkg/release"
)

// SchemaVersion is the version of the catalog document format.
const SchemaVersion = "0.1.1"

// Entry is one release in the catalog.
type Entry struct {
	Name        string `json:"name"`
	PublishedAt string `json:"publishedAt"`
	Revision    string `json:"revision"`
	ReleaseTag  string `json:"releaseTag"`
	ReleaseURL  string `json:"releaseUrl"`
	OfficialURL string `json:"officialUrl"`
}

// Tagged reports whether the entry is an official version.
func (e Entry) Tagged() bool {
	return IsTagged(e.Revision)
}

// Groups maps every known artifact to its entries, newest first.
// It encodes as a JSON object whose keys follow [Artifacts].
type Groups map[Artifact][]Entry

// newGroups returns Groups with an empty list for every known artifact.
func newGroups() Groups {
	g := make(Groups, len(artifacts))
	for _, a := range artifacts {
		g[a] = []Entry{}
	}
	return g
}

// Catalog is the complete catalog document.
type Catalog struct {
	Version   string `json:"version"`
	Artifacts Groups `json:"artifacts"`
}

// Len returns the total number of entries.
func (c *Catalog) Len() int {
	n := 0
	for _, entries := range c.Artifacts {
		n += len(entries)
	}
	return n
}

// Latest returns the first (newest) entry of an artifact group.
func (c *Catalog) Latest(a Artifact) (Entry, bool) {
	entries := c.Artifacts[a]
	if len(entries) == 0 {
		return Entry{}, false
	}
	return entries[0], true
}

// Builder builds catalogs from raw releases.
type Builder struct {
	urlPrefix string
	logger    *log.Logger
}

// NewBuilder creates a builder. urlPrefix is the hosting repository URL
// ("https://github.com/typst-community/dev-builds") used for release links.
// If logger is nil, log.Default() is used.
func NewBuilder(urlPrefix string, logger *log.Logger) *Builder {
	if logger == nil {
		logger = log.Default()
	}
	return &Builder{urlPrefix: urlPrefix, logger: logger}
}

// Entry maps a raw release to its catalog entry.
func (b *Builder) Entry(r release.RawRelease) (Artifact, Entry, error) {
	tag, err := ParseTag(r.TagName)
	if err != nil {
		return "", Entry{}, err
	}
	return tag.Artifact, Entry{
		Name:        r.Name,
		PublishedAt: r.PublishedAt,
		Revision:    tag.Revision,
		ReleaseTag:  r.TagName,
		ReleaseURL:  ReleaseURL(b.urlPrefix, r.TagName),
		OfficialURL: OfficialURL(tag.Artifact, tag.Revision),
	}, nil
}

// Build groups releases by artifact and sorts each group newest first.
// Any malformed release aborts the build and no catalog is returned.
func (b *Builder) Build(releases []release.RawRelease) (*Catalog, error) {
	groups := newGroups()

	for _, r := range releases {
		a, e, err := b.Entry(r)
		if err != nil {
			return nil, err
		}
		groups[a] = append(groups[a], e)
	}

	for _, a := range artifacts {
		if err := SortEntries(groups[a]); err != nil {
			return nil, err
		}
		b.logger.Debug("sorted artifact group", "artifact", a, "entries", len(groups[a]))
	}

	return &Catalog{Version: SchemaVersion, Artifacts: groups}, nil
}
