package catalog

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/typst-community/dev-builds/pkg/errors"
	"github.com/typst-community/dev-builds/pkg/release"
)

const testPrefix = "https://github.com/typst-community/dev-builds"

func testBuilder() *Builder {
	return NewBuilder(testPrefix, log.New(&bytes.Buffer{}))
}

func revisions(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Revision
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSortEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		want    []string
	}{
		{
			name: "tagged above untagged",
			entries: []Entry{
				{Revision: "v0.11.0"},
				{Revision: "v0.12.0-rc1"},
				{Revision: "main.2024-06-01.aaa111"},
			},
			want: []string{"v0.12.0-rc1", "v0.11.0", "main.2024-06-01.aaa111"},
		},
		{
			name: "untagged input first",
			entries: []Entry{
				{Revision: "main.2030-01-01.ffffff"},
				{Revision: "v0.1.0"},
			},
			want: []string{"v0.1.0", "main.2030-01-01.ffffff"},
		},
		{
			name: "semantic version precedence",
			entries: []Entry{
				{Revision: "v0.9.0"},
				{Revision: "v0.12.0"},
				{Revision: "v0.12.0-rc2"},
				{Revision: "v0.10.0"},
				{Revision: "v0.12.0-rc1"},
			},
			want: []string{"v0.12.0", "v0.12.0-rc2", "v0.12.0-rc1", "v0.10.0", "v0.9.0"},
		},
		{
			name: "snapshots by revision string before date",
			entries: []Entry{
				{Revision: "main.2024-06-01.bbb222", PublishedAt: "2024-06-02T10:00:00Z"},
				{Revision: "main.2024-06-01.aaa111", PublishedAt: "2024-06-01T10:00:00Z"},
				{Revision: "main.2024-07-01.000000", PublishedAt: "2024-07-01T10:00:00Z"},
			},
			want: []string{"main.2024-07-01.000000", "main.2024-06-01.bbb222", "main.2024-06-01.aaa111"},
		},
		{
			name:    "empty",
			entries: []Entry{},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := SortEntries(tt.entries); err != nil {
				t.Fatalf("SortEntries() error = %v", err)
			}
			if got := revisions(tt.entries); !equalStrings(got, tt.want) {
				t.Errorf("SortEntries() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortEntriesRevisionWinsOverDate(t *testing.T) {
	// The aaa111 snapshot was published later, but revision strings decide.
	entries := []Entry{
		{Revision: "main.2024-06-01.aaa111", PublishedAt: "2024-06-02T10:00:00Z"},
		{Revision: "main.2024-06-01.bbb222", PublishedAt: "2024-06-01T10:00:00Z"},
	}
	if err := SortEntries(entries); err != nil {
		t.Fatalf("SortEntries() error = %v", err)
	}
	if entries[0].Revision != "main.2024-06-01.bbb222" {
		t.Errorf("first = %s, want main.2024-06-01.bbb222", entries[0].Revision)
	}
}

func TestSortEntriesPublishTimeBreaksTies(t *testing.T) {
	entries := []Entry{
		{Name: "first", Revision: "main.2024-06-01.aaa111", PublishedAt: "2024-06-01T10:00:00Z"},
		{Name: "rebuild", Revision: "main.2024-06-01.aaa111", PublishedAt: "2024-06-01T12:00:00Z"},
	}
	if err := SortEntries(entries); err != nil {
		t.Fatalf("SortEntries() error = %v", err)
	}
	if entries[0].Name != "rebuild" {
		t.Errorf("first = %s, want rebuild", entries[0].Name)
	}
}

func TestSortEntriesMalformedVersion(t *testing.T) {
	entries := []Entry{
		{Revision: "v0.1.0"},
		{Revision: "v1.2.3.4", ReleaseTag: "typst-v1.2.3.4"},
	}
	err := SortEntries(entries)
	if !errors.Is(err, errors.ErrCodeMalformedVersion) {
		t.Fatalf("SortEntries() error = %v, want %v", err, errors.ErrCodeMalformedVersion)
	}
	if entries[0].Revision != "v0.1.0" {
		t.Error("entries were reordered despite the error")
	}
}

func TestBuildSingleRelease(t *testing.T) {
	c, err := testBuilder().Build([]release.RawRelease{
		{Name: "Typst v0.12.0", TagName: "typst-v0.12.0", PublishedAt: "2024-01-01T00:00:00Z"},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if c.Version != SchemaVersion {
		t.Errorf("Version = %q, want %q", c.Version, SchemaVersion)
	}
	entries := c.Artifacts[ArtifactTypst]
	if len(entries) != 1 {
		t.Fatalf("typst has %d entries, want 1", len(entries))
	}

	want := Entry{
		Name:        "Typst v0.12.0",
		PublishedAt: "2024-01-01T00:00:00Z",
		Revision:    "v0.12.0",
		ReleaseTag:  "typst-v0.12.0",
		ReleaseURL:  "https://github.com/typst-community/dev-builds/releases/tag/typst-v0.12.0",
		OfficialURL: "https://github.com/typst/typst/releases/tag/v0.12.0",
	}
	if entries[0] != want {
		t.Errorf("entry = %+v, want %+v", entries[0], want)
	}

	for _, a := range Artifacts() {
		if a == ArtifactTypst {
			continue
		}
		got, ok := c.Artifacts[a]
		if !ok || got == nil || len(got) != 0 {
			t.Errorf("artifact %s = %v (present %v), want empty list", a, got, ok)
		}
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestBuildGroupsAndSorts(t *testing.T) {
	c, err := testBuilder().Build([]release.RawRelease{
		{Name: "docs snapshot", TagName: "docs-main.2024-06-01.aaa111", PublishedAt: "2024-06-01T00:00:00Z"},
		{Name: "typst 0.11", TagName: "typst-v0.11.0", PublishedAt: "2024-03-15T00:00:00Z"},
		{Name: "docs 0.12", TagName: "docs-v0.12.0", PublishedAt: "2024-10-18T00:00:00Z"},
		{Name: "typst 0.12", TagName: "typst-v0.12.0", PublishedAt: "2024-10-18T00:00:00Z"},
		{Name: "bundler", TagName: "packages-bundler-main.2024-12-24.deadbeef", PublishedAt: "2024-12-24T00:00:00Z"},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if got := revisions(c.Artifacts[ArtifactTypst]); !equalStrings(got, []string{"v0.12.0", "v0.11.0"}) {
		t.Errorf("typst = %v", got)
	}
	if got := revisions(c.Artifacts[ArtifactDocs]); !equalStrings(got, []string{"v0.12.0", "main.2024-06-01.aaa111"}) {
		t.Errorf("docs = %v", got)
	}

	bundler, ok := c.Latest(ArtifactPackagesBundler)
	if !ok {
		t.Fatal("Latest(packages-bundler) missing")
	}
	if bundler.OfficialURL != "https://github.com/typst/packages/tree/deadbeef/bundler" {
		t.Errorf("OfficialURL = %s", bundler.OfficialURL)
	}
	if _, ok := c.Latest(ArtifactHayagriva); ok {
		t.Error("Latest(hayagriva) should be empty")
	}
	if c.Len() != 5 {
		t.Errorf("Len() = %d, want 5", c.Len())
	}
}

func TestBuildInputOrderIndependent(t *testing.T) {
	a := []release.RawRelease{
		{TagName: "typst-v0.10.0"},
		{TagName: "typst-main.2024-06-01.aaa111", PublishedAt: "2024-06-01T00:00:00Z"},
		{TagName: "typst-v0.12.0-rc1"},
		{TagName: "typst-v0.11.1"},
	}
	b := []release.RawRelease{a[2], a[0], a[3], a[1]}

	ca, err := testBuilder().Build(a)
	if err != nil {
		t.Fatalf("Build(a) error = %v", err)
	}
	cb, err := testBuilder().Build(b)
	if err != nil {
		t.Fatalf("Build(b) error = %v", err)
	}
	ra, rb := revisions(ca.Artifacts[ArtifactTypst]), revisions(cb.Artifacts[ArtifactTypst])
	if !equalStrings(ra, rb) {
		t.Errorf("order depends on input: %v vs %v", ra, rb)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		code errors.Code
	}{
		{"malformed tag", "bogus", errors.ErrCodeMalformedTag},
		{"unknown artifact", "compiler-v1.0.0", errors.ErrCodeUnknownArtifact},
		{"malformed version", "typst-v1.2.3.4", errors.ErrCodeMalformedVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := testBuilder().Build([]release.RawRelease{
				{Name: "ok", TagName: "typst-v0.12.0"},
				{Name: "bad", TagName: tt.tag},
			})
			if !errors.Is(err, tt.code) {
				t.Errorf("Build() error = %v, want code %v", err, tt.code)
			}
			if c != nil {
				t.Errorf("Build() returned a catalog on error: %+v", c)
			}
		})
	}
}

func TestNewBuilderNilLogger(t *testing.T) {
	b := NewBuilder(testPrefix, nil)
	if b.logger == nil {
		t.Fatal("logger should default to log.Default()")
	}
}
