// Package catalog turns published releases into the grouped, sorted catalog
// consumed by the listing page.
//
// # Overview
//
// Every release on the distribution channel is tagged
// "<artifact>-<revision>":
//
//	typst-v0.12.0                  tagged release of typst
//	typst-v0.13.0-rc1              tagged pre-release
//	docs-main.2024-10-20.3b8c0e7   snapshot of the docs built from main
//
// [ParseTag] splits a tag into its [Artifact] and revision. A revision
// starting with "v" is an official version ([IsTagged]); anything else is a
// snapshot named "<branch>.<YYYY-MM-DD>.<commit>".
//
// # Building
//
// [Builder.Build] parses every release, attaches the release page URL and the
// upstream URL ([OfficialURL]) and sorts each artifact group newest first:
//
//	c, err := catalog.NewBuilder(cfg.URLPrefix(), logger).Build(releases)
//	if err != nil {
//	    return err // malformed tag, unknown artifact or bad version
//	}
//
// Tagged releases always sort above snapshots. Tagged releases are ordered
// by semantic version precedence, snapshots by revision string and then by
// publish time.
//
// # Document
//
// [WriteJSON] and [ExportJSON] write the catalog document:
//
//	{
//	  "version": "0.1.1",
//	  "artifacts": {
//	    "docs": [...],
//	    "typst": [...],
//	    ...
//	  }
//	}
//
// Artifact keys appear in declaration order ([Artifacts]) and every known
// artifact is present, even without releases. [ReadJSON] and [ImportJSON]
// read a document back and reject unknown artifact keys.
//
// Any malformed input aborts the whole build: a tag that does not follow the
// convention points at a publishing bug and must not be skipped silently.
package catalog
