package catalog

import (
	"github.com/typst-community/dev-builds/pkg/errors"
)

// Artifact identifies an upstream project published on the channel.
type Artifact string

// Known artifacts. The declaration order is the display order.
const (
	ArtifactDocs            Artifact = "docs"
	ArtifactTypst           Artifact = "typst"
	ArtifactPackageCheck    Artifact = "package-check"
	ArtifactHayagriva       Artifact = "hayagriva"
	ArtifactPackagesBundler Artifact = "packages-bundler"
)

var artifacts = []Artifact{
	ArtifactDocs,
	ArtifactTypst,
	ArtifactPackageCheck,
	ArtifactHayagriva,
	ArtifactPackagesBundler,
}

// Artifacts returns the known artifacts in display order.
func Artifacts() []Artifact {
	return append([]Artifact(nil), artifacts...)
}

// Valid reports whether a is a known artifact.
func (a Artifact) Valid() bool {
	for _, k := range artifacts {
		if k == a {
			return true
		}
	}
	return false
}

// ParseArtifact validates s against the known artifacts.
func ParseArtifact(s string) (Artifact, error) {
	a := Artifact(s)
	if !a.Valid() {
		return "", errors.New(errors.ErrCodeUnknownArtifact, "unknown artifact %q", s)
	}
	return a, nil
}

// upstream is where an artifact's sources live under github.com/typst.
type upstream struct {
	repo string
	path string
}

var upstreamOverrides = map[Artifact]upstream{
	ArtifactDocs:            {repo: "typst", path: "/docs"},
	ArtifactPackagesBundler: {repo: "packages", path: "/bundler"},
}

func (a Artifact) upstream() upstream {
	if u, ok := upstreamOverrides[a]; ok {
		return u
	}
	return upstream{repo: string(a)}
}
