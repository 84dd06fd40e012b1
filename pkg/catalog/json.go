package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/typst-community/dev-builds/pkg/errors"
)

// FileName is the name of the catalog document in the output directory.
const FileName = "catalog.json"

// MarshalJSON encodes the groups in artifact declaration order.
// Missing groups are written as empty lists.
func (g Groups) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, a := range artifacts {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshal(string(a))
		if err != nil {
			return nil, err
		}
		entries := g[a]
		if entries == nil {
			entries = []Entry{}
		}
		value, err := marshal(entries)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes groups, rejecting unknown artifacts.
func (g *Groups) UnmarshalJSON(data []byte) error {
	var raw map[string][]Entry
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	groups := newGroups()
	for k, entries := range raw {
		a, err := ParseArtifact(k)
		if err != nil {
			return err
		}
		if entries != nil {
			groups[a] = entries
		}
	}
	*g = groups
	return nil
}

// marshal encodes v without escaping HTML characters.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// WriteJSON writes the catalog document to w with two-space indentation.
// Non-ASCII and HTML characters are written literally.
func WriteJSON(c *Catalog, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return nil
}

// ExportJSON writes the catalog document to path, creating parent
// directories as needed.
func ExportJSON(c *Catalog, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create output directory")
	}

	var buf bytes.Buffer
	if err := WriteJSON(c, &buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

// ReadJSON reads a catalog document from r.
func ReadJSON(r io.Reader) (*Catalog, error) {
	var c Catalog
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "decode catalog")
	}
	if c.Version == "" {
		return nil, errors.New(errors.ErrCodeInvalidCatalog, "catalog has no version")
	}
	if c.Artifacts == nil {
		c.Artifacts = newGroups()
	}
	return &c, nil
}

// ImportJSON reads a catalog document from path.
func ImportJSON(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open catalog")
	}
	defer f.Close()
	return ReadJSON(f)
}
