// Package render turns a written catalog into the human-readable release
// page by compiling a Typst template with HTML export.
//
// The template reads catalog.json itself; this package only drives the
// compiler:
//
//	typst compile <root>/scripts/catalog.typ dist/index.html --features=html --root=<root>
//
// Requires the typst CLI on PATH.
package render

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/typst-community/dev-builds/pkg/command"
	dberrors "github.com/typst-community/dev-builds/pkg/errors"
)

// PageName is the file name of the rendered page in the output directory.
const PageName = "index.html"

// Program is the Typst compiler executable.
const Program = "typst"

// Typst compiles the catalog page template.
type Typst struct {
	Runner   command.Runner
	Root     string // project root passed as --root
	Template string // template path, relative to Root unless absolute
	Logger   *log.Logger
}

// NewTypst creates a renderer. A nil logger falls back to log.Default().
func NewTypst(r command.Runner, root, template string, logger *log.Logger) *Typst {
	if logger == nil {
		logger = log.Default()
	}
	return &Typst{Runner: r, Root: root, Template: template, Logger: logger}
}

// TemplatePath returns the template location as passed to the compiler.
func (t *Typst) TemplatePath() string {
	if filepath.IsAbs(t.Template) {
		return t.Template
	}
	return filepath.Join(t.Root, t.Template)
}

// Args returns the compiler arguments writing the page to output.
func (t *Typst) Args(output string) []string {
	return []string{
		"compile",
		t.TemplatePath(),
		output,
		"--features=html",
		"--root=" + t.Root,
	}
}

// Render compiles the page into outputDir and returns the page path.
func (t *Typst) Render(ctx context.Context, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", dberrors.Wrap(dberrors.ErrCodeInvalidPath, err, "create %s", outputDir)
	}
	output := filepath.Join(outputDir, PageName)

	start := time.Now()
	t.Logger.Debug("compiling page", "template", t.TemplatePath(), "output", output)

	if _, err := t.Runner.Run(ctx, Program, t.Args(output)...); err != nil {
		if ctx.Err() != nil {
			return "", err
		}
		if errors.Is(err, exec.ErrNotFound) {
			return "", dberrors.Wrap(dberrors.ErrCodeCommand, err,
				"page rendering requires the typst CLI (https://github.com/typst/typst), or pass --no-render")
		}
		return "", dberrors.Wrap(dberrors.ErrCodeCommand, err, "%s %s", Program, strings.Join(t.Args(output), " "))
	}

	t.Logger.Debug("compiled page", "output", output, "elapsed", time.Since(start).Round(time.Millisecond))
	return output, nil
}
