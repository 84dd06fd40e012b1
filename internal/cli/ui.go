package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/typst-community/dev-builds/pkg/catalog"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleLink    = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(16)

	styleTagged   = lipgloss.NewStyle().Foreground(colorGreen)
	styleSnapshot = lipgloss.NewStyle().Foreground(colorGray)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+styleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+styleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written file.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+styleDim.Render(iconArrow)+" "+styleValue.Render(path))
}

func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+styleValue.Render(value))
}

// =============================================================================
// Catalog Output
// =============================================================================

// printCatalogSummary prints one line per artifact, in catalog order, with
// the number of entries and the newest revision.
func printCatalogSummary(w io.Writer, c *catalog.Catalog) {
	fmt.Fprintln(w, styleTitle.Render("Catalog")+" "+styleDim.Render("v"+c.Version))
	for _, a := range catalog.Artifacts() {
		entries := c.Artifacts[a]
		count := styleNumber.Render(fmt.Sprintf("%3d", len(entries)))
		latest, ok := c.Latest(a)
		if !ok {
			printKeyValue(w, string(a), count+"  "+styleDim.Render("no releases"))
			continue
		}
		printKeyValue(w, string(a), count+"  "+revisionStyle(latest).Render(latest.Revision))
	}
	printDetail(w, "%d releases", c.Len())
}

// printEntries lists the entries of one artifact, newest first.
func printEntries(w io.Writer, a catalog.Artifact, entries []catalog.Entry) {
	fmt.Fprintln(w, styleTitle.Render(string(a))+" "+styleDim.Render(fmt.Sprintf("(%d)", len(entries))))
	for _, e := range entries {
		date, _, _ := strings.Cut(e.PublishedAt, "T")
		fmt.Fprintln(w, "  "+revisionStyle(e).Render(e.Revision)+"  "+styleDim.Render(date))
		fmt.Fprintln(w, "    "+styleLink.Render(e.ReleaseURL))
	}
}

func revisionStyle(e catalog.Entry) lipgloss.Style {
	if e.Tagged() {
		return styleTagged
	}
	return styleSnapshot
}
