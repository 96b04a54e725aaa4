package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/dkoosis/commentcheck/pkg/langtable"
	"github.com/dkoosis/commentcheck/pkg/ratio"
)

// Caption precedes the per-language table.
const Caption = "Per-language totals (blank and comment are percentages of code + comment lines):"

// Text writes the human-readable report as it is produced. It implements
// ratio.Sink so per-file warnings appear while the scan is still running.
type Text struct {
	w     io.Writer
	theme Theme
	width int
}

var _ ratio.Sink = (*Text)(nil)

// NewText creates a text renderer. width is the terminal width used to size
// the ratio bar; values <= 0 default to 80.
func NewText(w io.Writer, theme Theme, width int) *Text {
	if width <= 0 {
		width = 80
	}
	return &Text{w: w, theme: theme, width: width}
}

// ScanRoot announces the directory being checked.
func (t *Text) ScanRoot(root string) {
	fmt.Fprintf(t.w, "%s\n", t.theme.paint(t.theme.Bold, "Checking comment ratio in "+root))
}

// Banner introduces the per-file warnings.
func (t *Text) Banner(threshold float64) {
	fmt.Fprintf(t.w, "\n%s\n", t.theme.paint(t.theme.Warning, fmt.Sprintf("Files below the %g%% comment threshold:", threshold)))
}

// Finding prints one file below threshold.
func (t *Text) Finding(f ratio.Finding) {
	line := fmt.Sprintf("%s: %s", f.Path, langtable.Percent(f.CommentPct))
	if t.theme.plain {
		fmt.Fprintln(t.w, line)
		return
	}
	fmt.Fprintf(t.w, "  %s %s\n", t.theme.paint(t.theme.Warning, t.theme.Icons.Warn), line)
}

// AllClear reports that no file was below threshold.
func (t *Text) AllClear(threshold float64) {
	fmt.Fprintf(t.w, "\n%s\n", t.theme.paint(t.theme.Success, fmt.Sprintf("All files meet the %g%% comment threshold.", threshold)))
}

// Table prints the caption and the grid.
func (t *Text) Table(tbl langtable.Table) {
	fmt.Fprintf(t.w, "\n%s\n", t.theme.paint(t.theme.Muted, Caption))
	grid := langtable.Grid(tbl)
	if t.theme.plain {
		fmt.Fprint(t.w, grid)
		return
	}
	for _, line := range strings.Split(strings.TrimSuffix(grid, "\n"), "\n") {
		fmt.Fprintln(t.w, t.theme.paint(t.theme.Primary, line))
	}
}

// Verdict prints the tree-wide result with a ratio bar. Plain output omits
// it; the caller reports failures on stderr.
func (t *Text) Verdict(v ratio.Verdict) {
	if t.theme.plain {
		return
	}
	icon, style, color := t.theme.Icons.Pass, t.theme.Success, t.theme.BarPass
	if !v.Pass {
		icon, style, color = t.theme.Icons.Fail, t.theme.Error, t.theme.BarFail
	}
	line := fmt.Sprintf("%s comment ratio %s (threshold %g%%)", icon, langtable.Percent(v.CommentPct), v.Threshold)
	fmt.Fprintf(t.w, "\n%s", t.theme.paint(style, line))
	if color != "" {
		fmt.Fprintf(t.w, "  %s", t.bar(v.CommentPct, color))
	}
	fmt.Fprintln(t.w)
}

func (t *Text) bar(pct float64, color string) string {
	width := min(40, t.width-40)
	if width < 10 {
		width = 10
	}
	p := progress.New(
		progress.WithWidth(width),
		progress.WithSolidFill(color),
		progress.WithoutPercentage(),
	)
	return p.ViewAs(min(max(pct/100, 0), 1))
}
