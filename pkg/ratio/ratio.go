// Package ratio applies the comment-to-code threshold to cloc results:
// per-file warnings and the tree-wide pass/fail verdict.
package ratio

import (
	"context"

	"github.com/dkoosis/commentcheck/pkg/cloc"
)

// DefaultThreshold is the minimum acceptable comment percentage.
const DefaultThreshold = 25.0

// Scanner counts a single path. A nil result means the path was excluded.
type Scanner interface {
	Scan(ctx context.Context, path string) (*cloc.Result, error)
}

// Finding is a file whose comment ratio is below the threshold.
type Finding struct {
	Path       string  `json:"path"`
	CommentPct float64 `json:"comment_pct"`
}

// Sink receives per-file results as they are produced.
type Sink interface {
	// Banner is called once, before the first Finding.
	Banner(threshold float64)
	Finding(f Finding)
	// AllClear is called instead of Banner when nothing was below threshold.
	AllClear(threshold float64)
}

// Discard is a Sink that ignores everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Banner(float64) {}
func (discard) Finding(Finding) {}
func (discard) AllClear(float64) {}

// Below reports whether pct fails threshold.
func Below(pct, threshold float64) bool {
	return pct < threshold
}

// Checker runs the per-file pass.
type Checker struct {
	scanner   Scanner
	threshold float64
}

// NewChecker creates a Checker.
func NewChecker(scanner Scanner, threshold float64) *Checker {
	return &Checker{scanner: scanner, threshold: threshold}
}

// CheckFiles scans each file in order and reports those below threshold.
// Excluded files are skipped. The first scan error stops the pass.
func (c *Checker) CheckFiles(ctx context.Context, files []string, sink Sink) ([]Finding, error) {
	var findings []Finding
	bannerShown := false

	for _, path := range files {
		if path == "" {
			continue
		}
		r, err := c.scanner.Scan(ctx, path)
		if err != nil {
			return findings, err
		}
		if r == nil {
			continue
		}
		if !Below(r.Sum.CommentPct, c.threshold) {
			continue
		}

		if !bannerShown {
			sink.Banner(c.threshold)
			bannerShown = true
		}
		f := Finding{Path: path, CommentPct: r.Sum.CommentPct}
		sink.Finding(f)
		findings = append(findings, f)
	}

	if !bannerShown {
		sink.AllClear(c.threshold)
	}
	return findings, nil
}
