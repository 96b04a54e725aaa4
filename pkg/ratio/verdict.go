package ratio

import "github.com/dkoosis/commentcheck/pkg/cloc"

// TooLowMessage is reported when the tree-wide ratio fails.
const TooLowMessage = "Comment to code ratio too low!"

// Verdict is the tree-wide outcome. Only the aggregate decides it;
// per-file findings are advisory.
type Verdict struct {
	CommentPct float64 `json:"comment_pct"`
	Threshold  float64 `json:"threshold"`
	Pass       bool    `json:"pass"`
}

// Judge compares the aggregate comment percentage against threshold.
func Judge(sum cloc.Stats, threshold float64) Verdict {
	return Verdict{
		CommentPct: sum.CommentPct,
		Threshold:  threshold,
		Pass:       !Below(sum.CommentPct, threshold),
	}
}

// ExitCode is 0 for a pass and 1 for a failure.
func (v Verdict) ExitCode() int {
	if v.Pass {
		return 0
	}
	return 1
}
