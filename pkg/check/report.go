package check

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dkoosis/commentcheck/pkg/cloc"
	"github.com/dkoosis/commentcheck/pkg/langtable"
	"github.com/dkoosis/commentcheck/pkg/ratio"
)

// ToolName is reported in the tool field.
const ToolName = "commentcheck"

// FromScan summarises a run. The status is fail when the verdict fails,
// warn when only individual files are below threshold, else pass.
func FromScan(findings []ratio.Finding, result *cloc.Result, v ratio.Verdict) *Report {
	r := &Report{
		Schema: SchemaID,
		Tool:   ToolName,
		Metrics: []Metric{
			{Name: "comment ratio", Value: langtable.Round1(v.CommentPct), Threshold: v.Threshold, Unit: "%"},
			{Name: "files below threshold", Value: float64(len(findings))},
		},
	}
	if result != nil {
		r.Metrics = append(r.Metrics,
			Metric{Name: "files counted", Value: float64(result.Sum.Files)},
			Metric{Name: "lines of code", Value: float64(result.Sum.Code)},
		)
	}

	switch {
	case !v.Pass:
		r.Status = StatusFail
		r.Summary = fmt.Sprintf("%s %s < %g%%", ratio.TooLowMessage, langtable.Percent(v.CommentPct), v.Threshold)
	case len(findings) > 0:
		r.Status = StatusWarn
		r.Summary = fmt.Sprintf("comment ratio %s; %d file(s) below %g%%", langtable.Percent(v.CommentPct), len(findings), v.Threshold)
	default:
		r.Status = StatusPass
		r.Summary = fmt.Sprintf("comment ratio %s", langtable.Percent(v.CommentPct))
	}

	for _, f := range findings {
		r.Items = append(r.Items, Item{
			Severity: SeverityWarning,
			Label:    f.Path,
			Value:    langtable.Percent(f.CommentPct),
			File:     f.Path,
			Message:  "comment ratio below threshold",
		})
	}
	return r
}

// Write encodes report as indented JSON.
func Write(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode check report: %w", err)
	}
	return nil
}
