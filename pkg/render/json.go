package render

import (
	"encoding/json"
	"io"

	"github.com/dkoosis/commentcheck/pkg/cloc"
	"github.com/dkoosis/commentcheck/pkg/ratio"
)

// Report is everything a run produced, for structured output.
type Report struct {
	Root      string
	Threshold float64
	Findings  []ratio.Finding
	Result    *cloc.Result
	Verdict   ratio.Verdict
}

// jsonOutput is the top-level JSON structure.
type jsonOutput struct {
	Version   string          `json:"version"`
	Root      string          `json:"root"`
	Threshold float64         `json:"threshold"`
	Findings  []ratio.Finding `json:"findings"`
	Header    *cloc.Header    `json:"cloc,omitempty"`
	Languages []cloc.Language `json:"languages"`
	Sum       *cloc.Stats     `json:"sum,omitempty"`
	Verdict   ratio.Verdict   `json:"verdict"`
}

// WriteJSON writes r as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	out := jsonOutput{
		Version:   "1.0",
		Root:      r.Root,
		Threshold: r.Threshold,
		Findings:  r.Findings,
		Languages: []cloc.Language{},
		Verdict:   r.Verdict,
	}
	if out.Findings == nil {
		out.Findings = []ratio.Finding{}
	}
	if r.Result != nil {
		out.Header = &r.Result.Header
		out.Languages = append(out.Languages, r.Result.Languages...)
		out.Sum = &r.Result.Sum
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
