package cloc

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Raw field names in cloc's --by-percent=cm JSON output.
const (
	FieldFiles      = "nFiles"
	FieldBlankPct   = "blank_pct"
	FieldCommentPct = "comment_pct"
	FieldCode       = "code"

	keyHeader = "header"
	keySum    = "SUM"
)

// ErrNoSum is returned when cloc output lacks the SUM record.
var ErrNoSum = errors.New("cloc output has no SUM record")

// Stats is one language row of a scan. Percentages are relative to
// code+comment lines, so BlankPct may exceed 100.
type Stats struct {
	Files      int     `json:"files"`
	BlankPct   float64 `json:"blank_pct"`
	CommentPct float64 `json:"comment_pct"`
	Code       int     `json:"code"`
}

// Header is cloc's run metadata.
type Header struct {
	Version        string  `json:"cloc_version,omitempty"`
	ElapsedSeconds float64 `json:"elapsed_seconds,omitempty"`
	Files          int     `json:"n_files"`
	Lines          int     `json:"n_lines"`
}

// Language is a named Stats row.
type Language struct {
	Name string `json:"name"`
	Stats
}

// Result is one parsed cloc invocation.
type Result struct {
	Header    Header     `json:"header"`
	Languages []Language `json:"languages"` // cloc order, without SUM
	Sum       Stats      `json:"sum"`
}

// Parse decodes cloc JSON output. Object keys are walked in document order
// so Languages keeps cloc's ordering (most code first).
func Parse(data []byte) (*Result, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parse cloc output: invalid JSON")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("parse cloc output: expected object, got %s", doc.Type)
	}

	r := &Result{}
	hasSum := false
	doc.ForEach(func(key, value gjson.Result) bool {
		switch key.String() {
		case keyHeader:
			r.Header = Header{
				Version:        value.Get("cloc_version").String(),
				ElapsedSeconds: value.Get("elapsed_seconds").Float(),
				Files:          int(value.Get("n_files").Int()),
				Lines:          int(value.Get("n_lines").Int()),
			}
		case keySum:
			r.Sum = statsFrom(value)
			hasSum = true
		default:
			r.Languages = append(r.Languages, Language{Name: key.String(), Stats: statsFrom(value)})
		}
		return true
	})

	if !hasSum {
		return nil, ErrNoSum
	}
	return r, nil
}

func statsFrom(v gjson.Result) Stats {
	return Stats{
		Files:      int(v.Get(FieldFiles).Int()),
		BlankPct:   v.Get(FieldBlankPct).Float(),
		CommentPct: v.Get(FieldCommentPct).Float(),
		Code:       int(v.Get(FieldCode).Int()),
	}
}
