// Package langtable reshapes a cloc result into a per-language display table
// and renders it as a grid.
//
// Each display column is an explicit mapping from a raw cloc field to a
// title and a formatting rule, so the reshaping can be read off Columns.
package langtable

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dkoosis/commentcheck/pkg/cloc"
)

// Align is a column's horizontal alignment.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Column maps one raw cloc field to a display column.
type Column struct {
	Field  string // raw cloc field; empty for the language name
	Title  string
	Align  Align
	Format func(l cloc.Language) string
}

var printer = message.NewPrinter(language.English)

// Columns is the display layout, left to right.
var Columns = []Column{
	{Field: "", Title: "language", Align: AlignLeft, Format: func(l cloc.Language) string { return l.Name }},
	{Field: cloc.FieldFiles, Title: "files", Align: AlignRight, Format: func(l cloc.Language) string { return Count(l.Files) }},
	{Field: cloc.FieldBlankPct, Title: "blank", Align: AlignRight, Format: func(l cloc.Language) string { return Percent(l.BlankPct) }},
	{Field: cloc.FieldCommentPct, Title: "comment", Align: AlignRight, Format: func(l cloc.Language) string { return Percent(l.CommentPct) }},
	{Field: cloc.FieldCode, Title: "lines of code", Align: AlignRight, Format: func(l cloc.Language) string { return Count(l.Code) }},
}

// SumLabel labels the aggregate row.
const SumLabel = "SUM"

// Table is a rendered-ready grid of strings.
type Table struct {
	Headers []string
	Aligns  []Align
	Rows    [][]string
}

// Build lays out r using Columns: one row per language in cloc order,
// then the SUM row. cloc's header record never becomes a row.
func Build(r *cloc.Result) Table {
	t := Table{
		Headers: make([]string, len(Columns)),
		Aligns:  make([]Align, len(Columns)),
	}
	for i, c := range Columns {
		t.Headers[i] = c.Title
		t.Aligns[i] = c.Align
	}
	if r == nil {
		return t
	}
	for _, l := range r.Languages {
		t.Rows = append(t.Rows, row(l))
	}
	t.Rows = append(t.Rows, row(cloc.Language{Name: SumLabel, Stats: r.Sum}))
	return t
}

func row(l cloc.Language) []string {
	cells := make([]string, len(Columns))
	for i, c := range Columns {
		cells[i] = c.Format(l)
	}
	return cells
}

// Round1 rounds to one decimal place, halves away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Percent formats a percentage with one decimal and a % suffix.
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", Round1(v))
}

// Count formats an integer with thousands separators.
func Count(n int) string {
	return printer.Sprintf("%d", n)
}
