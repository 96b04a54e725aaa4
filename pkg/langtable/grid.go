package langtable

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Grid renders t as a grid table: "+---+" rules between rows and a "+===+"
// rule under the header. Widths are display widths, so wide runes in
// language names stay aligned.
func Grid(t Table) string {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, r := range t.Rows {
		for i, cell := range r {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(cell))
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(rule(widths, '-'))
	sb.WriteString(line(t.Headers, widths, nil))
	sb.WriteString(rule(widths, '='))
	for _, r := range t.Rows {
		sb.WriteString(line(r, widths, t.Aligns))
		sb.WriteString(rule(widths, '-'))
	}
	return sb.String()
}

func rule(widths []int, fill rune) string {
	var sb strings.Builder
	sb.WriteByte('+')
	for _, w := range widths {
		sb.WriteString(strings.Repeat(string(fill), w+2))
		sb.WriteByte('+')
	}
	sb.WriteByte('\n')
	return sb.String()
}

// line renders one row. Headers pass nil aligns and are always left-aligned.
func line(cells []string, widths []int, aligns []Align) string {
	var sb strings.Builder
	sb.WriteByte('|')
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if i < len(aligns) && aligns[i] == AlignRight {
			cell = runewidth.FillLeft(cell, w)
		} else {
			cell = runewidth.FillRight(cell, w)
		}
		sb.WriteString(" " + cell + " |")
	}
	sb.WriteByte('\n')
	return sb.String()
}
