package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mangeshk619/memsource-change-app/internal/estimate"
)

// maxCellRunes bounds how much of a segment is quoted in the report table.
const maxCellRunes = 80

// renderReport builds the Markdown report for a comparison. Percentages are
// formatted to two decimals.
func renderReport(cmp Comparison, top int) string {
	r := cmp.Result
	var b strings.Builder
	b.WriteString("# MT/PE change report\n\n")
	b.WriteString("- Algorithm: ")
	b.WriteString(string(r.Algorithm))
	b.WriteString("\n- Change: ")
	b.WriteString(formatPercent(r.ChangePercent))
	b.WriteString("\n")
	switch r.Algorithm {
	case estimate.AlgorithmEditDistance:
		b.WriteString("- Edit distance: ")
		b.WriteString(strconv.Itoa(r.Distance))
		b.WriteString(" over ")
		b.WriteString(strconv.Itoa(r.Length))
		b.WriteString(" characters\n- Segments: ")
		b.WriteString(strconv.Itoa(r.Segments))
		b.WriteString(" aligned, ")
		b.WriteString(strconv.Itoa(r.Changed))
		b.WriteString(" changed\n")
	case estimate.AlgorithmRatio:
		b.WriteString("- Similarity: ")
		b.WriteString(formatPercent(r.Similarity))
		b.WriteString(" (")
		b.WriteString(strconv.Itoa(r.Matched))
		b.WriteString(" matching characters, ")
		b.WriteString(strconv.Itoa(r.Length))
		b.WriteString(" total)\n")
	}
	b.WriteString("- Normalized: ")
	b.WriteString(strconv.FormatBool(cmp.Normalized))
	b.WriteString("\n\n## Documents\n\n")
	for _, d := range []DocumentInfo{cmp.MT, cmp.PE} {
		b.WriteString(fmt.Sprintf("- %s: %s, %d bytes, %d segments, %d characters\n", d.Role, d.Container, d.Bytes, d.Segments, d.Chars))
	}

	if r.Algorithm == estimate.AlgorithmEditDistance {
		if changed := r.TopChanged(top); len(changed) > 0 {
			b.WriteString("\n## Most changed segments\n\n")
			b.WriteString("| # | ID | Change | Distance | MT | PE |\n")
			b.WriteString("|---|---|---|---|---|---|\n")
			for _, s := range changed {
				b.WriteString(fmt.Sprintf("| %d | %s | %s | %d | %s | %s |\n",
					s.Index, tableCell(s.ID), formatPercent(s.ChangePercent), s.Distance, tableCell(s.MT), tableCell(s.PE)))
			}
		}
	}

	if len(cmp.Warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, w := range cmp.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}

func tableCell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(s, "|", `\|`)
	if rs := []rune(s); len(rs) > maxCellRunes {
		s = string(rs[:maxCellRunes-1]) + "…"
	}
	return s
}
