package app

import (
	"bufio"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// writeSimplePDF renders a minimal PDF from the Markdown report, preserving
// headings, bullet lines and table rows. It does not perform full Markdown
// layout. Text is translated to the core font's code page, so characters
// outside it are replaced.
func writeSimplePDF(markdown string, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Helvetica", "", 10)
	pdf.AddPage()

	scanner := bufio.NewScanner(strings.NewReader(markdown))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		s := strings.TrimSpace(scanner.Text())
		switch {
		case s == "":
			pdf.Ln(4)
		case s == "---" || isTableSeparator(s):
			continue
		case strings.HasPrefix(s, "#"):
			i := 0
			for i < len(s) && s[i] == '#' {
				i++
			}
			text := strings.TrimSpace(s[i:])
			if text == "" {
				continue
			}
			size := 14.0
			if i >= 2 {
				size = 12.0
			}
			pdf.SetFont("Helvetica", "B", size)
			pdf.CellFormat(0, 8, tr(text), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 10)
		case strings.HasPrefix(s, "|"):
			cells := strings.Split(strings.Trim(s, "|"), " | ")
			for i := range cells {
				cells[i] = strings.ReplaceAll(strings.TrimSpace(cells[i]), `\|`, "|")
			}
			pdf.SetFont("Courier", "", 8)
			pdf.MultiCell(0, 4, tr(strings.Join(cells, "  ·  ")), "", "L", false)
			pdf.SetFont("Helvetica", "", 10)
		default:
			pdf.MultiCell(0, 5, tr(s), "", "L", false)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return pdf.OutputFileAndClose(outPath)
}

func isTableSeparator(s string) bool {
	if !strings.HasPrefix(s, "|") {
		return false
	}
	return strings.Trim(s, "|-: ") == ""
}
