package app

import (
	"strconv"
	"strings"
)

// appendReproFooter appends a minimal, deterministic footer that records
// configuration useful for reproducibility and auditing: algorithm, input
// mode, normalisation, where the documents came from and the build version.
func appendReproFooter(markdown string, cmp Comparison, source string) string {
	var b strings.Builder
	b.WriteString(markdown)
	b.WriteString("\n\n---\n")
	b.WriteString("Reproducibility: ")
	b.WriteString("algorithm=")
	b.WriteString(string(cmp.Result.Algorithm))
	b.WriteString("; mode=")
	b.WriteString(cmp.Mode.String())
	b.WriteString("; normalized=")
	b.WriteString(strconv.FormatBool(cmp.Normalized))
	b.WriteString("; source=")
	b.WriteString(strings.TrimSpace(source))
	b.WriteString("; version=")
	b.WriteString(BuildVersion)
	b.WriteString("\n")
	return b.String()
}
