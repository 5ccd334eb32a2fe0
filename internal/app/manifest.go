package app

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// manifestMeta captures high-level run details that aid reproducibility.
type manifestMeta struct {
	Algorithm   string    `json:"algorithm"`
	Mode        string    `json:"mode"`
	Normalized  bool      `json:"normalized"`
	Version     string    `json:"version"`
	GeneratedAt time.Time `json:"generated_at"`
}

// appendEmbeddedManifest appends a compact Markdown manifest section listing
// the digest and size of the exact bytes each document was computed from.
func appendEmbeddedManifest(markdown string, meta manifestMeta, docs []DocumentInfo) string {
	var b strings.Builder
	b.WriteString(markdown)
	b.WriteString("\n## Manifest\n\n")
	b.WriteString("- Algorithm: ")
	b.WriteString(meta.Algorithm)
	b.WriteString("\n- Mode: ")
	b.WriteString(meta.Mode)
	b.WriteString("\n- Generated: ")
	b.WriteString(meta.GeneratedAt.UTC().Format(time.RFC3339))
	b.WriteString("\n\n")
	for _, d := range docs {
		b.WriteString(string(d.Role))
		b.WriteString(": sha256=")
		if d.SHA256 == "" {
			b.WriteString("none")
		} else {
			b.WriteString(d.SHA256)
		}
		b.WriteString("; bytes=")
		b.WriteString(strconv.Itoa(d.Bytes))
		b.WriteString("\n")
	}
	return b.String()
}

// marshalManifestJSON encodes a machine-readable sidecar manifest.
func marshalManifestJSON(meta manifestMeta, docs []DocumentInfo) ([]byte, error) {
	payload := struct {
		Meta      manifestMeta   `json:"meta"`
		Documents []DocumentInfo `json:"documents"`
	}{Meta: meta, Documents: docs}
	return json.MarshalIndent(payload, "", "  ")
}

// deriveManifestSidecarPath returns a sidecar JSON path next to the output Markdown.
func deriveManifestSidecarPath(outputPath string) string {
	return outputPath + ".manifest.json"
}
