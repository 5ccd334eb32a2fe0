package app

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestAppendEmbeddedManifest_AppendsReadableSection(t *testing.T) {
	base := "# Doc\n\nBody\n"
	meta := manifestMeta{
		Algorithm:   "ratio",
		Mode:        "blob",
		GeneratedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	docs := []DocumentInfo{
		{Role: "MT", SHA256: "abcd", Bytes: 5},
		{Role: "PE"},
	}
	out := appendEmbeddedManifest(base, meta, docs)
	if !strings.Contains(out, "## Manifest") {
		t.Fatalf("expected a Manifest section")
	}
	if !strings.Contains(out, "- Generated: 2024-01-01T12:00:00Z") {
		t.Fatalf("expected generated timestamp; got:\n%s", out)
	}
	if !strings.Contains(out, "MT: sha256=abcd; bytes=5") {
		t.Fatalf("expected MT entry line; got:\n%s", out)
	}
	if !strings.Contains(out, "PE: sha256=none; bytes=0") {
		t.Fatalf("expected PE entry line; got:\n%s", out)
	}
}

func TestMarshalManifestJSON_ShapesPayload(t *testing.T) {
	meta := manifestMeta{Algorithm: "levenshtein", Mode: "segments", Version: "1.0.0"}
	data, err := marshalManifestJSON(meta, []DocumentInfo{{Role: "MT", Container: "xml", Segments: 2}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var payload struct {
		Meta      map[string]any   `json:"meta"`
		Documents []map[string]any `json:"documents"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.Meta["algorithm"] != "levenshtein" || payload.Meta["version"] != "1.0.0" {
		t.Fatalf("unexpected meta: %v", payload.Meta)
	}
	if len(payload.Documents) != 1 || payload.Documents[0]["container"] != "xml" {
		t.Fatalf("unexpected documents: %v", payload.Documents)
	}
}

func TestDeriveManifestSidecarPath(t *testing.T) {
	if got := deriveManifestSidecarPath("out/report.md"); got != "out/report.md.manifest.json" {
		t.Fatalf("got %q", got)
	}
}
