package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigFile_YAMLAndApply(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "change.yaml")
	content := `input:
  mt: mt.mxliff
memsource:
  project: p1
  peJob: j2
  timeout: 10s
estimate:
  algorithm: ratio
  normalize: true
output:
  markdown: out.md
  topSegments: 5
`
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	fc, err := LoadConfigFile(p)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	cfg := Config{Algorithm: defaultAlgorithm, OutputPath: defaultOutputPath, TopSegments: defaultTopSegments, RequestTimeout: defaultRequestTimeout}
	ApplyFileConfig(&cfg, fc)
	if cfg.MTPath != "mt.mxliff" || cfg.Project != "p1" || cfg.PEJob != "j2" {
		t.Fatalf("inputs not applied: %+v", cfg)
	}
	if cfg.Algorithm != "ratio" || !cfg.Normalize || cfg.RequestTimeout != 10*time.Second {
		t.Fatalf("estimate section not applied: %+v", cfg)
	}
	if cfg.OutputPath != "out.md" || cfg.TopSegments != 5 {
		t.Fatalf("output section not applied: %+v", cfg)
	}
}

func TestLoadConfigFile_JSON(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "change.json")
	if err := os.WriteFile(p, []byte(`{"input":{"pe":"pe.xlf"},"estimate":{"maxDocumentBytes":2048}}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	fc, err := LoadConfigFile(p)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if fc.Input.PE != "pe.xlf" || fc.Estimate.MaxDocumentBytes != 2048 {
		t.Fatalf("unexpected file config: %+v", fc)
	}
}

func TestValidateConfig(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"local files", Config{Algorithm: "levenshtein", OutputPath: "r.md", MTPath: "a", PEPath: "b"}, ""},
		{"bad algorithm", Config{Algorithm: "cosine", OutputPath: "r.md", MTPath: "a"}, "unknown algorithm"},
		{"no inputs", Config{OutputPath: "r.md"}, "no MT or PE input"},
		{"jobs need token", Config{OutputPath: "r.md", Project: "p", MTJob: "j"}, "token is required"},
		{"jobs need project", Config{OutputPath: "r.md", MemsourceToken: "t", MTJob: "j"}, "project is required"},
		{"check token", Config{CheckToken: true, MemsourceToken: "t"}, ""},
		{"check token without token", Config{CheckToken: true}, "token is required"},
		{"negative limit", Config{OutputPath: "r.md", MTPath: "a", TopSegments: -1}, "negative"},
		{"negative ratio limit", Config{OutputPath: "r.md", MTPath: "a", MaxRatioRunes: -1}, "negative"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateConfig(tc.cfg)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("err=%v, want containing %q", err, tc.wantErr)
			}
		})
	}
}
