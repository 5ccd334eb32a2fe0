package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// LoadEnvFiles reads KEY=VALUE pairs and populates the process environment.
func TestLoadEnvFiles_LoadsKeyValues(t *testing.T) {
	t.Setenv("FOO", "")
	t.Setenv("BAR", "")

	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env.test")
	content := "\n# sample dotenv file\nFOO=alpha\nexport BAR=\"beta\"\n"
	if err := os.WriteFile(envPath, []byte(content), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}

	if err := LoadEnvFiles(envPath); err != nil {
		t.Fatalf("LoadEnvFiles error: %v", err)
	}
	if got := os.Getenv("FOO"); got != "alpha" {
		t.Fatalf("FOO=%q, want alpha", got)
	}
	if got := os.Getenv("BAR"); got != "beta" {
		t.Fatalf("BAR=%q, want beta", got)
	}
}

// Later files override earlier ones when loading multiple dotenv files.
func TestLoadEnvFiles_OverrideOrder(t *testing.T) {
	t.Setenv("K", "")
	dir := t.TempDir()
	a := filepath.Join(dir, ".env.a")
	b := filepath.Join(dir, ".env.b")
	if err := os.WriteFile(a, []byte("K=first\n"), 0o600); err != nil {
		t.Fatalf("write a: %v", err)
	}
	if err := os.WriteFile(b, []byte("K=second\n"), 0o600); err != nil {
		t.Fatalf("write b: %v", err)
	}

	if err := LoadEnvFiles(a, b); err != nil {
		t.Fatalf("LoadEnvFiles error: %v", err)
	}
	if got := os.Getenv("K"); got != "second" {
		t.Fatalf("override order failed: got %q, want second", got)
	}
}

func TestLoadEnvFiles_KeepsProcessEnvAndSkipsMissing(t *testing.T) {
	t.Setenv("MEMSOURCE_API_TOKEN", "from-process")
	dir := t.TempDir()
	p := filepath.Join(dir, ".env")
	if err := os.WriteFile(p, []byte("MEMSOURCE_API_TOKEN=from-file\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := LoadEnvFiles(filepath.Join(dir, "missing.env"), p); err != nil {
		t.Fatalf("LoadEnvFiles error: %v", err)
	}
	if got := os.Getenv("MEMSOURCE_API_TOKEN"); got != "from-process" {
		t.Fatalf("token=%q, want from-process", got)
	}
}

func TestApplyEnvToConfig_FromEnv(t *testing.T) {
	t.Setenv("MEMSOURCE_API_TOKEN", "")
	t.Setenv("MEMSOURCE_TOKEN", "legacy-token")
	t.Setenv("MEMSOURCE_PROJECT", "proj-1")
	t.Setenv("MEMSOURCE_MT_JOB", "job-mt")
	t.Setenv("MEMSOURCE_PE_JOB", "job-pe")
	t.Setenv("CHANGE_ALGORITHM", "ratio")
	t.Setenv("CHANGE_NORMALIZE", "yes")
	t.Setenv("MAX_DOCUMENT_BYTES", "1024")
	t.Setenv("MAX_RATIO_RUNES", "500")
	t.Setenv("TOP_SEGMENTS", "3")
	t.Setenv("MEMSOURCE_TIMEOUT", "5s")

	cfg := Config{Algorithm: defaultAlgorithm, MaxDocumentBytes: defaultMaxDocumentBytes, MaxRatioRunes: defaultMaxRatioRunes, TopSegments: defaultTopSegments}
	ApplyEnvToConfig(&cfg)
	if cfg.MaxRatioRunes != 500 {
		t.Fatalf("MAX_RATIO_RUNES not applied: %d", cfg.MaxRatioRunes)
	}

	if cfg.MemsourceToken != "legacy-token" {
		t.Fatalf("token fallback not applied: %q", cfg.MemsourceToken)
	}
	if cfg.Project != "proj-1" || cfg.MTJob != "job-mt" || cfg.PEJob != "job-pe" {
		t.Fatalf("job env not applied: %+v", cfg)
	}
	if cfg.Algorithm != "ratio" || !cfg.Normalize {
		t.Fatalf("estimate env not applied: algo=%q normalize=%v", cfg.Algorithm, cfg.Normalize)
	}
	if cfg.MaxDocumentBytes != 1024 || cfg.TopSegments != 3 || cfg.RequestTimeout != 5*time.Second {
		t.Fatalf("numeric env not applied: %+v", cfg)
	}
}

// Explicit flag values win over environment.
func TestApplyEnvToConfig_FlagsWin(t *testing.T) {
	t.Setenv("CHANGE_ALGORITHM", "ratio")
	t.Setenv("MEMSOURCE_API_TOKEN", "env-token")
	cfg := Config{Algorithm: "edit", MemsourceToken: "flag-token"}
	ApplyEnvToConfig(&cfg)
	if cfg.Algorithm != "edit" || cfg.MemsourceToken != "flag-token" {
		t.Fatalf("env overrode explicit values: %+v", cfg)
	}
}
