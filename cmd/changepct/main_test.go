package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apppkg "github.com/mangeshk619/memsource-change-app/internal/app"
	"github.com/mangeshk619/memsource-change-app/internal/memsource"
)

const unit = `<xliff version="1.2" xmlns="urn:oasis:names:tc:xliff:document:1.2"><file><body><trans-unit id="1"><source>s</source><target>%s</target></trans-unit></body></file></xliff>`

// Smoke test: run writes the report for two local files.
func TestRun_LocalFiles_WritesOutput(t *testing.T) {
	dir := t.TempDir()
	mt := filepath.Join(dir, "mt.xlf")
	pe := filepath.Join(dir, "pe.xlf")
	out := filepath.Join(dir, "out.md")
	if err := os.WriteFile(mt, []byte(fmt.Sprintf(unit, "kitten")), 0o644); err != nil {
		t.Fatalf("write mt: %v", err)
	}
	if err := os.WriteFile(pe, []byte(fmt.Sprintf(unit, "sitting")), 0o644); err != nil {
		t.Fatalf("write pe: %v", err)
	}
	cfg := apppkg.Config{MTPath: mt, PEPath: pe, OutputPath: out, Algorithm: "levenshtein"}
	if err := run(cfg); err != nil {
		t.Fatalf("run error: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("expected output file, err=%v", err)
	}
	// kitten -> sitting: distance 3 over 7
	if !strings.Contains(string(b), "- Change: 42.86%") {
		t.Fatalf("unexpected report:\n%s", b)
	}
}

func TestRun_NoComparableText_Error(t *testing.T) {
	dir := t.TempDir()
	mt := filepath.Join(dir, "mt.xlf")
	if err := os.WriteFile(mt, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	err := run(apppkg.Config{MTPath: mt, OutputPath: filepath.Join(dir, "out.md")})
	if !errors.Is(err, apppkg.ErrNoComparableText) {
		t.Fatalf("expected ErrNoComparableText, got %v", err)
	}
	if exitCode(err) != 2 {
		t.Fatalf("exit code=%d, want 2", exitCode(err))
	}
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{apppkg.ErrDocumentTooLarge, 2},
		{fmt.Errorf("check token: %w", memsource.ErrUnauthorized), 2},
		{errors.New("disk full"), 1},
	}
	for _, tc := range cases {
		if got := exitCode(tc.err); got != tc.want {
			t.Fatalf("exitCode(%v)=%d, want %d", tc.err, got, tc.want)
		}
	}
}
