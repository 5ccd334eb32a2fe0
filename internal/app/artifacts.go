package app

import (
	"archive/tar"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/klauspost/compress/gzip"
)

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// exportArtifactsBundle writes a deterministic set of artifacts under
// ReportsDir/<bundle>/ and optionally a tar.gz containing those files.
func exportArtifactsBundle(cfg Config, cmp Comparison, md string, meta manifestMeta) error {
	root := strings.TrimSpace(cfg.ReportsDir)
	if root == "" {
		return nil
	}
	name := bundleName(cfg)
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir bundle dir: %w", err)
	}

	if err := writeJSON(filepath.Join(dir, "result.json"), cmp); err != nil {
		return err
	}
	if len(cmp.Result.PerSegment) > 0 {
		if err := writeJSON(filepath.Join(dir, "segments.json"), cmp.Result.PerSegment); err != nil {
			return err
		}
	}
	if strings.TrimSpace(md) != "" {
		if err := os.WriteFile(filepath.Join(dir, "report.md"), []byte(md), 0o644); err != nil {
			return fmt.Errorf("write report copy: %w", err)
		}
	}
	data, err := marshalManifestJSON(meta, []DocumentInfo{cmp.MT, cmp.PE})
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "manifest.json"), data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	if err := writeSHA256SUMS(dir); err != nil {
		return err
	}
	if cfg.ReportsTar {
		if err := tarGzDirectory(dir, filepath.Join(root, name+".tar.gz")); err != nil {
			return fmt.Errorf("tar bundle: %w", err)
		}
	}
	return nil
}

// bundleName derives a stable directory name from the job IDs or file names.
func bundleName(cfg Config) string {
	pick := func(path, job string) string {
		if strings.TrimSpace(path) != "" {
			return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		return job
	}
	parts := []string{cfg.Project, pick(cfg.MTPath, cfg.MTJob), pick(cfg.PEPath, cfg.PEJob)}
	return slugify(strings.Join(parts, " "))
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "comparison"
	}
	return s
}

func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func writeSHA256SUMS(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var b strings.Builder
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "SHA256SUMS" || strings.HasSuffix(name, ".tar.gz") {
			continue
		}
		sum, err := sha256File(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		b.WriteString(sum)
		b.WriteString("  ")
		b.WriteString(name)
		b.WriteString("\n")
	}
	return os.WriteFile(filepath.Join(dir, "SHA256SUMS"), []byte(b.String()), 0o644)
}

func sha256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// tarGzDirectory archives the regular files of srcDir, nested under its base name.
func tarGzDirectory(srcDir, outPath string) (err error) {
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	base := filepath.Base(srcDir)
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return err
		}
		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = base + "/" + e.Name()
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		f, err := os.Open(filepath.Join(srcDir, e.Name()))
		if err != nil {
			return err
		}
		_, err = io.Copy(tw, f)
		f.Close()
		if err != nil {
			return err
		}
	}
	if err := tw.Close(); err != nil {
		return err
	}
	return gz.Close()
}
