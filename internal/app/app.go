package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mangeshk619/memsource-change-app/internal/estimate"
	"github.com/mangeshk619/memsource-change-app/internal/extract"
	"github.com/mangeshk619/memsource-change-app/internal/memsource"
)

type App struct {
	cfg       Config
	client    *memsource.Client
	source    memsource.Source
	extractor extract.Extractor
	estimator estimate.Estimator
}

var (
	// ErrNoComparableText is returned when neither document yielded any text.
	// Per the exit code policy this results in a non-zero process exit.
	ErrNoComparableText = errors.New("no comparable text in either document")
	// ErrDocumentTooLarge is returned before extraction when an input exceeds
	// MaxDocumentBytes.
	ErrDocumentTooLarge = errors.New("document exceeds size limit")
)

func New(ctx context.Context, cfg Config) (*App, error) {
	algo, err := estimate.ParseAlgorithm(cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	est, err := estimate.New(algo)
	if err != nil {
		return nil, err
	}
	if cfg.MaxDocumentBytes == 0 {
		cfg.MaxDocumentBytes = defaultMaxDocumentBytes
	}
	if cfg.MaxRatioRunes == 0 {
		cfg.MaxRatioRunes = defaultMaxRatioRunes
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	a := &App{
		cfg:       cfg,
		extractor: extract.XLIFFExtractor{Normalize: cfg.Normalize},
		estimator: est,
	}
	if strings.TrimSpace(cfg.MemsourceToken) != "" {
		a.client = &memsource.Client{
			BaseURL:           cfg.MemsourceBaseURL,
			Token:             cfg.MemsourceToken,
			HTTPClient:        newAPIHTTPClient(cfg.RequestTimeout),
			UserAgent:         "memsource-change-app/" + BuildVersion,
			MaxAttempts:       2,
			PerRequestTimeout: cfg.RequestTimeout,
			MaxBodyBytes:      cfg.MaxDocumentBytes,
		}
	}
	a.source = &roleSource{
		files: memsource.FileSource{Paths: map[memsource.Role]string{memsource.RoleMT: cfg.MTPath, memsource.RolePE: cfg.PEPath}},
		jobs: memsource.JobSource{
			Client:  a.client,
			Project: cfg.Project,
			Jobs:    map[memsource.Role]string{memsource.RoleMT: cfg.MTJob, memsource.RolePE: cfg.PEJob},
		},
	}
	log.Debug().Str("algorithm", string(algo)).Str("mode", est.Mode().String()).Bool("normalize", cfg.Normalize).Msg("estimator ready")
	return a, nil
}

func (a *App) Run(ctx context.Context) error {
	if a.cfg.CheckToken {
		return a.checkToken(ctx)
	}

	// 1) Fetch both documents; a missing one counts as empty input.
	var warnings []string
	mt, err := a.fetch(ctx, memsource.RoleMT, &warnings)
	if err != nil {
		return err
	}
	pe, err := a.fetch(ctx, memsource.RolePE, &warnings)
	if err != nil {
		return err
	}

	// 2) Extract and estimate
	cmp, err := a.Compare(mt, pe)
	if err != nil {
		return err
	}
	cmp.Warnings = append(warnings, cmp.Warnings...)
	for _, w := range cmp.Warnings {
		log.Warn().Msg(w)
	}
	log.Info().
		Str("algorithm", string(cmp.Result.Algorithm)).
		Str("change", fmt.Sprintf("%.2f%%", cmp.Result.ChangePercent)).
		Int("distance", cmp.Result.Distance).
		Int("segments", cmp.Result.Segments).
		Msg("change estimated")

	// 3) Render the report with footer and embedded manifest
	md := renderReport(cmp, a.cfg.TopSegments)
	md = appendReproFooter(md, cmp, a.sourceLabel())
	meta := manifestMeta{
		Algorithm:   string(cmp.Result.Algorithm),
		Mode:        cmp.Mode.String(),
		Normalized:  cmp.Normalized,
		Version:     BuildVersion,
		GeneratedAt: time.Now().UTC(),
	}
	docs := []DocumentInfo{cmp.MT, cmp.PE}
	md = appendEmbeddedManifest(md, meta, docs)

	// 4) Write outputs
	if err := a.writeOutputs(cmp, md, meta, docs); err != nil {
		return err
	}
	if cmp.MT.Empty && cmp.PE.Empty {
		return ErrNoComparableText
	}
	return nil
}

// Compare runs the extract and estimate pipeline over two raw buffers. It
// only fails when an input exceeds MaxDocumentBytes, or when a text compared
// by the ratio algorithm exceeds MaxRatioRunes; everything else degrades to
// warnings on the returned Comparison.
func (a *App) Compare(mt, pe []byte) (Comparison, error) {
	limit := a.cfg.MaxDocumentBytes
	if limit <= 0 {
		limit = defaultMaxDocumentBytes
	}
	for _, in := range []struct {
		role memsource.Role
		b    []byte
	}{{memsource.RoleMT, mt}, {memsource.RolePE, pe}} {
		if int64(len(in.b)) > limit {
			return Comparison{}, fmt.Errorf("%s document is %d bytes (limit %d): %w", in.role, len(in.b), limit, ErrDocumentTooLarge)
		}
	}

	mode := a.estimator.Mode()
	mtDoc := a.extractor.Extract(mt, mode)
	peDoc := a.extractor.Extract(pe, mode)
	cmp := Comparison{
		Mode:       mode,
		Normalized: a.cfg.Normalize,
		MT:         describeDocument(memsource.RoleMT, mt, mtDoc),
		PE:         describeDocument(memsource.RolePE, pe, peDoc),
	}
	if mode == extract.ModeBlob && a.cfg.MaxRatioRunes > 0 {
		for _, d := range []DocumentInfo{cmp.MT, cmp.PE} {
			if d.Chars > a.cfg.MaxRatioRunes {
				return Comparison{}, fmt.Errorf("%s text has %d characters (ratio limit %d): %w", d.Role, d.Chars, a.cfg.MaxRatioRunes, ErrDocumentTooLarge)
			}
		}
	}
	cmp.Result = a.estimator.Estimate(mtDoc, peDoc)
	cmp.Warnings = append(cmp.Warnings, documentWarnings(cmp.MT, mode)...)
	cmp.Warnings = append(cmp.Warnings, documentWarnings(cmp.PE, mode)...)
	return cmp, nil
}

func (a *App) checkToken(ctx context.Context) error {
	if a.client == nil {
		return memsource.ErrUnauthorized
	}
	n, err := a.client.CheckToken(ctx)
	if err != nil {
		return fmt.Errorf("check token: %w", err)
	}
	log.Info().Int("users", n).Msg("memsource token is valid")
	return nil
}

func (a *App) fetch(ctx context.Context, role memsource.Role, warnings *[]string) ([]byte, error) {
	b, err := a.source.Fetch(ctx, role)
	if errors.Is(err, memsource.ErrNotFound) {
		log.Debug().Err(err).Str("role", string(role)).Msg("document not found")
		*warnings = append(*warnings, fmt.Sprintf("%s document not found; treated as empty", role))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", role, err)
	}
	log.Debug().Str("role", string(role)).Int("bytes", len(b)).Msg("document fetched")
	return b, nil
}

func (a *App) sourceLabel() string {
	var parts []string
	for _, p := range []struct {
		role      memsource.Role
		path, job string
	}{{memsource.RoleMT, a.cfg.MTPath, a.cfg.MTJob}, {memsource.RolePE, a.cfg.PEPath, a.cfg.PEJob}} {
		switch {
		case p.path != "":
			parts = append(parts, string(p.role)+"=file")
		case p.job != "":
			parts = append(parts, string(p.role)+"=memsource")
		default:
			parts = append(parts, string(p.role)+"=none")
		}
	}
	return strings.Join(parts, ",")
}

func (a *App) writeOutputs(cmp Comparison, md string, meta manifestMeta, docs []DocumentInfo) error {
	if a.cfg.OutputPath == "-" {
		if _, err := os.Stdout.WriteString(md); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	} else {
		if err := os.WriteFile(a.cfg.OutputPath, []byte(md), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		sidecar := deriveManifestSidecarPath(a.cfg.OutputPath)
		data, err := marshalManifestJSON(meta, docs)
		if err == nil {
			err = os.WriteFile(sidecar, data, 0o644)
		}
		if err != nil {
			log.Warn().Err(err).Str("out", sidecar).Msg("manifest sidecar not written")
		}
		log.Info().Str("out", a.cfg.OutputPath).Msg("wrote report")
	}
	if a.cfg.OutputPDFPath != "" {
		if err := writeSimplePDF(md, a.cfg.OutputPDFPath); err != nil {
			log.Warn().Err(err).Str("out", a.cfg.OutputPDFPath).Msg("pdf rendering failed")
		} else {
			log.Info().Str("out", a.cfg.OutputPDFPath).Msg("wrote pdf")
		}
	}
	if a.cfg.OutputJSONPath != "" {
		if err := writeJSON(a.cfg.OutputJSONPath, cmp); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
	}
	if a.cfg.ReportsDir != "" {
		if err := exportArtifactsBundle(a.cfg, cmp, md, meta); err != nil {
			log.Warn().Err(err).Str("dir", a.cfg.ReportsDir).Msg("artifacts export failed")
		}
	}
	return nil
}

// roleSource reads a role from a local file when a path is configured and
// from Memsource otherwise.
type roleSource struct {
	files memsource.FileSource
	jobs  memsource.JobSource
}

func (s *roleSource) Fetch(ctx context.Context, role memsource.Role) ([]byte, error) {
	if strings.TrimSpace(s.files.Paths[role]) != "" {
		return s.files.Fetch(ctx, role)
	}
	if strings.TrimSpace(s.jobs.Jobs[role]) != "" && s.jobs.Client != nil {
		return s.jobs.Fetch(ctx, role)
	}
	return nil, memsource.ErrNotFound
}
