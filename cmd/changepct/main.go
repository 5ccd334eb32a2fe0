package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mangeshk619/memsource-change-app/internal/app"
	"github.com/mangeshk619/memsource-change-app/internal/memsource"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		mtPath       string
		pePath       string
		algorithm    string
		normalize    bool
		outputPath   string
		outputPDF    string
		outputJSON   string
		reportsDir   string
		reportsTar   bool
		topSegments  int
		maxBytes     int64
		maxRatio     int
		baseURL      string
		token        string
		project      string
		mtJob        string
		peJob        string
		timeout      time.Duration
		checkToken   bool
		configPath   string
		envFiles     string
		verbose      bool
		printVersion bool
	)

	flag.StringVar(&mtPath, "mt", "", "Path to the machine-translated document (XLIFF or zip)")
	flag.StringVar(&pePath, "pe", "", "Path to the post-edited document (XLIFF or zip)")
	flag.StringVar(&algorithm, "algo", "levenshtein", "Change algorithm: levenshtein (per segment) or ratio (whole text)")
	flag.BoolVar(&normalize, "normalize", false, "Strip inline tags, collapse whitespace and NFC-normalise before comparing")
	flag.StringVar(&outputPath, "output", "report.md", "Path to write the Markdown report (- for stdout)")
	flag.StringVar(&outputPDF, "output.pdf", "", "Optional path to also write a PDF rendering of the report")
	flag.StringVar(&outputJSON, "output.json", "", "Optional path to write the machine-readable result")
	flag.StringVar(&reportsDir, "reports.dir", "", "Optional directory for an artifacts bundle")
	flag.BoolVar(&reportsTar, "reports.tar", false, "Also pack the artifacts bundle as tar.gz")
	flag.IntVar(&topSegments, "top", 10, "Number of most-changed segments listed in the report")
	flag.Int64Var(&maxBytes, "max.bytes", 8<<20, "Maximum accepted size of one document in bytes")
	flag.IntVar(&maxRatio, "max.ratioRunes", 20000, "Maximum characters per text compared by the ratio algorithm")
	flag.StringVar(&baseURL, "memsource.url", "", "Memsource API base URL")
	flag.StringVar(&token, "memsource.token", "", "Memsource API token")
	flag.StringVar(&project, "project", "", "Memsource project UID")
	flag.StringVar(&mtJob, "mt.job", "", "Memsource job UID holding the MT version")
	flag.StringVar(&peJob, "pe.job", "", "Memsource job UID holding the PE version")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "Per-request timeout for Memsource calls")
	flag.BoolVar(&checkToken, "check-token", false, "Only verify the Memsource token and exit")
	flag.StringVar(&configPath, "config", "", "Optional YAML or JSON config file")
	flag.StringVar(&envFiles, "env", ".env", "Comma-separated dotenv files to load")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.BoolVar(&printVersion, "version", false, "Print build information and exit")
	flag.Parse()

	if printVersion {
		fmt.Printf("changepct %s (%s, %s)\n", app.BuildVersion, app.BuildCommit, app.BuildDate)
		return
	}

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := app.LoadEnvFiles(strings.Split(envFiles, ",")...); err != nil {
		log.Warn().Err(err).Msg("dotenv")
	}

	cfg := app.Config{
		MTPath:           mtPath,
		PEPath:           pePath,
		MemsourceBaseURL: baseURL,
		MemsourceToken:   token,
		Project:          project,
		MTJob:            mtJob,
		PEJob:            peJob,
		RequestTimeout:   timeout,
		CheckToken:       checkToken,
		Algorithm:        algorithm,
		Normalize:        normalize,
		MaxDocumentBytes: maxBytes,
		MaxRatioRunes:    maxRatio,
		OutputPath:       outputPath,
		OutputPDFPath:    outputPDF,
		OutputJSONPath:   outputJSON,
		ReportsDir:       reportsDir,
		ReportsTar:       reportsTar,
		TopSegments:      topSegments,
		Verbose:          verbose,
	}
	app.ApplyEnvToConfig(&cfg)
	if strings.TrimSpace(configPath) != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("load config")
			os.Exit(1)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	if cfg.Verbose && !verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if err := app.ValidateConfig(cfg); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(exitCode(err))
	}
}

// exitCode maps known sentinel errors to exit code 2 and anything else to 1.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, app.ErrNoComparableText),
		errors.Is(err, app.ErrDocumentTooLarge),
		errors.Is(err, memsource.ErrUnauthorized):
		return 2
	}
	return 1
}

func run(cfg app.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}

	return a.Run(ctx)
}
