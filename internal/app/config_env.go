package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env; a field still holding its
// flag default counts as unset.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	setStr := func(dst *string, def string, keys ...string) {
		if *dst != "" && *dst != def {
			return
		}
		for _, k := range keys {
			if v := strings.TrimSpace(os.Getenv(k)); v != "" {
				*dst = v
				return
			}
		}
	}
	setStr(&cfg.MemsourceToken, "", "MEMSOURCE_API_TOKEN", "MEMSOURCE_TOKEN")
	setStr(&cfg.MemsourceBaseURL, "", "MEMSOURCE_BASE_URL")
	setStr(&cfg.Project, "", "MEMSOURCE_PROJECT")
	setStr(&cfg.MTJob, "", "MEMSOURCE_MT_JOB")
	setStr(&cfg.PEJob, "", "MEMSOURCE_PE_JOB")
	setStr(&cfg.MTPath, "", "MT_FILE")
	setStr(&cfg.PEPath, "", "PE_FILE")
	setStr(&cfg.Algorithm, defaultAlgorithm, "CHANGE_ALGORITHM")
	setStr(&cfg.OutputPath, defaultOutputPath, "REPORT_OUTPUT")
	setStr(&cfg.ReportsDir, "", "REPORTS_DIR")

	if cfg.MaxDocumentBytes == 0 || cfg.MaxDocumentBytes == defaultMaxDocumentBytes {
		if n, err := strconv.ParseInt(strings.TrimSpace(os.Getenv("MAX_DOCUMENT_BYTES")), 10, 64); err == nil && n > 0 {
			cfg.MaxDocumentBytes = n
		}
	}
	if cfg.MaxRatioRunes == 0 || cfg.MaxRatioRunes == defaultMaxRatioRunes {
		if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("MAX_RATIO_RUNES"))); err == nil && n > 0 {
			cfg.MaxRatioRunes = n
		}
	}
	if cfg.TopSegments == 0 || cfg.TopSegments == defaultTopSegments {
		if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv("TOP_SEGMENTS"))); err == nil && n >= 0 {
			cfg.TopSegments = n
		}
	}
	if cfg.RequestTimeout == 0 || cfg.RequestTimeout == defaultRequestTimeout {
		if d, err := time.ParseDuration(strings.TrimSpace(os.Getenv("MEMSOURCE_TIMEOUT"))); err == nil && d > 0 {
			cfg.RequestTimeout = d
		}
	}

	setBool := func(dst *bool, envKey string) {
		if *dst {
			return
		}
		if s := strings.ToLower(strings.TrimSpace(os.Getenv(envKey))); s != "" {
			if s == "1" || s == "true" || s == "yes" || s == "on" {
				*dst = true
			}
		}
	}
	setBool(&cfg.Normalize, "CHANGE_NORMALIZE")
	setBool(&cfg.Verbose, "VERBOSE")
	setBool(&cfg.ReportsTar, "REPORTS_TAR")
}
