package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/mangeshk619/memsource-change-app/internal/estimate"
)

// FileConfig represents the single-file configuration schema.
// Nested sections map naturally to flags/env.
type FileConfig struct {
	Input struct {
		MT string `yaml:"mt" json:"mt"`
		PE string `yaml:"pe" json:"pe"`
	} `yaml:"input" json:"input"`

	Memsource struct {
		BaseURL string        `yaml:"base" json:"base"`
		Token   string        `yaml:"token" json:"token"`
		Project string        `yaml:"project" json:"project"`
		MTJob   string        `yaml:"mtJob" json:"mtJob"`
		PEJob   string        `yaml:"peJob" json:"peJob"`
		Timeout time.Duration `yaml:"timeout" json:"timeout"`
	} `yaml:"memsource" json:"memsource"`

	Estimate struct {
		Algorithm        string `yaml:"algorithm" json:"algorithm"`
		Normalize        *bool  `yaml:"normalize" json:"normalize"`
		MaxDocumentBytes int64  `yaml:"maxDocumentBytes" json:"maxDocumentBytes"`
		MaxRatioRunes    int    `yaml:"maxRatioRunes" json:"maxRatioRunes"`
	} `yaml:"estimate" json:"estimate"`

	Output struct {
		Markdown    string `yaml:"markdown" json:"markdown"`
		PDF         string `yaml:"pdf" json:"pdf"`
		JSON        string `yaml:"json" json:"json"`
		ReportsDir  string `yaml:"reportsDir" json:"reportsDir"`
		ReportsTar  bool   `yaml:"reportsTar" json:"reportsTar"`
		TopSegments int    `yaml:"topSegments" json:"topSegments"`
	} `yaml:"output" json:"output"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields that
// are currently unset or still at their flag default. Flags and env should
// already have been applied; the file only supplies defaults.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.MTPath == "" && fc.Input.MT != "" {
		cfg.MTPath = fc.Input.MT
	}
	if cfg.PEPath == "" && fc.Input.PE != "" {
		cfg.PEPath = fc.Input.PE
	}

	if cfg.MemsourceBaseURL == "" && fc.Memsource.BaseURL != "" {
		cfg.MemsourceBaseURL = fc.Memsource.BaseURL
	}
	if cfg.MemsourceToken == "" && fc.Memsource.Token != "" {
		cfg.MemsourceToken = fc.Memsource.Token
	}
	if cfg.Project == "" && fc.Memsource.Project != "" {
		cfg.Project = fc.Memsource.Project
	}
	if cfg.MTJob == "" && fc.Memsource.MTJob != "" {
		cfg.MTJob = fc.Memsource.MTJob
	}
	if cfg.PEJob == "" && fc.Memsource.PEJob != "" {
		cfg.PEJob = fc.Memsource.PEJob
	}
	if (cfg.RequestTimeout == 0 || cfg.RequestTimeout == defaultRequestTimeout) && fc.Memsource.Timeout > 0 {
		cfg.RequestTimeout = fc.Memsource.Timeout
	}

	if (cfg.Algorithm == "" || cfg.Algorithm == defaultAlgorithm) && fc.Estimate.Algorithm != "" {
		cfg.Algorithm = fc.Estimate.Algorithm
	}
	if !cfg.Normalize && fc.Estimate.Normalize != nil && *fc.Estimate.Normalize {
		cfg.Normalize = true
	}
	if (cfg.MaxDocumentBytes == 0 || cfg.MaxDocumentBytes == defaultMaxDocumentBytes) && fc.Estimate.MaxDocumentBytes > 0 {
		cfg.MaxDocumentBytes = fc.Estimate.MaxDocumentBytes
	}

	if (cfg.MaxRatioRunes == 0 || cfg.MaxRatioRunes == defaultMaxRatioRunes) && fc.Estimate.MaxRatioRunes > 0 {
		cfg.MaxRatioRunes = fc.Estimate.MaxRatioRunes
	}

	if (cfg.OutputPath == "" || cfg.OutputPath == defaultOutputPath) && fc.Output.Markdown != "" {
		cfg.OutputPath = fc.Output.Markdown
	}
	if cfg.OutputPDFPath == "" && fc.Output.PDF != "" {
		cfg.OutputPDFPath = fc.Output.PDF
	}
	if cfg.OutputJSONPath == "" && fc.Output.JSON != "" {
		cfg.OutputJSONPath = fc.Output.JSON
	}
	if cfg.ReportsDir == "" && fc.Output.ReportsDir != "" {
		cfg.ReportsDir = fc.Output.ReportsDir
	}
	if !cfg.ReportsTar && fc.Output.ReportsTar {
		cfg.ReportsTar = true
	}
	if (cfg.TopSegments == 0 || cfg.TopSegments == defaultTopSegments) && fc.Output.TopSegments > 0 {
		cfg.TopSegments = fc.Output.TopSegments
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}

// ValidateConfig performs minimal validation for required settings.
func ValidateConfig(cfg Config) error {
	if _, err := estimate.ParseAlgorithm(cfg.Algorithm); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if cfg.MaxDocumentBytes < 0 || cfg.MaxRatioRunes < 0 || cfg.TopSegments < 0 {
		return errors.New("config: negative limits are not allowed")
	}
	if cfg.CheckToken {
		if strings.TrimSpace(cfg.MemsourceToken) == "" {
			return errors.New("config: memsource token is required (or set MEMSOURCE_API_TOKEN)")
		}
		return nil
	}
	if strings.TrimSpace(cfg.OutputPath) == "" {
		return errors.New("config: output path is required")
	}
	usesJobs := (cfg.MTPath == "" && cfg.MTJob != "") || (cfg.PEPath == "" && cfg.PEJob != "")
	if usesJobs {
		if strings.TrimSpace(cfg.MemsourceToken) == "" {
			return errors.New("config: memsource token is required to download jobs")
		}
		if strings.TrimSpace(cfg.Project) == "" {
			return errors.New("config: memsource project is required to download jobs")
		}
	}
	if cfg.MTPath == "" && cfg.MTJob == "" && cfg.PEPath == "" && cfg.PEJob == "" {
		return errors.New("config: no MT or PE input given")
	}
	return nil
}
