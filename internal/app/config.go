package app

import "time"

// Config holds runtime configuration for the application.
type Config struct {
	// Local inputs; take precedence over Memsource jobs for the same role.
	MTPath string
	PEPath string

	// Memsource
	MemsourceBaseURL string
	MemsourceToken   string
	Project          string
	MTJob            string
	PEJob            string
	RequestTimeout   time.Duration
	CheckToken       bool

	// Estimation
	Algorithm        string
	Normalize        bool
	MaxDocumentBytes int64
	// MaxRatioRunes caps each extracted text compared by the ratio algorithm.
	MaxRatioRunes int

	// Output
	OutputPath     string
	OutputPDFPath  string
	OutputJSONPath string
	ReportsDir     string
	ReportsTar     bool
	TopSegments    int

	Verbose bool
}

const (
	defaultOutputPath       = "report.md"
	defaultAlgorithm        = "levenshtein"
	defaultMaxDocumentBytes = 8 << 20
	defaultMaxRatioRunes    = 20000
	defaultTopSegments      = 10
	defaultRequestTimeout   = 30 * time.Second
)
