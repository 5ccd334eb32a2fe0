package app

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"unicode/utf8"

	"github.com/mangeshk619/memsource-change-app/internal/estimate"
	"github.com/mangeshk619/memsource-change-app/internal/extract"
	"github.com/mangeshk619/memsource-change-app/internal/memsource"
)

// Comparison is the outcome of one MT/PE run.
type Comparison struct {
	Mode       extract.Mode    `json:"-"`
	Normalized bool            `json:"normalized"`
	MT         DocumentInfo    `json:"mt"`
	PE         DocumentInfo    `json:"pe"`
	Result     estimate.Result `json:"result"`
	Warnings   []string        `json:"warnings,omitempty"`
}

// DocumentInfo summarises one input buffer and what was extracted from it.
type DocumentInfo struct {
	Role      memsource.Role `json:"role"`
	Container string         `json:"container"`
	Bytes     int            `json:"bytes"`
	SHA256    string         `json:"sha256,omitempty"`
	Segments  int            `json:"segments"`
	Chars     int            `json:"chars"`
	Entries   []string       `json:"entries,omitempty"`
	Empty     bool           `json:"empty"`
}

func describeDocument(role memsource.Role, raw []byte, doc extract.Document) DocumentInfo {
	info := DocumentInfo{
		Role:      role,
		Container: doc.Container.String(),
		Bytes:     len(raw),
		Segments:  len(doc.Segments),
		Entries:   doc.Entries,
		Empty:     doc.IsEmpty(),
	}
	if len(raw) > 0 {
		info.SHA256 = computeSHA256Hex(raw)
	}
	if doc.Mode == extract.ModeSegments && doc.Container != extract.ContainerRawText {
		for _, s := range doc.Segments {
			info.Chars += utf8.RuneCountInString(s.Target)
		}
	} else {
		info.Chars = utf8.RuneCountInString(doc.Text)
	}
	return info
}

func documentWarnings(info DocumentInfo, mode extract.Mode) []string {
	var out []string
	switch {
	case info.Container == extract.ContainerEmpty.String():
		out = append(out, fmt.Sprintf("%s document is empty", info.Role))
	case info.Container == extract.ContainerRawText.String() && mode == extract.ModeSegments:
		out = append(out, fmt.Sprintf("%s document did not parse as XLIFF; no segments could be extracted", info.Role))
	case info.Container == extract.ContainerRawText.String():
		out = append(out, fmt.Sprintf("%s document did not parse as XLIFF; compared as raw text", info.Role))
	case info.Empty:
		out = append(out, fmt.Sprintf("%s document contains no translation units with target text", info.Role))
	}
	return out
}

// computeSHA256Hex returns a lowercase hex-encoded SHA-256 of b.
func computeSHA256Hex(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}
