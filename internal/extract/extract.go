package extract

import (
	"bytes"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/unicode"
)

// Segment is one translation unit: the source text and its target text.
type Segment struct {
	ID     string
	Source string
	Target string
}

// Container identifies which shape the input bytes turned out to have.
type Container int

const (
	ContainerEmpty Container = iota
	ContainerArchive
	ContainerXML
	ContainerRawText
)

func (c Container) String() string {
	switch c {
	case ContainerArchive:
		return "archive"
	case ContainerXML:
		return "xml"
	case ContainerRawText:
		return "raw-text"
	default:
		return "empty"
	}
}

// Mode selects the representation Extract produces.
type Mode int

const (
	// ModeSegments yields aligned (source, target) pairs per translation unit.
	ModeSegments Mode = iota
	// ModeBlob yields every target text joined into one string.
	ModeBlob
)

func (m Mode) String() string {
	if m == ModeBlob {
		return "blob"
	}
	return "segments"
}

// Document is the extracted representation of one input buffer. In
// ModeSegments, Segments carries the units; in ModeBlob, Text carries the
// joined targets. A raw-text fallback always fills Text.
type Document struct {
	Container Container
	Mode      Mode
	Segments  []Segment
	Text      string
	// Entries lists archive entries that parsed successfully, in listing order.
	Entries []string
}

// IsEmpty reports whether the document carries nothing to compare.
func (d Document) IsEmpty() bool {
	return len(d.Segments) == 0 && strings.TrimSpace(d.Text) == ""
}

// Normalized returns a copy with Normalize applied to every text field.
func (d Document) Normalized() Document {
	out := d
	out.Text = Normalize(d.Text)
	if d.Segments != nil {
		out.Segments = make([]Segment, len(d.Segments))
		for i, s := range d.Segments {
			out.Segments[i] = Segment{ID: s.ID, Source: Normalize(s.Source), Target: Normalize(s.Target)}
		}
	}
	return out
}

var zipSignature = []byte("PK\x03\x04")

// Extract detects the container shape of input and extracts it in the given
// mode. It never fails: malformed archives fall through to XML parsing, and
// XML that does not parse is returned as raw UTF-8 text.
func Extract(input []byte, mode Mode) Document {
	if len(input) == 0 {
		log.Debug().Str("mode", mode.String()).Msg("empty input; nothing to extract")
		return Document{Container: ContainerEmpty, Mode: mode}
	}
	if bytes.HasPrefix(input, zipSignature) {
		doc, err := fromArchive(input, mode)
		if err == nil {
			return doc
		}
		log.Debug().Err(err).Int("bytes", len(input)).Msg("zip signature present but archive unreadable; trying XML")
	}
	doc, err := fromXML(input, mode)
	if err == nil {
		return doc
	}
	log.Warn().Err(err).Int("bytes", len(input)).Str("container", ContainerRawText.String()).Msg("document did not parse; using raw text")
	return Document{Container: ContainerRawText, Mode: mode, Text: decodeRaw(input)}
}

// decodeRaw decodes b as UTF-8, dropping a leading BOM and replacing
// invalid bytes with U+FFFD.
func decodeRaw(b []byte) string {
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "\uFFFD")
	}
	return string(out)
}
