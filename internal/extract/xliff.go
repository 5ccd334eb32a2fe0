package extract

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/net/html/charset"
)

// XLIFFNamespace is the XLIFF 1.2 document namespace.
const XLIFFNamespace = "urn:oasis:names:tc:xliff:document:1.2"

var (
	errNoRootElement   = errors.New("no root element")
	errMultipleRoots   = errors.New("more than one root element")
	errTextOutsideRoot = errors.New("character data outside the root element")
)

// parsed holds everything a single pass over an XLIFF document collects.
type parsed struct {
	units   []Segment
	targets []string
}

// parseXLIFF walks the token stream once and gathers translation units
// (namespaced trans-unit with direct source and target children) and the text
// of every target element regardless of namespace.
func parseXLIFF(r io.Reader) (parsed, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var (
		out   parsed
		depth int
		seen  bool

		// current trans-unit
		inUnit    bool
		unitDepth int
		unitID    string
		src, tgt  *strings.Builder
		// which direct child of the unit we are inside, if any
		child      string
		childDepth int

		// current target element, namespace-agnostic
		targetDepth int
		targetText  strings.Builder
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return parsed{}, fmt.Errorf("xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 && seen {
				return parsed{}, fmt.Errorf("xml: %w", errMultipleRoots)
			}
			depth++
			seen = true
			if t.Name.Local == "target" && targetDepth == 0 {
				targetDepth = depth
				targetText.Reset()
			}
			if !inUnit && t.Name.Space == XLIFFNamespace && t.Name.Local == "trans-unit" {
				inUnit = true
				unitDepth = depth
				unitID = attr(t, "id")
				src, tgt = nil, nil
				continue
			}
			if inUnit && child == "" && depth == unitDepth+1 && t.Name.Space == XLIFFNamespace {
				switch t.Name.Local {
				case "source":
					if src == nil {
						src = &strings.Builder{}
						child, childDepth = "source", depth
					}
				case "target":
					if tgt == nil {
						tgt = &strings.Builder{}
						child, childDepth = "target", depth
					}
				}
			}
		case xml.EndElement:
			if targetDepth == depth {
				out.targets = append(out.targets, targetText.String())
				targetDepth = 0
			}
			if child != "" && depth == childDepth {
				child = ""
			}
			if inUnit && depth == unitDepth {
				if src != nil && tgt != nil {
					out.units = append(out.units, Segment{ID: unitID, Source: src.String(), Target: tgt.String()})
				}
				inUnit = false
			}
			depth--
		case xml.CharData:
			if depth == 0 {
				if !isBlank(t) {
					return parsed{}, fmt.Errorf("xml: %w", errTextOutsideRoot)
				}
				continue
			}
			if targetDepth > 0 {
				targetText.Write(t)
			}
			switch child {
			case "source":
				src.Write(t)
			case "target":
				tgt.Write(t)
			}
		}
	}
	if !seen {
		return parsed{}, errNoRootElement
	}
	return out, nil
}

// isBlank reports whether b holds only whitespace or a byte order mark.
func isBlank(b []byte) bool {
	return len(bytes.TrimFunc(b, func(r rune) bool { return unicode.IsSpace(r) || r == '\uFEFF' })) == 0
}

func attr(t xml.StartElement, local string) string {
	for _, a := range t.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// fromXML extracts a plain (non-archive) XLIFF document.
func fromXML(input []byte, mode Mode) (Document, error) {
	p, err := parseXLIFF(bytes.NewReader(input))
	if err != nil {
		return Document{}, err
	}
	doc := Document{Container: ContainerXML, Mode: mode}
	switch mode {
	case ModeBlob:
		doc.Text = joinNonEmpty(p.targets)
	default:
		doc.Segments = p.units
	}
	return doc, nil
}

func joinNonEmpty(parts []string) string {
	kept := make([]string, 0, len(parts))
	for _, s := range parts {
		if s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, " ")
}
