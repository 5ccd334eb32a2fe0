package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/rs/zerolog/log"
)

// maxEntryBytes caps how much of a single archive entry is decompressed.
const maxEntryBytes = 64 << 20

var exchangeExtensions = []string{".xlf", ".xliff", ".mxliff", ".sdlxliff"}

var errEntryTooLarge = errors.New("entry exceeds size limit")

// IsExchangeEntry reports whether an archive entry name carries a
// recognised bilingual exchange extension.
func IsExchangeEntry(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exchangeExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// fromArchive opens input as a zip and extracts every exchange entry in
// listing order. Entries that do not parse are skipped.
func fromArchive(input []byte, mode Mode) (Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(input), int64(len(input)))
	if err != nil {
		return Document{}, fmt.Errorf("open archive: %w", err)
	}
	doc := Document{Container: ContainerArchive, Mode: mode}
	var blob strings.Builder
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !IsExchangeEntry(f.Name) {
			continue
		}
		p, err := parseEntry(f)
		if err != nil {
			log.Warn().Err(err).Str("entry", f.Name).Str("container", ContainerArchive.String()).Msg("skipping archive entry")
			continue
		}
		doc.Entries = append(doc.Entries, f.Name)
		switch mode {
		case ModeBlob:
			for _, t := range p.targets {
				if t != "" {
					blob.WriteString(t)
					blob.WriteString(" ")
				}
			}
		default:
			doc.Segments = append(doc.Segments, p.units...)
		}
	}
	doc.Text = blob.String()
	if len(doc.Entries) == 0 {
		log.Debug().Int("files", len(zr.File)).Msg("archive holds no parseable exchange entries")
	}
	return doc, nil
}

func parseEntry(f *zip.File) (parsed, error) {
	rc, err := f.Open()
	if err != nil {
		return parsed{}, fmt.Errorf("open entry: %w", err)
	}
	defer rc.Close()
	b, err := io.ReadAll(io.LimitReader(rc, maxEntryBytes+1))
	if err != nil {
		return parsed{}, fmt.Errorf("read entry: %w", err)
	}
	if len(b) > maxEntryBytes {
		return parsed{}, errEntryTooLarge
	}
	return parseXLIFF(bytes.NewReader(b))
}
