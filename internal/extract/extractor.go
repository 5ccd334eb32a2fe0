package extract

// Extractor defines a minimal interface for document extraction strategies.
// Implementations can swap parsing tactics without changing callers.
type Extractor interface {
	// Extract converts raw document bytes into a Document in the given mode.
	// Implementations must be deterministic and must not fail.
	Extract(input []byte, mode Mode) Document
}

// XLIFFExtractor handles XLIFF 1.2 documents, bare or zipped, via Extract.
type XLIFFExtractor struct {
	// Normalize applies Normalize to every extracted text field.
	Normalize bool
}

func (x XLIFFExtractor) Extract(input []byte, mode Mode) Document {
	doc := Extract(input, mode)
	if x.Normalize {
		return doc.Normalized()
	}
	return doc
}
