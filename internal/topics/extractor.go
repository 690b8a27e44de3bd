// Package topics turns the text of a Horizon Europe work programme into topic
// records: normalize, reflow, segment, scan metadata, extract fields, assemble.
package topics

// Extractor runs the full pipeline with a fixed set of options.
type Extractor struct {
	opts Options
}

// NewExtractor creates an extractor. Zero-valued options fall back to defaults.
func NewExtractor(opts Options) *Extractor {
	return &Extractor{opts: opts.withDefaults()}
}

// Options returns the effective options.
func (e *Extractor) Options() Options {
	return e.opts
}

// Extract converts a document's text into ordered topic records. It never
// fails: a document without recognizable topics yields zero records.
func (e *Extractor) Extract(text string) *ExtractionResult {
	lines := Reflow(SplitLines(Normalize(text)))

	blocks := Segment(lines, e.opts.Lookahead)
	metadata := ScanMetadata(lines)

	fields := make([]Fields, len(blocks))
	for i, b := range blocks {
		fields[i] = ExtractFields(b.FullText, e.opts)
	}

	return &ExtractionResult{
		Records:          Assemble(blocks, fields, metadata),
		Metadata:         metadata,
		OrphanedMetadata: orphanedCodes(blocks, metadata),
		DuplicateCodes:   duplicateCodes(blocks),
		LineCount:        len(lines),
	}
}

// Extract runs the pipeline with default options.
func Extract(text string) *ExtractionResult {
	return NewExtractor(DefaultOptions()).Extract(text)
}
