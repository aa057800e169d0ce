package report

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/p24harvest/p24harvest/internal/model"
)

// JSONWriter outputs the listing collection as a JSON array, one object per
// listing in acceptance order. This is the consumer-facing data file; the run
// counters are not part of it.
//
// Design decision: We use standard encoding/json with an Encoder rather than
// Marshal because:
// 1. SetEscapeHTML(false) keeps ampersands and angle brackets in listing
//    text verbatim, matching the site's historic output files
// 2. SetIndent covers both compact and indented output
// 3. Encode appends the trailing newline a data file should end with
type JSONWriter struct {
	out io.Writer

	// indent switches the encoder from compact to indented output, with
	// indentPrefix and indentString passed through to SetIndent.
	indent       bool
	indentPrefix string
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent switches to indented output with the given per-line prefix
// and per-level indent string.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables indented JSON with four-space indentation, the
// layout of the historic output files. This is a convenience wrapper for
// WithIndent("", "    ").
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "    "
	}
}

// NewJSONWriter creates a JSONWriter writing to output.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{out: output}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the result's listing collection as a JSON array.
func (w *JSONWriter) Write(result *model.ScrapeResult) (int, error) {
	return w.WriteListings(result.Listings)
}

// WriteListings outputs the collection as a JSON array. A nil slice still
// produces a valid empty array.
func (w *JSONWriter) WriteListings(listings []model.Listing) (int, error) {
	if listings == nil {
		listings = []model.Listing{}
	}
	return w.writeJSON(listings)
}

// writeJSON encodes v and writes it to the output in one call, so a partial
// encode never reaches the destination.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if w.indent {
		enc.SetIndent(w.indentPrefix, w.indentString)
	}

	if err := enc.Encode(v); err != nil {
		return 0, err
	}

	return w.out.Write(buf.Bytes())
}

// SummaryJSONWriter outputs the run counters and collection stats instead of
// the listings themselves. This is the machine-readable companion of the
// markdown run report.
type SummaryJSONWriter struct {
	*JSONWriter
}

// NewSummaryJSONWriter creates a writer for run summaries.
func NewSummaryJSONWriter(output io.Writer, opts ...JSONWriterOption) *SummaryJSONWriter {
	return &SummaryJSONWriter{
		JSONWriter: NewJSONWriter(output, opts...),
	}
}

// runSummaryEnvelope is the on-disk shape of a summary file.
type runSummaryEnvelope struct {
	Summary model.RunSummary      `json:"summary"`
	Stats   model.CollectionStats `json:"stats"`
}

// Write outputs the run counters and the stats computed over the collection.
func (w *SummaryJSONWriter) Write(result *model.ScrapeResult) (int, error) {
	return w.writeJSON(runSummaryEnvelope{
		Summary: result.Summary,
		Stats:   model.ComputeStats(result.Listings),
	})
}

// WriteListings outputs only the stats for a bare collection.
func (w *SummaryJSONWriter) WriteListings(listings []model.Listing) (int, error) {
	return w.writeJSON(model.ComputeStats(listings))
}
