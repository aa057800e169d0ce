package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/p24harvest/p24harvest/internal/model"
)

// SimpleWriter renders the end-of-run summary as plain terminal text.
//
// Design decision: We emit unstyled ASCII, no ANSI escapes, because:
// 1. The summary is routinely redirected into log files next to the JSON
// 2. Dumb terminals and CI runners then show exactly what a shell shows
// 3. Rules and indentation carry the structure, so nothing needs a
//    capability probe
type SimpleWriter struct {
	out io.Writer

	// verbose enables the coverage and geography breakdowns.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with coverage and per-province detail.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter writing to output.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{out: output}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the run summary in human-readable format.
func (w *SimpleWriter) Write(result *model.ScrapeResult) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, &result.Summary)
	w.writeDiscovery(&sb, &result.Summary)
	w.writeExtraction(&sb, &result.Summary)

	if w.verbose {
		w.writeStats(&sb, model.ComputeStats(result.Listings))
	}

	w.writeFooter(&sb, &result.Summary)

	return w.out.Write([]byte(sb.String()))
}

// WriteListings outputs a short description of a bare collection.
func (w *SimpleWriter) WriteListings(listings []model.Listing) (int, error) {
	var sb strings.Builder

	stats := model.ComputeStats(listings)
	sb.WriteString(fmt.Sprintf("%d listings\n", stats.Total))
	if w.verbose {
		w.writeStats(&sb, stats)
	}

	return w.out.Write([]byte(sb.String()))
}

// ruleWidth is the width of every horizontal rule in the summary.
const ruleWidth = 70

// writeRule writes one full-width horizontal rule from the given character.
func writeRule(sb *strings.Builder, ch string) {
	sb.WriteString(strings.Repeat(ch, ruleWidth))
	sb.WriteString("\n")
}

// section opens a titled block between two dashed rules.
func section(sb *strings.Builder, title string) {
	writeRule(sb, "-")
	sb.WriteString(title)
	sb.WriteString("\n")
	writeRule(sb, "-")
	sb.WriteString("\n")
}

// writeHeader writes the summary header with run information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, s *model.RunSummary) {
	sb.WriteString("\n")
	writeRule(sb, "=")
	sb.WriteString("                          SCRAPE SUMMARY\n")
	writeRule(sb, "=")
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Started:  %s\n", s.StartedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Elapsed:  %s\n", s.Elapsed.Round(10*time.Millisecond)))
	sb.WriteString("\n")
}

// writeDiscovery writes the Phase 1 counters.
func (w *SimpleWriter) writeDiscovery(sb *strings.Builder, s *model.RunSummary) {
	section(sb, "DISCOVERY")

	sb.WriteString(fmt.Sprintf("  Search pages:   %d/%d fetched", s.SearchPagesFetched, s.SearchPagesPlanned))
	if s.SearchPagesFailed > 0 {
		sb.WriteString(fmt.Sprintf(" (%d failed)", s.SearchPagesFailed))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  Links found:    %d\n", s.LinksFound))
	sb.WriteString(fmt.Sprintf("  Duplicate URLs: %d\n", s.DuplicateURLs))
	sb.WriteString(fmt.Sprintf("  Frontier:       %d\n", s.FrontierSize))
	sb.WriteString("\n")
}

// writeExtraction writes the Phase 2 counters.
func (w *SimpleWriter) writeExtraction(sb *strings.Builder, s *model.RunSummary) {
	section(sb, "EXTRACTION")

	sb.WriteString(fmt.Sprintf("  Pages fetched:  %d", s.ListingsFetched))
	if s.ListingsFailed > 0 {
		sb.WriteString(fmt.Sprintf(" (%d failed)", s.ListingsFailed))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  Discarded:      %d\n", s.ExtractionFailures))
	sb.WriteString(fmt.Sprintf("  Duplicates:     %d\n", s.DuplicateListings))
	sb.WriteString(fmt.Sprintf("  Accepted:       %d\n", s.Accepted))
	sb.WriteString("\n")
}

// writeStats writes the coverage and province breakdown.
func (w *SimpleWriter) writeStats(sb *strings.Builder, stats model.CollectionStats) {
	if stats.Total == 0 {
		return
	}

	section(sb, "COVERAGE")

	sb.WriteString(fmt.Sprintf("  Price:    %d/%d\n", stats.WithPrice, stats.Total))
	sb.WriteString(fmt.Sprintf("  Size:     %d/%d\n", stats.WithSize, stats.Total))
	sb.WriteString(fmt.Sprintf("  Address:  %d/%d\n", stats.WithAddress, stats.Total))
	sb.WriteString(fmt.Sprintf("  Features: %d/%d\n", stats.WithFeatures, stats.Total))
	sb.WriteString(fmt.Sprintf("  Image:    %d/%d\n", stats.WithImage, stats.Total))
	sb.WriteString("\n")

	for _, p := range model.SortedKeys(stats.ByProvince) {
		sb.WriteString(fmt.Sprintf("  [+] %s: %d\n", p, stats.ByProvince[p]))
	}
	sb.WriteString("\n")
}

// writeFooter writes the one-line result the run is judged by.
func (w *SimpleWriter) writeFooter(sb *strings.Builder, s *model.RunSummary) {
	writeRule(sb, "=")
	sb.WriteString(fmt.Sprintf("Collected %d listings in %s\n", s.Accepted, s.Elapsed.Round(10*time.Millisecond)))
	writeRule(sb, "=")
}
