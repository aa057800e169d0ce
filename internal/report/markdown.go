package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/p24harvest/p24harvest/internal/model"
)

// maxTownRows caps the towns table so a province-wide run stays readable.
const maxTownRows = 15

// MarkdownWriter renders run reports as Markdown documents meant for
// sharing: a scrape posted to an issue tracker or checked into a data
// repository next to its JSON.
//
// Design decision: We build the document through nao1215/markdown instead
// of templating strings because:
// 1. Tables and alerts come out syntactically valid without escaping work
// 2. The mermaid piechart sub-package draws the province split for free
// 3. The builder reads in the same order the report renders
type MarkdownWriter struct {
	out io.Writer
}

// NewMarkdownWriter creates a MarkdownWriter writing to output.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{out: output}
}

// Write renders the full run report: counters, coverage and geography.
func (w *MarkdownWriter) Write(result *model.ScrapeResult) (int, error) {
	md := markdown.NewMarkdown(w.out)
	stats := model.ComputeStats(result.Listings)

	w.writeHeader(md, result)
	w.writeRunSummary(md, &result.Summary)
	w.writeCoverage(md, stats)
	w.writeGeography(md, stats)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteListings renders coverage and geography for a bare collection, which
// has no run counters to report.
func (w *MarkdownWriter) WriteListings(listings []model.Listing) (int, error) {
	md := markdown.NewMarkdown(w.out)
	stats := model.ComputeStats(listings)

	md.H1("Listing Collection Report")
	md.PlainText("")
	md.PlainTextf("%d listings.", stats.Total)
	md.PlainText("")

	w.writeCoverage(md, stats)
	w.writeGeography(md, stats)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *model.ScrapeResult) {
	md.H1("Listing Scrape Report")
	md.PlainText("")

	s := result.Summary
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Started", s.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Elapsed", s.Elapsed.Round(10 * time.Millisecond).String()},
			{"Search Pages", fmt.Sprintf("%d of %d fetched", s.SearchPagesFetched, s.SearchPagesPlanned)},
			{"Frontier", strconv.Itoa(s.FrontierSize)},
			{"Accepted Listings", strconv.Itoa(s.Accepted)},
		},
	})
	md.PlainText("")
}

// writeRunSummary writes the per-phase counter tables and the outcome alert.
func (w *MarkdownWriter) writeRunSummary(md *markdown.Markdown, s *model.RunSummary) {
	md.H2("Run Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Phase", "Counter", "Value"},
		Rows: [][]string{
			{"Discovery", "Search pages planned", strconv.Itoa(s.SearchPagesPlanned)},
			{"Discovery", "Search pages fetched", strconv.Itoa(s.SearchPagesFetched)},
			{"Discovery", "Search pages failed", strconv.Itoa(s.SearchPagesFailed)},
			{"Discovery", "Links found", strconv.Itoa(s.LinksFound)},
			{"Discovery", "Duplicate URLs", strconv.Itoa(s.DuplicateURLs)},
			{"Discovery", "Frontier size", strconv.Itoa(s.FrontierSize)},
			{"Extraction", "Listings fetched", strconv.Itoa(s.ListingsFetched)},
			{"Extraction", "Listings failed", strconv.Itoa(s.ListingsFailed)},
			{"Extraction", "Extraction failures", strconv.Itoa(s.ExtractionFailures)},
			{"Extraction", "Duplicate listings", strconv.Itoa(s.DuplicateListings)},
			{"Extraction", "Accepted", strconv.Itoa(s.Accepted)},
		},
	})
	md.PlainText("")

	w.writeAlert(md, s)
}

// writeAlert writes an outcome alert matching how the run went.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, s *model.RunSummary) {
	failed := s.SearchPagesFailed + s.ListingsFailed
	switch {
	case s.Accepted == 0:
		md.Warningf(
			"No listings were accepted. %d search page(s) and %d detail page(s) failed to fetch.",
			s.SearchPagesFailed, s.ListingsFailed,
		)
	case failed > 0 || s.ExtractionFailures > 0:
		md.Importantf(
			"Partial run: %d fetch failure(s) and %d discarded document(s). The collection is complete for every page that was reached.",
			failed, s.ExtractionFailures,
		)
	default:
		md.Tip("Every planned page was fetched and extracted.")
	}
	md.PlainText("")
}

// writeCoverage writes the field-coverage table.
func (w *MarkdownWriter) writeCoverage(md *markdown.Markdown, stats model.CollectionStats) {
	md.H2("Field Coverage")
	md.PlainText("")

	if stats.Total == 0 {
		md.PlainText("No listings collected.")
		md.PlainText("")
		return
	}

	md.Table(markdown.TableSet{
		Header: []string{"Field", "Listings", "Coverage"},
		Rows: [][]string{
			{"Price", strconv.Itoa(stats.WithPrice), percent(stats.WithPrice, stats.Total)},
			{"Size", strconv.Itoa(stats.WithSize), percent(stats.WithSize, stats.Total)},
			{"Address", strconv.Itoa(stats.WithAddress), percent(stats.WithAddress, stats.Total)},
			{"Features", strconv.Itoa(stats.WithFeatures), percent(stats.WithFeatures, stats.Total)},
			{"Image", strconv.Itoa(stats.WithImage), percent(stats.WithImage, stats.Total)},
		},
	})
	md.PlainText("")
}

// writeGeography writes per-province and per-town breakdowns, plus a pie
// chart when more than one province is present.
func (w *MarkdownWriter) writeGeography(md *markdown.Markdown, stats model.CollectionStats) {
	if stats.Total == 0 {
		return
	}

	md.H2("Listings by Province")
	md.PlainText("")

	provinces := model.SortedKeys(stats.ByProvince)
	rows := make([][]string, 0, len(provinces))
	for _, p := range provinces {
		rows = append(rows, []string{p, strconv.Itoa(stats.ByProvince[p])})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Province", "Listings"},
		Rows:   rows,
	})
	md.PlainText("")

	if len(provinces) > 1 {
		w.writePieChart(md, stats, provinces)
	}

	md.H2("Top Towns")
	md.PlainText("")

	towns := model.SortedKeys(stats.ByTown)
	if len(towns) > maxTownRows {
		towns = towns[:maxTownRows]
	}
	rows = rows[:0]
	for _, t := range towns {
		rows = append(rows, []string{t, strconv.Itoa(stats.ByTown[t])})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Town", "Listings"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart of the province distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, stats model.CollectionStats, provinces []string) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Listings per Province"),
		piechart.WithShowData(true),
	)

	for _, p := range provinces {
		if stats.ByProvince[p] > 0 {
			chart.LabelAndIntValue(p, uint64(stats.ByProvince[p]))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by p24harvest*")
}

// percent formats n out of total as a percentage with one decimal.
func percent(n, total int) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", float64(n)*100/float64(total))
}
