package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/p24harvest/p24harvest/internal/model"
)

// artifactTable covers the glyphs the site uses for unit exponents plus the
// stray runes its encoding leaks into text fields: ° ± ² ³ and é.
var artifactTable = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x00b0, Hi: 0x00b3, Stride: 1}, // ° ± ² ³
		{Lo: 0x00e9, Hi: 0x00e9, Stride: 1}, // é
	},
}

// artifactRemover strips the artifact glyph set. The transformer carries no
// state between calls, so sharing it across goroutines is safe.
var artifactRemover = runes.Remove(runes.In(artifactTable))

// StripArtifacts removes artifact glyphs from s, leaving the base unit text
// intact: "150 m²" becomes "150 m".
func StripArtifacts(s string) string {
	out, _, err := transform.String(artifactRemover, s)
	if err != nil {
		return s
	}
	return out
}

// Clean applies the standard field cleanup: artifact glyphs removed,
// whitespace trimmed and internal runs collapsed to single spaces.
func Clean(s string) string {
	return collapseWhitespace(StripArtifacts(s))
}

// Description applies Clean plus duplicate-content collapse. Use it for the
// free-text description field, where nested markup duplicates content.
func Description(s string) string {
	return CollapseRepeats(Clean(s))
}

// CollapseRepeats removes scraping-artifact duplication from text: first it
// folds the text while its two halves are identical after trimming, then it
// drops every sentence that repeats an earlier sentence verbatim, keeping
// first occurrences in their original order.
func CollapseRepeats(s string) string {
	return dedupSentences(collapseHalves(s))
}

// collapseHalves folds text whose first and second halves are equal after
// trimming. The fold repeats until a fixpoint so the result is stable under
// re-application.
func collapseHalves(s string) string {
	text := strings.TrimSpace(s)
	for {
		n := len(text)
		if n < 2 {
			return text
		}
		first := strings.TrimSpace(text[:n/2])
		second := strings.TrimSpace(text[n/2:])
		if first == "" || first != second {
			return text
		}
		text = first
	}
}

// dedupSentences removes sentences that repeat an earlier sentence verbatim.
func dedupSentences(s string) string {
	segments := splitSentences(s)
	if len(segments) < 2 {
		return s
	}

	seen := make(map[string]struct{}, len(segments))
	kept := make([]string, 0, len(segments))
	for _, seg := range segments {
		trimmed := strings.TrimSpace(seg)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		kept = append(kept, trimmed)
	}
	return strings.Join(kept, " ")
}

// splitSentences cuts text after a terminator (. ! ? or newline) that is
// followed by whitespace or end of text. A dot inside a number ("2.5") does
// not end a sentence.
func splitSentences(s string) []string {
	var segments []string
	var b strings.Builder

	text := []rune(s)
	for i, r := range text {
		b.WriteRune(r)
		if !isTerminator(r) {
			continue
		}
		if i == len(text)-1 || unicode.IsSpace(text[i+1]) {
			segments = append(segments, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		segments = append(segments, b.String())
	}
	return segments
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?' || r == '\n'
}

// collapseWhitespace trims s and collapses internal whitespace runs to
// single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Apply cleans every textual field of a listing in place. No field is
// dropped: placeholders stay placeholders and cleaned values replace raw
// ones. URL fields are trimmed only, since glyph stripping could corrupt an
// address.
func Apply(l *model.Listing) {
	l.Price = Clean(l.Price)
	l.Size = Clean(l.Size)
	l.Description = Description(l.Description)
	l.Address = Clean(l.Address)
	l.Province = Clean(l.Province)
	l.City = Clean(l.City)
	l.Town = Clean(l.Town)
	l.ListingNo = Clean(l.ListingNo)
	l.ImageURL = strings.TrimSpace(l.ImageURL)
	l.URL = strings.TrimSpace(l.URL)

	for i, f := range l.FeatureList {
		l.FeatureList[i] = Clean(f)
	}
	if len(l.Features) > 0 {
		cleaned := make(map[string]string, len(l.Features))
		for k, v := range l.Features {
			cleaned[Clean(k)] = Clean(v)
		}
		l.Features = cleaned
	}
}
