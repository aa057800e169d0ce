package crawler

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/p24harvest/p24harvest/internal/config"
	"github.com/p24harvest/p24harvest/internal/model"
)

// ErrMissingListingNo is returned when a detail page carries no listing
// number. The listing number is the deduplication key of record, so a page
// without one is a failed extraction, not a partial success.
var ErrMissingListingNo = errors.New("listing number not found")

// bannedCrumbs are breadcrumb entries that are navigation chrome rather
// than location names.
var bannedCrumbs = map[string]bool{
	"|":                 true,
	">":                 true,
	"Back to Results":   true,
	"Property for Sale": true,
}

// ListingParser extracts one property listing from a detail page.
// Every lookup goes through the selector profile, so markup changes are a
// config edit rather than a code change.
type ListingParser struct {
	selectors config.Selectors
}

// NewListingParser creates a parser using the given selector profile.
func NewListingParser(selectors config.Selectors) *ListingParser {
	return &ListingParser{selectors: selectors}
}

// Parse reads one detail page and returns the extracted listing.
//
// Fields that cannot be found keep their missing-value placeholders; only
// an absent listing number fails the whole extraction. Values are returned
// as they appear on the page, normalization happens downstream.
func (p *ListingParser) Parse(pageURL string, content io.Reader) (*model.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(content)
	if err != nil {
		return nil, fmt.Errorf("parse listing page %s: %w", pageURL, err)
	}

	listing := model.NewListing(pageURL)

	if sel := doc.Find(p.selectors.Price).First(); sel.Length() > 0 {
		listing.Price = strippedText(sel)
	}

	if sel := doc.Find(p.selectors.Size).First(); sel.Length() > 0 {
		text := strippedText(sel)
		// "Floor Size: 150 m²" keeps only the part before the colon.
		if before, _, found := strings.Cut(text, ":"); found {
			text = strings.TrimSpace(before)
		}
		listing.Size = text
	}

	desc := doc.Find(p.selectors.Description).First()
	if desc.Length() == 0 {
		desc = doc.Find(p.selectors.DescriptionFallback).First()
	}
	if desc.Length() > 0 {
		listing.Description = strings.ReplaceAll(spacedText(desc), " Read Less", "")
	}

	doc.Find(p.selectors.FeatureRows).Each(func(_ int, item *goquery.Selection) {
		text := strippedText(item)
		if key, value, found := strings.Cut(text, ":"); found {
			listing.SetFeature(strings.TrimSpace(key), strings.TrimSpace(value))
		} else if text != "" {
			listing.FeatureList = append(listing.FeatureList, text)
		}
	})

	if sel := doc.Find(p.selectors.Address).First(); sel.Length() > 0 {
		listing.Address = strippedText(sel)
	}

	p.extractLocation(doc, listing)

	number := strippedText(doc.Find(p.selectors.ListingNo).First())
	if number == "" {
		return nil, fmt.Errorf("%s: %w", pageURL, ErrMissingListingNo)
	}
	listing.ListingNo = number

	if sel := doc.Find(p.selectors.Image).First(); sel.Length() > 0 {
		if src, ok := sel.Attr(p.selectors.ImageAttr); ok {
			listing.ImageURL = strings.TrimSpace(src)
		}
	}

	return listing, nil
}

// extractLocation reads the breadcrumb trail and assigns the surviving
// entries positionally: province, then city, then town. Separators,
// navigation labels, and bare numbers are dropped first.
func (p *ListingParser) extractLocation(doc *goquery.Document, listing *model.Listing) {
	crumbs := make([]string, 0, 3)
	doc.Find(p.selectors.Breadcrumbs).Each(func(_ int, li *goquery.Selection) {
		text := strippedText(li)
		if text == "" || bannedCrumbs[text] || isDigits(text) {
			return
		}
		crumbs = append(crumbs, text)
	})

	if len(crumbs) >= 1 {
		listing.Province = crumbs[0]
	}
	if len(crumbs) >= 2 {
		listing.City = crumbs[1]
	}
	if len(crumbs) >= 3 {
		listing.Town = crumbs[2]
	}
}

// isDigits reports whether s consists entirely of decimal digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// strippedText returns the text of a selection with every text node
// trimmed and the pieces joined without separators. Nested markup like
// "<span>Bedrooms</span>: <span>3</span>" comes out as "Bedrooms:3".
func strippedText(sel *goquery.Selection) string {
	return joinText(sel, "")
}

// spacedText returns the text of a selection with every text node trimmed
// and the pieces joined by single spaces. Used for descriptions, where
// element boundaries separate words.
func spacedText(sel *goquery.Selection) string {
	return joinText(sel, " ")
}

func joinText(sel *goquery.Selection, separator string) string {
	parts := make([]string, 0)
	for _, node := range sel.Nodes {
		collectText(node, &parts)
	}
	return strings.Join(parts, separator)
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if trimmed := strings.TrimSpace(n.Data); trimmed != "" {
			*parts = append(*parts, trimmed)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}
