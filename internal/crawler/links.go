package crawler

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/p24harvest/p24harvest/internal/model"
)

// LinkParser extracts property listing URLs from search-results pages.
//
// Design decision: We parse the page into a DOM with golang.org/x/net/html
// instead of matching hrefs with a regex because:
// 1. Live search pages ship broken markup that the parser repairs
// 2. Listing anchors sit at varying depths inside result cards, which a
//    node walk handles and a line-oriented pattern does not
// 3. The accept test stays one readable predicate on complete URLs
type LinkParser struct {
	// origin is scheme://host of the page being parsed, used for
	// completing root-relative hrefs.
	origin string
}

// NewLinkParser creates a parser for pages served from baseURL. Only the
// scheme and host of baseURL matter; they complete hrefs like
// "/for-sale/..." into absolute URLs.
func NewLinkParser(baseURL string) (*LinkParser, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL %q has no scheme or host", baseURL)
	}
	return &LinkParser{origin: u.Scheme + "://" + u.Host}, nil
}

// Parse reads one HTML document and returns every listing URL it links to,
// in document order. Duplicates within the page are dropped; cross-page
// duplicates are the caller's concern.
func (p *LinkParser) Parse(content io.Reader) ([]string, error) {
	doc, err := html.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse search page: %w", err)
	}

	seen := make(map[string]bool)
	links := make([]string, 0)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if href := getAttr(n, "href"); href != "" {
				candidate := p.completeHref(href)
				if model.IsListingURL(candidate) && !seen[candidate] {
					seen[candidate] = true
					links = append(links, candidate)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return links, nil
}

// completeHref turns a root-relative href into an absolute URL. Absolute
// hrefs pass through unchanged; any other relative form stays as-is and
// fails the listing URL check downstream.
func (p *LinkParser) completeHref(href string) string {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "/") {
		return p.origin + href
	}
	return href
}

// getAttr returns the named attribute's value, or "" when the node does
// not carry it.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
