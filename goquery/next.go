package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/bookbind"
)

var _ bookbind.NextFinder = (*Finder)(nil)

// nextTexts are anchor texts recognized as next-chapter links, checked
// after rel="next" markup. Matching is case-insensitive and exact (after
// trimming), so prose that merely mentions "next" does not match.
var nextTexts = []string{
	"next",
	"next chapter",
	"next page",
	"next »",
	"next >",
	"»",
	">",
	"→",
}

// Finder locates next-chapter links for walking serials without a table of
// contents. rel="next" markup wins over anchor-text heuristics; off-site
// links are ignored so a walk never leaves the book's host.
type Finder struct{}

// NewFinder creates a new Finder.
func NewFinder() *Finder {
	return &Finder{}
}

// NextLink returns the absolute URL of the page's next-chapter link, or ""
// when the page has none.
func (f *Finder) NextLink(html string, baseURL string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", bookbind.Errorf(bookbind.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", bookbind.Errorf(bookbind.EINVALID, "failed to parse HTML: %v", err)
	}

	if next := firstOnSiteHref(doc.Find(`a[rel="next"], link[rel="next"]`), base); next != "" {
		return next, nil
	}

	var next string
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		text := strings.ToLower(strings.TrimSpace(a.Text()))
		for _, want := range nextTexts {
			if text != want {
				continue
			}
			if resolved := hrefOnSite(a, base); resolved != "" {
				next = resolved
				return false
			}
		}
		return true
	})
	return next, nil
}

// firstOnSiteHref returns the first element of the selection that resolves
// to a same-host URL, or "".
func firstOnSiteHref(sel *goquery.Selection, base *url.URL) string {
	var found string
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if resolved := hrefOnSite(s, base); resolved != "" {
			found = resolved
			return false
		}
		return true
	})
	return found
}

// hrefOnSite resolves the element's href against base, returning "" for
// missing, non-HTTP, self-referential or off-site links.
func hrefOnSite(s *goquery.Selection, base *url.URL) string {
	href, exists := s.Attr("href")
	if !exists || href == "" || isNonHTTPLink(href) {
		return ""
	}
	resolved := resolveURL(base, href)
	if resolved == "" || !isSameHost(base, resolved) {
		return ""
	}
	return resolved
}
