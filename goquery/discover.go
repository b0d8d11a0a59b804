// Package goquery implements link discovery and fallback content extraction
// using CSS selectors via the goquery library.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/bookbind"
)

var _ bookbind.LinkDiscoverer = (*Discoverer)(nil)

// selectorRule pairs a CSS selector with the rule label it reports.
type selectorRule struct {
	Selector string
	Rule     bookbind.DiscoveryRule
}

// selectorRules is the first discovery tier, tried strictly in order. The
// first rule that matches at least one anchor wins the whole page; later
// rules are never consulted and results from different rules never mix.
var selectorRules = []selectorRule{
	{`a[href*="chapter"]`, bookbind.RuleHrefChapter},
	{`a[href*="ch-"]`, bookbind.RuleHrefChDash},
	{`a[href*="/ch/"]`, bookbind.RuleHrefChPath},
	{`.chapter-link a`, bookbind.RuleChapterLink},
	{`.chapter a`, bookbind.RuleChapterClass},
	{`.toc a`, bookbind.RuleTOCClass},
	{`.table-of-contents a`, bookbind.RuleTOCLong},
}

// Discoverer finds chapter links on a book's landing page using a fixed
// cascade of CSS selector rules, falling back to a keyword scan of all
// anchors when no selector matches.
type Discoverer struct{}

// NewDiscoverer creates a new Discoverer.
func NewDiscoverer() *Discoverer {
	return &Discoverer{}
}

// DiscoverLinks parses HTML and returns candidate chapter links.
//
// The selector cascade is tried in order and the first rule with any match
// wins. If no selector matches, every anchor whose visible text contains a
// chapter keyword becomes a candidate. Results preserve document order and
// are de-duplicated by absolute URL (first occurrence wins).
func (d *Discoverer) DiscoverLinks(html string, baseURL string) ([]bookbind.CandidateLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, bookbind.Errorf(bookbind.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, bookbind.Errorf(bookbind.EINVALID, "failed to parse HTML: %v", err)
	}

	for _, rule := range selectorRules {
		links := collectAnchors(doc.Find(rule.Selector), base, rule.Rule, nil)
		if len(links) > 0 {
			return links, nil
		}
	}

	// Second tier: no selector matched, so scan every anchor for chapter
	// keywords in its visible text.
	keyword := func(sel *goquery.Selection) bool {
		text := strings.ToLower(sel.Text())
		for _, word := range bookbind.ChapterKeywords {
			if strings.Contains(text, word) {
				return true
			}
		}
		return false
	}
	return collectAnchors(doc.Find("a[href]"), base, bookbind.RuleKeywordText, keyword), nil
}

// collectAnchors walks a selection of anchors and returns candidate links,
// resolved against base, de-duplicated by URL in order of first appearance.
// A nil accept func admits every anchor.
func collectAnchors(sel *goquery.Selection, base *url.URL, rule bookbind.DiscoveryRule, accept func(*goquery.Selection) bool) []bookbind.CandidateLink {
	seen := make(map[string]bool)
	var links []bookbind.CandidateLink

	sel.Each(func(_ int, a *goquery.Selection) {
		href, exists := a.Attr("href")
		if !exists || href == "" {
			return
		}
		if isNonHTTPLink(href) {
			return
		}
		if accept != nil && !accept(a) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true

		links = append(links, bookbind.CandidateLink{
			URL:  resolved,
			Text: strings.TrimSpace(a.Text()),
			Rule: rule,
		})
	})

	return links
}

// resolveURL resolves a relative href against a base URL. Fragments are
// stripped so anchor variants of the same page de-duplicate; links that
// resolve back to the base page itself return "".
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// isSameHost checks if the resolved URL has the same host as the base URL.
// Exact host matching; subdomains are considered different hosts.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
