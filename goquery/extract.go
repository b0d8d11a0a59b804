package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/bookbind"
)

var _ bookbind.Extractor = (*Extractor)(nil)

// boilerplateSelector matches elements that never carry chapter prose and
// are removed wholesale before the content container is chosen.
const boilerplateSelector = "script, style, nav, header, footer, aside, advertisement"

// nestedChromeSelector matches navigation chrome stripped from inside the
// chosen content container.
const nestedChromeSelector = "nav, menu, .navigation, .menu, .sidebar"

// contentSelectors is the cascade of containers tried in order when picking
// the main content element. The first selector with any match wins; among
// its matches the element with the most text is chosen.
var contentSelectors = []string{
	".entry-content",
	".post-content",
	".chapter-content",
	".content",
	"article",
	".text-content",
	`[class*="content"]`,
	"main",
	".post",
	".entry",
}

// Extractor extracts main content with a CSS selector cascade. It is the
// fallback tier of the extraction chain: unlike the content-density primary
// it never refuses a page, degrading through known content containers to
// the largest text block and finally the whole document.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the page's main content as cleaned HTML.
//
// Boilerplate elements are removed first, then the content container is
// chosen: first matching cascade selector (largest match by text length),
// else the largest div/section/article, else the body, else the whole
// document. Navigation chrome nested inside the chosen container is
// stripped. The result never carries a title; callers derive one from
// the URL.
func (e *Extractor) Extract(html string) (*bookbind.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, bookbind.Errorf(bookbind.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find(boilerplateSelector).Remove()

	var content *goquery.Selection
	for _, selector := range contentSelectors {
		if matches := doc.Find(selector); matches.Length() > 0 {
			content = largestByText(matches)
			break
		}
	}

	if content == nil {
		if candidates := doc.Find("div, section, article"); candidates.Length() > 0 {
			content = largestByText(candidates)
		}
	}

	if content == nil {
		if body := doc.Find("body"); body.Length() > 0 {
			content = body.First()
		} else {
			content = doc.Selection
		}
	}

	content.Find(nestedChromeSelector).Remove()

	out, err := goquery.OuterHtml(content)
	if err != nil {
		return nil, bookbind.Errorf(bookbind.EINTERNAL, "failed to render content: %v", err)
	}

	return &bookbind.ExtractResult{
		ContentHTML: out,
		Method:      bookbind.MethodFallback,
	}, nil
}

// largestByText returns the single element of the selection with the most
// visible text.
func largestByText(sel *goquery.Selection) *goquery.Selection {
	var best *goquery.Selection
	bestLen := -1
	sel.Each(func(_ int, s *goquery.Selection) {
		if n := len(strings.TrimSpace(s.Text())); n > bestLen {
			best = s
			bestLen = n
		}
	})
	return best
}
