package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fwojciec/bookbind"
	"github.com/fwojciec/bookbind/scrape"
)

// maxShownCandidates caps the discovery listing; a book archive page can
// carry hundreds of links.
const maxShownCandidates = 10

// Probe runs a single page through the same pipeline pieces the bookbind
// commands use and reports what each stage sees. It exists to answer
// "why was this chapter picked up?" and "why is this page empty?"
// without downloading a whole book.
type Probe struct {
	Fetcher    bookbind.Fetcher
	Discoverer bookbind.LinkDiscoverer
	Extractor  bookbind.Extractor
	Converter  bookbind.Converter
	Next       bookbind.NextFinder
}

// Report fetches the URL once and writes a stage-by-stage report to w.
func (p *Probe) Report(ctx context.Context, url string, showContent bool, w io.Writer) error {
	html, err := p.Fetcher.Fetch(ctx, url)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "fetched %s (%s)\n", url, scrape.FormatBytes(len(html)))

	links, err := p.Discoverer.DiscoverLinks(html, url)
	if err != nil {
		return err
	}
	if len(links) == 0 {
		fmt.Fprintf(w, "\ndiscovery: no chapter candidates\n")
	} else {
		fmt.Fprintf(w, "\ndiscovery: %d candidates via %s\n", len(links), links[0].Rule)
		for i, link := range links {
			if i == maxShownCandidates {
				fmt.Fprintf(w, "  (%d more)\n", len(links)-maxShownCandidates)
				break
			}
			fmt.Fprintf(w, "  %2d. %s\n", i+1, formatCandidate(link))
		}
	}

	if next, err := p.Next.NextLink(html, url); err == nil && next != "" {
		fmt.Fprintf(w, "\nnext: %s\n", next)
	}

	result, err := p.Extractor.Extract(html)
	if err != nil {
		return err
	}
	if result.Empty() {
		fmt.Fprintf(w, "\nextraction: no content\n")
		return nil
	}

	markdown, err := p.Converter.Convert(result.ContentHTML)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\nextraction: %s\n", result.Method)
	if result.Title != "" {
		fmt.Fprintf(w, "  title: %s\n", result.Title)
	}
	fmt.Fprintf(w, "  %s (%s markdown)\n",
		scrape.FormatWords(scrape.CountWords(markdown)), scrape.FormatBytes(len(markdown)))

	if showContent {
		fmt.Fprintf(w, "\n%s\n", markdown)
	}
	return nil
}

func formatCandidate(link bookbind.CandidateLink) string {
	if link.Text == "" {
		return link.URL
	}
	return fmt.Sprintf("%s  %q", link.URL, link.Text)
}
