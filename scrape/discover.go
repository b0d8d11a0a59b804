package scrape

import (
	"context"

	"github.com/fwojciec/bookbind"
)

// DiscoverFromSitemap lists candidate chapter links from the site's sitemap,
// scoped to the book's path and narrowed by the optional filter. Sitemaps
// carry no anchor text, so candidate titles are derived from URLs downstream.
func (s *Scraper) DiscoverFromSitemap(ctx context.Context, sourceURL string, filter *bookbind.URLFilter) ([]bookbind.CandidateLink, error) {
	if s.Sitemaps == nil {
		return nil, bookbind.Errorf(bookbind.EINVALID, "sitemap discovery not configured")
	}

	urls, err := s.Sitemaps.DiscoverURLs(ctx, sourceURL, filter)
	if err != nil {
		return nil, err
	}

	links := make([]bookbind.CandidateLink, 0, len(urls))
	for _, u := range urls {
		links = append(links, bookbind.CandidateLink{
			URL:  u,
			Rule: bookbind.RuleSitemap,
		})
	}
	return links, nil
}
