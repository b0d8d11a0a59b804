// Package scrape orchestrates the book scraping pipeline: chapter link
// discovery, polite fetching, two-tier content extraction, and markdown
// conversion. It produces chapters; persistence belongs to the caller.
package scrape

import (
	"context"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fwojciec/bookbind"
	"golang.org/x/sync/errgroup"
)

// Scraper coordinates the pipeline stages. Fetcher, Discoverer, Extractor
// and Converter are required; Sitemaps and Next enable the opt-in discovery
// modes. RateLimiter, when set, is consulted before every fetch.
type Scraper struct {
	Fetcher     bookbind.Fetcher
	Discoverer  bookbind.LinkDiscoverer
	Extractor   bookbind.Extractor
	Converter   bookbind.Converter
	Sitemaps    bookbind.SitemapService
	Next        bookbind.NextFinder
	RateLimiter bookbind.DomainLimiter

	// Concurrency is the number of chapter pages fetched at once. The
	// default of 1 keeps downloads sequential, which together with the
	// rate limiter is the polite mode book hosts expect.
	Concurrency int

	// RetryDelays are the backoff delays between fetch attempts.
	// Defaults to DefaultRetryDelays.
	RetryDelays []time.Duration
}

// Result holds the outcome of a download operation.
type Result struct {
	// Chapters has one entry per input link, in input order, with Order
	// numbered 1..N. A chapter whose page could not be fetched or
	// extracted has empty Content and counts as failed.
	Chapters []*bookbind.Chapter

	Extracted int
	Failed    int
	Bytes     int
}

// ProgressEvent reports progress during a download operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting download progress.
type ProgressFunc func(event ProgressEvent)

// chapterResult holds the outcome of processing a single chapter page.
type chapterResult struct {
	position int
	url      string
	title    string
	markdown string
	hash     string
	method   bookbind.ExtractionMethod
	err      error
}

// DiscoverChapters fetches the book's landing page and returns its
// candidate chapter links. An empty result is not an error; the caller
// decides whether to fall back to sitemap or next-walk discovery.
func (s *Scraper) DiscoverChapters(ctx context.Context, sourceURL string) ([]bookbind.CandidateLink, error) {
	html, err := s.fetch(ctx, sourceURL)
	if err != nil {
		return nil, err
	}
	return s.Discoverer.DiscoverLinks(html, sourceURL)
}

// DownloadChapters fetches every candidate link and builds a chapter per
// link: content extracted through the tier chain, converted to markdown,
// titled from the extraction metadata or the URL. Results keep input
// order regardless of completion order, and a failed page yields a chapter
// with empty content rather than aborting the batch. The progress
// callback, if provided, receives events as downloading proceeds.
func (s *Scraper) DownloadChapters(ctx context.Context, bookID string, links []bookbind.CandidateLink, progress ProgressFunc) (*Result, error) {
	total := len(links)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	resultCh := make(chan chapterResult, total)
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, link := range links {
			g.Go(func() error {
				resultCh <- s.processLink(gctx, i, link)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]chapterResult, total)
	for result := range resultCh {
		completed.Add(1)
		results[result.position] = result

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Completed: int(completed.Load()),
			Total:     total,
			URL:       result.url,
		}
		if result.err != nil {
			event.Type = ProgressFailed
			event.Error = result.err
		} else {
			event.Type = ProgressCompleted
		}
		progress(event)
	}

	res := &Result{Chapters: make([]*bookbind.Chapter, 0, total)}
	now := time.Now()
	for i, result := range results {
		chapter := &bookbind.Chapter{
			BookID:    bookID,
			Order:     i + 1,
			URL:       result.url,
			Include:   true,
			FetchedAt: now,
		}
		if result.err != nil {
			res.Failed++
			chapter.Title = bookbind.TitleFromURL(result.url, i+1)
		} else {
			res.Extracted++
			res.Bytes += len(result.markdown)
			// Anchor text and metadata titles shorter than a plausible
			// title fall through to URL derivation, same as assembly.
			if len(strings.TrimSpace(result.title)) >= 3 {
				chapter.Title = strings.TrimSpace(result.title)
			} else {
				chapter.Title = bookbind.TitleFromURL(result.url, i+1)
			}
			chapter.Content = result.markdown
			chapter.ContentHash = result.hash
			chapter.Method = result.method
		}
		res.Chapters = append(res.Chapters, chapter)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	return res, nil
}

// processLink fetches and processes a single chapter page.
func (s *Scraper) processLink(ctx context.Context, position int, link bookbind.CandidateLink) chapterResult {
	result := chapterResult{
		position: position,
		url:      link.URL,
		title:    link.Text,
	}

	html, err := s.fetch(ctx, link.URL)
	if err != nil {
		result.err = err
		return result
	}

	extracted, err := s.Extractor.Extract(html)
	if err != nil {
		result.err = err
		return result
	}
	if extracted.Empty() {
		result.err = bookbind.Errorf(bookbind.ENOTFOUND, "no content extracted from %s", link.URL)
		return result
	}

	markdown, err := s.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		result.err = err
		return result
	}

	if extracted.Title != "" {
		result.title = extracted.Title
	}
	result.markdown = markdown
	result.hash = ComputeHash(markdown)
	result.method = extracted.Method

	return result
}

// fetch applies the rate limit and retry policy around a single fetch.
func (s *Scraper) fetch(ctx context.Context, rawURL string) (string, error) {
	if s.RateLimiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			return "", bookbind.Errorf(bookbind.EINVALID, "invalid URL %q: %v", rawURL, err)
		}
		if err := s.RateLimiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetryDelays(ctx, rawURL, s.Fetcher.Fetch, nil, delays)
}
