package scrape

import (
	"context"

	"github.com/fwojciec/bookbind"
	"github.com/fwojciec/bookbind/bloom"
)

// Walk configuration.
const (
	// DefaultMaxWalkPages caps next-link walks to prevent runaway loops
	// on sites whose last chapter links back into the archive.
	DefaultMaxWalkPages = 500
	// walkExpectedPages is the expected number of pages for Bloom filter sizing.
	walkExpectedPages = 10000
	// walkFalsePositiveRate is the acceptable false positive rate for loop detection.
	walkFalsePositiveRate = 0.01
)

// WalkChapters follows "next" links from the first chapter's page,
// collecting one candidate per page in reading order. The first page is
// itself a candidate. The walk ends when a page has no next link, when
// the next link loops back to a visited page, or when maxPages pages
// have been collected; maxPages <= 0 means DefaultMaxWalkPages.
//
// A fetch failure mid-walk returns the candidates collected so far
// along with the error, so a partial walk is still usable.
func (s *Scraper) WalkChapters(ctx context.Context, firstURL string, maxPages int) ([]bookbind.CandidateLink, error) {
	if s.Next == nil {
		return nil, bookbind.Errorf(bookbind.EINVALID, "next-link walking not configured")
	}
	if maxPages <= 0 {
		maxPages = DefaultMaxWalkPages
	}

	visited := bloom.NewVisited(walkExpectedPages, walkFalsePositiveRate)
	var links []bookbind.CandidateLink

	current := firstURL
	for len(links) < maxPages {
		if err := ctx.Err(); err != nil {
			return links, err
		}

		html, err := s.fetch(ctx, current)
		if err != nil {
			return links, err
		}

		visited.Mark(current)
		links = append(links, bookbind.CandidateLink{
			URL:  current,
			Rule: bookbind.RuleNextWalk,
		})

		// A page without a usable next link is the end of the book,
		// not an error.
		next, err := s.Next.NextLink(html, current)
		if err != nil || next == "" {
			break
		}
		if visited.Seen(next) {
			break
		}
		current = next
	}

	return links, nil
}
